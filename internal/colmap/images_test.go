package colmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keep(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

const sampleImagesTxt = `# Image list with two lines of data per image:
#   IMAGE_ID, QW, QX, QY, QZ, TX, TY, TZ, CAMERA_ID, NAME
1 0.9998 0.01 0.0 0.0 1.2 0.5 2.0 1 000001_0.png
10.5 20.5 1 30.0 40.0 2
2 0.9995 0.02 0.0 0.0 1.3 0.5 2.1 2 000001_1.png
11.0 21.0 3
3 0.9990 0.03 0.0 0.0 1.4 0.6 2.2 1 000002_0.png
12.0 22.0 4 13.0 23.0 5
4 0.9985 0.04 0.0 0.0 1.5 0.6 2.3 2 000002_1.png

5 0.9980 0.05 0.0 0.0 1.6 0.7 2.4 1 000003_0.png
14.0 24.0 6
6 0.9975 0.06 0.0 0.0 1.7 0.7 2.5 1 000004_0.png
15.0 25.0 7
`

func TestFilterImages_KeepsMatchingPairs(t *testing.T) {
	var out strings.Builder
	res, err := FilterImages(strings.NewReader(sampleImagesTxt), &out,
		keep("000001_0.png", "000001_1.png", "000003_0.png"))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Kept)
	assert.Equal(t, 3, res.Dropped)
	assert.Empty(t, res.Malformed)

	got := out.String()
	assert.Contains(t, got, "000001_0.png")
	assert.Contains(t, got, "000001_1.png")
	assert.Contains(t, got, "000003_0.png")
	assert.NotContains(t, got, "000002_0.png")
	assert.NotContains(t, got, "000004_0.png")

	// Each retained header keeps its correspondence line directly below it.
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 2+6) // 2 comments + 3 pairs
	assert.True(t, strings.HasSuffix(lines[2], "000001_0.png"))
	assert.Equal(t, "10.5 20.5 1 30.0 40.0 2", lines[3])
	assert.True(t, strings.HasSuffix(lines[6], "000003_0.png"))
	assert.Equal(t, "14.0 24.0 6", lines[7])
}

func TestFilterImages_CommentsPassThroughInOrder(t *testing.T) {
	var out strings.Builder
	_, err := FilterImages(strings.NewReader(sampleImagesTxt), &out, keep("000001_0.png"))
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "# Image list with two lines of data per image:", lines[0])
	assert.Equal(t, "#   IMAGE_ID, QW, QX, QY, QZ, TX, TY, TZ, CAMERA_ID, NAME", lines[1])
}

func TestFilterImages_EmptyCorrespondenceLine(t *testing.T) {
	// Image 4 has no observed points: its continuation line is empty and
	// must still be consumed as part of the pair.
	var out strings.Builder
	res, err := FilterImages(strings.NewReader(sampleImagesTxt), &out, keep("000002_1.png"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Kept)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2+2)
	assert.True(t, strings.HasSuffix(lines[2], "000002_1.png"))
	assert.Equal(t, "", lines[3])
}

func TestFilterImages_MalformedHeaderDropped(t *testing.T) {
	src := "# comment\n" +
		"1 0.9 0.0 0.0 0.0 1.0 2.0 3.0 1 000001_0.png\n" +
		"10 20 1\n" +
		"2 0.9 0.0 0.0\n" + // 4 fields: malformed
		"11 21 2\n" +
		"3 0.9 0.0 0.0 0.0 1.1 2.1 3.1 1 000002_0.png\n" +
		"12 22 3\n"

	var out strings.Builder
	res, err := FilterImages(strings.NewReader(src), &out, keep("000001_0.png", "000002_0.png"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Kept)
	assert.Equal(t, 0, res.Dropped)
	// The malformed header is on line 4 (after the comment and first pair).
	assert.Equal(t, []int{4}, res.Malformed)

	// Pairing survives the malformed entry: the following entry is intact.
	got := out.String()
	assert.Contains(t, got, "000002_0.png")
	assert.Contains(t, got, "12 22 3")
}

func TestFilterImages_BlankLinesDoNotBreakPairing(t *testing.T) {
	src := "\n" +
		"1 0.9 0.0 0.0 0.0 1.0 2.0 3.0 1 000001_0.png\n" +
		"10 20 1\n" +
		"\n" +
		"2 0.9 0.0 0.0 0.0 1.1 2.1 3.1 1 000002_0.png\n" +
		"11 21 2\n"

	var out strings.Builder
	res, err := FilterImages(strings.NewReader(src), &out, keep("000002_0.png"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Kept)
	assert.Contains(t, out.String(), "11 21 2")
}

func TestFilterImages_FullSelectionRoundTrip(t *testing.T) {
	all := keep(
		"000001_0.png", "000001_1.png",
		"000002_0.png", "000002_1.png",
		"000003_0.png", "000004_0.png",
	)
	var out strings.Builder
	res, err := FilterImages(strings.NewReader(sampleImagesTxt), &out, all)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Kept)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, sampleImagesTxt, out.String())
}

func TestFilterImages_ByRelativePath(t *testing.T) {
	src := "1 0.9 0.0 0.0 0.0 1.0 2.0 3.0 1 rig/left/000001_0.png\n10 20 1\n"

	var out strings.Builder
	res, err := FilterImages(strings.NewReader(src), &out, keep("rig/left/000001_0.png"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Kept)
}

func TestFilterImagesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "images.txt")
	dst := filepath.Join(dir, "filtered.txt")
	require.NoError(t, os.WriteFile(src, []byte(sampleImagesTxt), 0o644))

	res, err := FilterImagesFile(src, dst, keep("000003_0.png"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Kept)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "000003_0.png")
	assert.Contains(t, string(data), "14.0 24.0 6")
}
