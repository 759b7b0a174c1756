package shots

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var testExts = []string{".png", ".jpg", ".jpeg"}

func TestBuildIndex_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000001_0.png")
	touch(t, dir, "000001_1.jpg")
	touch(t, dir, "000002_0.JPEG")
	touch(t, dir, "notes.txt")
	touch(t, dir, "points.ply")

	ix, err := BuildIndex(dir, testExts, "_")
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if len(ix.Images) != 3 {
		t.Errorf("got %d images, want 3 (case-insensitive ext matching)", len(ix.Images))
	}
}

func TestBuildIndex_GroupsByShot(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000001_0.png")
	touch(t, dir, "000001_1.png")
	touch(t, dir, "000002_0.png")

	ix, err := BuildIndex(dir, testExts, "_")
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	if len(ix.Shots) != 2 {
		t.Fatalf("got %d shots, want 2", len(ix.Shots))
	}
	if n := len(ix.Shots["000001"]); n != 2 {
		t.Errorf("shot 000001: got %d images, want 2", n)
	}
	if n := len(ix.Shots["000002"]); n != 1 {
		t.Errorf("shot 000002: got %d images, want 1", n)
	}
}

func TestBuildIndex_Recursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "rig", "left")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, dir, "000001_0.png")
	touch(t, sub, "000002_0.png")

	ix, err := BuildIndex(dir, testExts, "_")
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if len(ix.Images) != 2 {
		t.Fatalf("got %d images, want 2", len(ix.Images))
	}

	// Relative paths are slash-separated and relative to the scan root.
	found := false
	for _, img := range ix.Images {
		if img.Rel == "rig/left/000002_0.png" {
			found = true
		}
	}
	if !found {
		t.Errorf("nested image not indexed with relative path; images: %+v", ix.Images)
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md")

	_, err := BuildIndex(dir, testExts, "_")
	if !errors.Is(err, ErrNoImages) {
		t.Errorf("BuildIndex on empty dir: got %v, want ErrNoImages", err)
	}
}

func TestBuildIndex_SortedDeterministically(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000003_0.png")
	touch(t, dir, "000001_0.png")
	touch(t, dir, "000002_0.png")

	ix, err := BuildIndex(dir, testExts, "_")
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	for i := 1; i < len(ix.Images); i++ {
		if ix.Images[i].Rel < ix.Images[i-1].Rel {
			t.Errorf("not sorted: %q before %q", ix.Images[i-1].Rel, ix.Images[i].Rel)
		}
	}
}

func TestShotIDs_Sorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000003_0.png")
	touch(t, dir, "000001_0.png")
	touch(t, dir, "000002_0.png")

	ix, err := BuildIndex(dir, testExts, "_")
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	want := []string{"000001", "000002", "000003"}
	got := ix.ShotIDs()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestImagesPerShot(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000001_0.png")
	touch(t, dir, "000001_1.png")
	touch(t, dir, "000002_0.png")
	touch(t, dir, "000002_1.png")

	ix, err := BuildIndex(dir, testExts, "_")
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if got := ix.ImagesPerShot(); got != 2 {
		t.Errorf("ImagesPerShot: got %d, want 2", got)
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}
