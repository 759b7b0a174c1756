// Package colmap reads and filters the text artifacts of a COLMAP sparse
// reconstruction. Only the text variant of images.txt is understood; the
// binary variant is detected and reported, never parsed.
package colmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// imageHeaderFields is the fixed field count of an images.txt header line:
// IMAGE_ID QW QX QY QZ TX TY TZ CAMERA_ID NAME.
const imageHeaderFields = 10

// nameField is the zero-based index of NAME in the header line.
const nameField = 9

// FilterResult reports what a filtering pass kept and dropped.
type FilterResult struct {
	Kept      int   // Entries whose NAME was in the retained set.
	Dropped   int   // Well-formed entries that were filtered out.
	Malformed []int // 1-based line numbers of headers with fewer than 10 fields.
}

// FilterImagesFile streams srcPath through [FilterImages] into dstPath.
func FilterImagesFile(srcPath, dstPath string, retained map[string]struct{}) (FilterResult, error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return FilterResult{}, err
	}
	defer in.Close()

	out, err := os.Create(dstPath)
	if err != nil {
		return FilterResult{}, err
	}

	res, err := FilterImages(in, out, retained)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return res, err
}

// FilterImages copies the images.txt stream from r to w, keeping only the
// entries whose NAME appears in retained. Each entry is a pair of lines: the
// pose header and the 2D–3D correspondence list; the pair is kept or dropped
// whole. Comment lines (leading '#') pass through verbatim and do not count
// against the two-line pairing; blank lines in header position are skipped.
// A header with fewer than 10 fields is recorded as malformed (with its line
// number) and its pair dropped; processing continues.
//
// The advance is exactly two lines per non-comment, non-blank entry whether
// or not the entry is retained. That fixed stride is what keeps the
// header/continuation pairing intact across skips.
func FilterImages(r io.Reader, w io.Writer, retained map[string]struct{}) (FilterResult, error) {
	var res FilterResult

	sc := bufio.NewScanner(r)
	// Correspondence lines grow with the number of observed 3D points and
	// routinely exceed bufio's default line limit.
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if strings.HasPrefix(line, "#") {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return res, err
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		headerNo := lineNo
		var points string
		hasPoints := false
		if sc.Scan() {
			lineNo++
			points = sc.Text()
			hasPoints = true
		}

		fields := strings.Fields(line)
		if len(fields) < imageHeaderFields {
			res.Malformed = append(res.Malformed, headerNo)
			continue
		}

		if _, ok := retained[fields[nameField]]; !ok {
			res.Dropped++
			continue
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return res, err
		}
		if hasPoints {
			if _, err := fmt.Fprintln(w, points); err != nil {
				return res, err
			}
		}
		res.Kept++
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read images.txt: %w", err)
	}
	return res, nil
}
