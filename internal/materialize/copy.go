// Package materialize writes the retained image subset to the output
// dataset, preserving relative directory structure and file timestamps.
// Copy failures abort immediately: a partially copied dataset is unsafe to
// train on, so the policy is fail-fast rather than best-effort.
package materialize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/edgrmdna/gaussian-splatting/internal/shots"
)

// CopyError reports a filesystem failure while copying a single file.
type CopyError struct {
	Path string // Source path of the file that failed.
	Err  error  // Underlying cause.
}

func (e *CopyError) Error() string { return fmt.Sprintf("copy %s: %v", e.Path, e.Err) }
func (e *CopyError) Unwrap() error { return e.Err }

// CopyImages copies every image to dstRoot at its root-relative path,
// creating directories as needed. Existing files are overwritten without
// warning (re-running with identical parameters is idempotent). Returns the
// number of files and bytes copied; on failure the error is a *CopyError
// and the destination is left in a known-incomplete state for the caller
// to report.
func CopyImages(ctx context.Context, images []shots.Image, dstRoot string) (int, int64, error) {
	var files int
	var bytes int64
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return files, bytes, err
		}
		dst := filepath.Join(dstRoot, filepath.FromSlash(img.Rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return files, bytes, &CopyError{Path: img.Path, Err: err}
		}
		n, err := CopyFile(img.Path, dst)
		if err != nil {
			return files, bytes, &CopyError{Path: img.Path, Err: err}
		}
		files++
		bytes += n
	}
	return files, bytes, nil
}

// CopyFile copies src to dst byte-for-byte, carrying over the source's
// permission bits and modification time (the platform permitting). Returns
// the number of bytes written.
func CopyFile(src, dst string) (int64, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}

	// Best effort; some filesystems reject mtime updates.
	_ = os.Chtimes(dst, fi.ModTime(), fi.ModTime())
	return n, nil
}
