package colmap

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/edgrmdna/gaussian-splatting/internal/materialize"
)

// Sentinel errors for reconstruction layout and format gaps.
var (
	// ErrNoSparse means the source has no sparse reconstruction directory.
	// The image subset is still usable; the reconstruction must be re-run
	// on it.
	ErrNoSparse = errors.New("no sparse reconstruction directory found")

	// ErrBinaryOnly means only the binary images.bin variant exists.
	// Filtering the binary format is unsupported; the caller gets its
	// images but no filtered pose file.
	ErrBinaryOnly = errors.New("only binary images.bin present; filtering the binary format is unsupported")

	// ErrNoPoseData means a sparse directory exists but holds neither
	// images.txt nor images.bin.
	ErrNoPoseData = errors.New("sparse directory holds no images.txt or images.bin")
)

// ResolveSparseDir locates the sparse reconstruction inside source,
// preferring the conventional sparse/0 layout over a flat sparse directory.
// Returns ErrNoSparse when neither exists.
func ResolveSparseDir(source string) (string, error) {
	for _, candidate := range []string{
		filepath.Join(source, "sparse", "0"),
		filepath.Join(source, "sparse"),
	} {
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrNoSparse
}

// FindPoseFile returns the path of the text pose-record file in sparseDir.
// Returns ErrBinaryOnly when only images.bin exists and ErrNoPoseData when
// neither variant is present.
func FindPoseFile(sparseDir string) (string, error) {
	txt := filepath.Join(sparseDir, "images.txt")
	if _, err := os.Stat(txt); err == nil {
		return txt, nil
	}
	if _, err := os.Stat(filepath.Join(sparseDir, "images.bin")); err == nil {
		return "", ErrBinaryOnly
	}
	return "", ErrNoPoseData
}

// CopyAux copies the auxiliary reconstruction files from sparseDir to
// outDir byte-for-byte: the first camera-intrinsics variant found
// (cameras.txt preferred over cameras.bin) and every 3D-point variant
// present (points3D.txt, .bin, .ply). These files are not indexed per-image,
// so they pass through unfiltered. Returns the names of the files copied.
func CopyAux(sparseDir, outDir string) ([]string, error) {
	var copied []string

	for _, name := range []string{"cameras.txt", "cameras.bin"} {
		src := filepath.Join(sparseDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if _, err := materialize.CopyFile(src, filepath.Join(outDir, name)); err != nil {
			return copied, err
		}
		copied = append(copied, name)
		break
	}

	for _, name := range []string{"points3D.txt", "points3D.bin", "points3D.ply"} {
		src := filepath.Join(sparseDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if _, err := materialize.CopyFile(src, filepath.Join(outDir, name)); err != nil {
			return copied, err
		}
		copied = append(copied, name)
	}

	return copied, nil
}
