package shots

import (
	"path/filepath"
	"strings"
)

// ShotID derives the shot identifier from an image file name by stripping
// the extension and, when the base name contains the separator, everything
// after its last occurrence (the lens index).
//
//	000921_0.png → 000921
//	000921_1.png → 000921
//	IMG_0001.jpg → IMG
//
// A base name with a single separator is indistinguishable from a true
// <shot><sep><lens> pattern, so names like IMG_0001.jpg group under "IMG".
// Datasets using that naming convention should pass a different separator.
func ShotID(filename, separator string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if idx := strings.LastIndex(base, separator); idx >= 0 {
		return base[:idx]
	}
	return base
}

// LensSuffix returns the lens index portion of an image file name, or ""
// when the base name has no separator.
func LensSuffix(filename, separator string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if idx := strings.LastIndex(base, separator); idx >= 0 {
		return base[idx+len(separator):]
	}
	return ""
}
