// Package shots discovers image files under a dataset's image root and
// groups them into shots. A shot is one capture event; multi-lens rigs
// produce several images per shot, which must be kept or dropped together.
package shots

import (
	"errors"
	"sort"
)

// ErrNoImages is returned by BuildIndex when the image root contains no
// files with a recognized extension.
var ErrNoImages = errors.New("no images found under image root")

// Image is one discovered image file.
type Image struct {
	Path string // Full path to the file.
	Rel  string // Path relative to the image root (slash-separated).
	Name string // Base file name.
	Shot string // Derived shot identifier.
}

// Index holds the discovered images grouped by shot.
type Index struct {
	Root   string             // The image root that was scanned.
	Images []Image            // All images, sorted by Rel.
	Shots  map[string][]Image // Shot id → images of that shot, sorted by Rel.
}

// ShotIDs returns all shot identifiers sorted lexicographically ascending.
// Sorting here (not filesystem order) is what makes downstream selection
// reproducible across platforms.
func (ix *Index) ShotIDs() []string {
	ids := make([]string, 0, len(ix.Shots))
	for id := range ix.Shots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ImagesPerShot returns the average image count per shot, rounded down.
// Zero when the index is empty.
func (ix *Index) ImagesPerShot() int {
	if len(ix.Shots) == 0 {
		return 0
	}
	return len(ix.Images) / len(ix.Shots)
}
