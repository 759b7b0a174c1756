// Package selection picks the retained subset of shots and resolves it to
// the set of image identifiers the rest of the pipeline consumes. Shots are
// retained or dropped whole: an image is in the selection iff its shot is.
package selection

import (
	"sort"

	"github.com/edgrmdna/gaussian-splatting/internal/shots"
)

// Pick sorts ids lexicographically ascending and returns every strideth
// element starting at offset — the Go equivalent of sorted(ids)[offset::stride].
// The input slice is not modified. An offset at or beyond the id count
// yields an empty (non-nil semantics: nil) result, never an error; the
// caller is expected to surface that as a diagnostic.
func Pick(ids []string, stride, offset int) []string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var out []string
	for i := offset; i < len(sorted); i += stride {
		out = append(out, sorted[i])
	}
	return out
}

// Retained is the resolved selection: the chosen shot ids and every image
// belonging to them, plus the identifier set used to match pose records.
type Retained struct {
	ShotIDs []string      // Selected shot ids, sorted ascending.
	Images  []shots.Image // All images of the selected shots, sorted by Rel.

	idents map[string]struct{}
}

// Build applies stride/offset selection to the index and resolves the
// retained image set. The identifier set is the union of root-relative
// paths and bare file names, because pose records may reference images by
// either form depending on how the reconstruction was organized.
func Build(ix *shots.Index, stride, offset int) *Retained {
	r := &Retained{
		ShotIDs: Pick(ix.ShotIDs(), stride, offset),
		idents:  make(map[string]struct{}),
	}

	for _, id := range r.ShotIDs {
		for _, img := range ix.Shots[id] {
			r.Images = append(r.Images, img)
			r.idents[img.Rel] = struct{}{}
			r.idents[img.Name] = struct{}{}
		}
	}
	sort.Slice(r.Images, func(i, j int) bool { return r.Images[i].Rel < r.Images[j].Rel })
	return r
}

// Empty reports whether the selection retained no shots.
func (r *Retained) Empty() bool { return len(r.ShotIDs) == 0 }

// Identifiers returns the set of retained image identifiers (relative paths
// union bare names). The map is shared, not copied; callers must not mutate it.
func (r *Retained) Identifiers() map[string]struct{} { return r.idents }
