package shots

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// BuildIndex walks root recursively, collects files whose extension appears
// in exts (case-insensitive), derives each file's shot id with sep, and
// groups the results. Image order inside the index is sorted by relative
// path so the index is identical regardless of filesystem enumeration order.
//
// Returns ErrNoImages when nothing matched.
func BuildIndex(root string, exts []string, sep string) (*Index, error) {
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	var images []Image
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		images = append(images, Image{
			Path: path,
			Rel:  rel,
			Name: d.Name(),
			Shot: ShotID(d.Name(), sep),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	sort.Slice(images, func(i, j int) bool { return images[i].Rel < images[j].Rel })

	ix := &Index{
		Root:   root,
		Images: images,
		Shots:  make(map[string][]Image),
	}
	for _, img := range images {
		ix.Shots[img.Shot] = append(ix.Shots[img.Shot], img)
	}
	return ix, nil
}
