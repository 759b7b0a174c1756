package pipeline

// RunStats tracks every counted unit of a curation run, so nothing is
// dropped silently: the final summary accounts for all shots and pose
// entries whether kept or skipped.
type RunStats struct {
	TotalImages int
	TotalShots  int

	SelectedShots  int
	SelectedImages int

	CopiedImages int
	CopiedBytes  int64

	PosesKept      int
	PosesDropped   int
	PosesMalformed int
	AuxCopied      []string

	// PoseDegraded is set when the image subset was produced but pose
	// filtering had to be skipped (no sparse dir, or binary-only data).
	PoseDegraded bool

	Failed bool
}

// DroppedShots returns the number of shots excluded by the selection.
func (s *RunStats) DroppedShots() int { return s.TotalShots - s.SelectedShots }

// DroppedImages returns the number of images excluded by the selection.
func (s *RunStats) DroppedImages() int { return s.TotalImages - s.SelectedImages }
