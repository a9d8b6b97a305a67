package render

import "fmt"

// Artifact is a finished animated image in the output directory.
type Artifact struct {
	SegmentIndex int
	ImagePath    string
}

// Stage names a step of the per-segment render.
type Stage string

const (
	StageScratch   Stage = "scratch"
	StageClip      Stage = "clip"
	StagePalette   Stage = "palette"
	StageAnimation Stage = "animation"
	StagePublish   Stage = "publish"
)

// StageError reports which step of which segment failed.
type StageError struct {
	Segment int
	Stage   Stage
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("segment %d: %s: %v", e.Segment, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
