package timeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyTimeline is returned when assembly is attempted with no segments.
var ErrEmptyTimeline = errors.New("empty timeline: no segments to assemble")

// Segment is one rendered, labelled visual unit. Every segment in a reel
// has the same duration and frame rate.
type Segment struct {
	Label     string
	Path      string
	Duration  time.Duration
	FrameRate int
}

// Timeline is the ordered concatenation of segments. Once assembled it is
// immutable except for attaching audio.
type Timeline struct {
	Segments []Segment
	Total    time.Duration

	// AudioPath is set after the fitted audio track is attached.
	AudioPath string
}

// Assemble orders segments into a timeline and computes the total
// duration. Segment order is preserved exactly. Every segment must carry
// the shared per-segment duration; a divergent segment is a programming
// error and fails loudly rather than being truncated.
func Assemble(segments []Segment, perSegment time.Duration) (*Timeline, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyTimeline
	}
	if perSegment <= 0 {
		return nil, fmt.Errorf("per-segment duration must be positive, got %v", perSegment)
	}

	var sum time.Duration
	for i, seg := range segments {
		if seg.Duration != perSegment {
			return nil, fmt.Errorf("segment %d (%q): duration %v diverges from per-segment duration %v",
				i, seg.Label, seg.Duration, perSegment)
		}
		sum += seg.Duration
	}

	total := time.Duration(len(segments)) * perSegment
	if total != sum {
		return nil, fmt.Errorf("timeline duration mismatch: %v computed vs %v summed", total, sum)
	}

	out := make([]Segment, len(segments))
	copy(out, segments)

	return &Timeline{Segments: out, Total: total}, nil
}

// AttachAudio records the fitted audio track on the timeline. The track
// must already match the timeline's total duration.
func (t *Timeline) AttachAudio(path string) {
	t.AudioPath = path
}

// Paths returns the segment file paths in timeline order.
func (t *Timeline) Paths() []string {
	paths := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		paths[i] = seg.Path
	}
	return paths
}
