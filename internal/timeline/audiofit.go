package timeline

import (
	"fmt"
	"time"
)

// FitMode describes how an audio track is adjusted to a target duration.
type FitMode string

const (
	// FitLoop repeats the track from the start until the target is
	// reached; the final repetition is cut mid-play. No crossfade is
	// applied at loop seams.
	FitLoop FitMode = "loop"
	// FitTrim truncates a longer track to the target.
	FitTrim FitMode = "trim"
	// FitExact passes a track of exactly the target duration through.
	FitExact FitMode = "exact"
)

// FitPlan is the pure arithmetic of fitting an audio track to a timeline:
// how many extra repetitions of the source to play and where to cut.
type FitPlan struct {
	Mode FitMode
	// ExtraLoops is the number of repetitions after the first play
	// (FitLoop only).
	ExtraLoops int
	// Target is the exact output duration.
	Target time.Duration
}

// PlanFit computes the fit plan for a track of the given native duration.
// The resulting track duration equals target exactly, up to the encoder's
// one-frame rounding. Fitting an already-fitted track to the same target
// yields a pass-through plan, so fitting is idempotent.
func PlanFit(native, target time.Duration) (FitPlan, error) {
	if native <= 0 {
		return FitPlan{}, fmt.Errorf("audio track has no duration (%v)", native)
	}
	if target <= 0 {
		return FitPlan{}, fmt.Errorf("target duration must be positive, got %v", target)
	}

	switch {
	case native == target:
		return FitPlan{Mode: FitExact, Target: target}, nil
	case native > target:
		return FitPlan{Mode: FitTrim, Target: target}, nil
	default:
		// Repetitions beyond the first play, counting a partial one.
		extra := int((target - 1) / native)
		return FitPlan{Mode: FitLoop, ExtraLoops: extra, Target: target}, nil
	}
}
