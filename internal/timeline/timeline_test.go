package timeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSegments(n int, dur time.Duration) []Segment {
	segs := make([]Segment, n)
	for i := range segs {
		segs[i] = Segment{
			Label:     fmt.Sprintf("Effect %d", i),
			Path:      fmt.Sprintf("/tmp/segment_%03d.mp4", i),
			Duration:  dur,
			FrameRate: 8,
		}
	}
	return segs
}

func TestAssembleKeepsCountAndOrder(t *testing.T) {
	segs := makeSegments(5, 2*time.Second)

	tl, err := Assemble(segs, 2*time.Second)
	require.NoError(t, err)

	require.Len(t, tl.Segments, 5)
	for i, seg := range tl.Segments {
		assert.Equal(t, segs[i].Label, seg.Label, "segment %d out of order", i)
	}
}

func TestAssembleTotalDuration(t *testing.T) {
	for _, n := range []int{1, 2, 7, 30} {
		segs := makeSegments(n, 2*time.Second)
		tl, err := Assemble(segs, 2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(n)*2*time.Second, tl.Total)
	}
}

func TestAssembleEmptyFails(t *testing.T) {
	_, err := Assemble(nil, 2*time.Second)
	assert.ErrorIs(t, err, ErrEmptyTimeline)

	_, err = Assemble([]Segment{}, 2*time.Second)
	assert.ErrorIs(t, err, ErrEmptyTimeline)
}

func TestAssembleDivergentDurationFails(t *testing.T) {
	segs := makeSegments(3, 2*time.Second)
	segs[1].Duration = 1900 * time.Millisecond

	_, err := Assemble(segs, 2*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diverges")
	assert.Contains(t, err.Error(), "Effect 1")
}

func TestAssembleRejectsNonPositiveDuration(t *testing.T) {
	segs := makeSegments(2, 2*time.Second)
	_, err := Assemble(segs, 0)
	assert.Error(t, err)
}

func TestAssembleCopiesInput(t *testing.T) {
	segs := makeSegments(2, 2*time.Second)
	tl, err := Assemble(segs, 2*time.Second)
	require.NoError(t, err)

	segs[0].Label = "mutated"
	assert.Equal(t, "Effect 0", tl.Segments[0].Label)
}

func TestPathsInTimelineOrder(t *testing.T) {
	segs := makeSegments(3, 2*time.Second)
	tl, err := Assemble(segs, 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/tmp/segment_000.mp4",
		"/tmp/segment_001.mp4",
		"/tmp/segment_002.mp4",
	}, tl.Paths())
}

func TestAttachAudio(t *testing.T) {
	tl, err := Assemble(makeSegments(1, 2*time.Second), 2*time.Second)
	require.NoError(t, err)

	tl.AttachAudio("/tmp/audio_fitted.mka")
	assert.Equal(t, "/tmp/audio_fitted.mka", tl.AudioPath)
}

// Two catalogue entries at 2s each plus a 3s audio track: the timeline is
// 4s and the audio loops once, cut 1s into the second play.
func TestTwoSegmentReelScenario(t *testing.T) {
	tl, err := Assemble(makeSegments(2, 2*time.Second), 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, 4*time.Second, tl.Total)

	plan, err := PlanFit(3*time.Second, tl.Total)
	require.NoError(t, err)
	assert.Equal(t, FitLoop, plan.Mode)
	assert.Equal(t, 1, plan.ExtraLoops)
	assert.Equal(t, 4*time.Second, plan.Target)
}

// A single 2s entry with a 10s track: the timeline is 2s and 8s of audio
// are discarded.
func TestSingleSegmentReelScenario(t *testing.T) {
	tl, err := Assemble(makeSegments(1, 2*time.Second), 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, tl.Total)

	plan, err := PlanFit(10*time.Second, tl.Total)
	require.NoError(t, err)
	assert.Equal(t, FitTrim, plan.Mode)
	assert.Equal(t, 2*time.Second, plan.Target)
}
