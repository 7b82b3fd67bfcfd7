package ffmpeg

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kikiluvv/effectreel/internal/effects"
	"github.com/kikiluvv/effectreel/internal/timeline"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available.
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH")
	}
}

func testExecutor(t *testing.T) *Executor {
	t.Helper()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	e, err := New(logger, "", 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	return e
}

// makeTestImage renders a single test-pattern frame.
func makeTestImage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "frame.png")
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=8",
		"-frames:v", "1", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("could not generate test image: %v: %s", err, out)
	}
	return path
}

// makeTestAudio renders a sine tone of the given duration.
func makeTestAudio(t *testing.T, dir string, seconds float64) string {
	t.Helper()
	path := filepath.Join(dir, "tone.wav")
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", "sine=frequency=440:duration="+strconv.FormatFloat(seconds, 'f', 3, 64),
		"-ar", "16000", "-ac", "1", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("could not generate test audio: %v: %s", err, out)
	}
	return path
}

// durationWithin asserts a probed duration is within one frame of want.
func durationWithin(t *testing.T, e *Executor, path string, want time.Duration, fps int) {
	t.Helper()
	info, err := e.ProbeMedia(context.Background(), path)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	tolerance := time.Second / time.Duration(fps)
	diff := info.Duration - want
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		t.Errorf("duration %v not within %v of %v", info.Duration, tolerance, want)
	}
}

func TestExecutorCreation(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	if e.ffmpegPath == "" || e.ffprobePath == "" {
		t.Error("binary paths not resolved")
	}
}

func TestExecutorMissingBinary(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	_, err := New(logger, "no-such-ffmpeg-binary", 1)
	if err == nil {
		t.Error("expected error for missing binary")
	}
}

func TestBuildSegmentAndProbe(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	dir := t.TempDir()
	image := makeTestImage(t, dir)
	output := filepath.Join(dir, "segment.mp4")

	params := SegmentParams{Width: 320, Height: 240, FPS: 8, Duration: 2}
	err := e.BuildSegment(context.Background(), SegmentOptions{
		Label:    "Fade In / Fade Out",
		Sequence: []effects.Descriptor{effects.FadeIn(0.8), effects.FadeOut(0.8)},
		Image:    image,
		Output:   output,
		Style:    TextStyle{FontSize: 24, FontColor: "white", BoxColor: "black"},
		Params:   params,
	})
	if err != nil {
		t.Fatalf("BuildSegment failed: %v", err)
	}

	durationWithin(t, e, output, 2*time.Second, 8)
}

func TestBuildSegmentInvalidEffectFails(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	dir := t.TempDir()
	image := makeTestImage(t, dir)

	err := e.BuildSegment(context.Background(), SegmentOptions{
		Label:    "Broken",
		Sequence: []effects.Descriptor{effects.FadeIn(-1)},
		Image:    image,
		Output:   filepath.Join(dir, "broken.mp4"),
		Style:    TextStyle{FontSize: 24, FontColor: "white", BoxColor: "black"},
		Params:   SegmentParams{Width: 320, Height: 240, FPS: 8, Duration: 2},
	})
	if err == nil {
		t.Fatal("expected build error")
	}

	var berr *BuildError
	if !errors.As(err, &berr) {
		t.Fatalf("want BuildError, got %T: %v", err, err)
	}
	if berr.Label != "Broken" {
		t.Errorf("error names label %q, want %q", berr.Label, "Broken")
	}
}

func TestConcatComposesSegments(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	dir := t.TempDir()
	image := makeTestImage(t, dir)

	params := SegmentParams{Width: 320, Height: 240, FPS: 8, Duration: 2}
	style := TextStyle{FontSize: 24, FontColor: "white", BoxColor: "black"}

	var inputs []string
	// The margin effect changes frame geometry; compose concat has to
	// normalize it back onto the shared canvas.
	sequences := [][]effects.Descriptor{
		{effects.MirrorX()},
		{effects.Margin(20, "gold")},
	}
	for i, seq := range sequences {
		out := filepath.Join(dir, "seg"+strconv.Itoa(i)+".mp4")
		if err := e.BuildSegment(context.Background(), SegmentOptions{
			Label:    "Segment " + strconv.Itoa(i),
			Sequence: seq,
			Image:    image,
			Output:   out,
			Style:    style,
			Params:   params,
		}); err != nil {
			t.Fatalf("BuildSegment %d failed: %v", i, err)
		}
		inputs = append(inputs, out)
	}

	output := filepath.Join(dir, "reel.mp4")
	err := e.Concat(context.Background(), ConcatOptions{
		Inputs: inputs,
		Output: output,
		Width:  320,
		Height: 240,
		FPS:    8,
	})
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	durationWithin(t, e, output, 4*time.Second, 8)

	info, err := e.ProbeMedia(context.Background(), output)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("canvas not normalized: %dx%d", info.Width, info.Height)
	}
}

func TestConcatValidation(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	err := e.Concat(context.Background(), ConcatOptions{Output: "out.mp4", Width: 320, Height: 240, FPS: 8})
	if err == nil {
		t.Error("expected error for empty inputs")
	}
}

func TestFitAudioLoop(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	dir := t.TempDir()
	audio := makeTestAudio(t, dir, 3)

	plan, err := timeline.PlanFit(3*time.Second, 4*time.Second)
	if err != nil {
		t.Fatalf("PlanFit failed: %v", err)
	}

	output := filepath.Join(dir, "fitted.mka")
	if err := e.FitAudio(context.Background(), FitAudioOptions{
		Input:  audio,
		Output: output,
		Plan:   plan,
	}); err != nil {
		t.Fatalf("FitAudio failed: %v", err)
	}

	durationWithin(t, e, output, 4*time.Second, 8)
}

func TestFitAudioTrim(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	dir := t.TempDir()
	audio := makeTestAudio(t, dir, 10)

	plan, err := timeline.PlanFit(10*time.Second, 2*time.Second)
	if err != nil {
		t.Fatalf("PlanFit failed: %v", err)
	}

	output := filepath.Join(dir, "fitted.mka")
	if err := e.FitAudio(context.Background(), FitAudioOptions{
		Input:  audio,
		Output: output,
		Plan:   plan,
	}); err != nil {
		t.Fatalf("FitAudio failed: %v", err)
	}

	durationWithin(t, e, output, 2*time.Second, 8)
}

func TestProbeMediaInvalidFile(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := testExecutor(t)
	if _, err := e.ProbeMedia(context.Background(), "nonexistent.mp4"); err == nil {
		t.Error("ProbeMedia should fail for non-existent file")
	}
}
