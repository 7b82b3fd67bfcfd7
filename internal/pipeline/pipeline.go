package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kikiluvv/effectreel/internal/config"
	"github.com/kikiluvv/effectreel/internal/effects"
	"github.com/kikiluvv/effectreel/internal/ffmpeg"
	"github.com/kikiluvv/effectreel/internal/timeline"
	"github.com/kikiluvv/effectreel/pkg/util"
)

// Pipeline orchestrates the whole reel build: catalogue entries become
// labelled segments, segments become a timeline, the audio track is fitted
// to the timeline, and the result is encoded. One-shot and fail-fast: any
// error aborts the run and no partial output file is left behind.
type Pipeline struct {
	logger zerolog.Logger
	cfg    *config.Config
	ffmpeg *ffmpeg.Executor
}

// New creates a pipeline from application config.
func New(logger zerolog.Logger, cfg *config.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	exec, err := ffmpeg.New(logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	return &Pipeline{
		logger: logger.With().Str("component", "pipeline").Logger(),
		cfg:    cfg,
		ffmpeg: exec,
	}, nil
}

// Render builds the full reel for the request and writes the final file.
func (p *Pipeline) Render(ctx context.Context, req RenderRequest) (err error) {
	if err := req.validate(); err != nil {
		return err
	}
	if len(req.Catalogue) == 0 {
		return timeline.ErrEmptyTimeline
	}

	// Never leave a partial output file behind.
	defer func() {
		if err != nil {
			util.CleanupFiles(req.Output)
		}
	}()

	p.logger.Info().
		Str("image", req.Image).
		Str("audio", req.Audio).
		Str("output", req.Output).
		Int("entries", len(req.Catalogue)).
		Msg("starting reel build")

	// Stage 1: verify both resources before building anything.
	imageInfo, err := p.ffmpeg.ProbeMedia(ctx, req.Image)
	if err != nil {
		return &ResourceError{Path: req.Image, Err: err}
	}
	if !imageInfo.HasVideo {
		return &ResourceError{Path: req.Image, Err: fmt.Errorf("no image data found")}
	}

	audioInfo, err := p.ffmpeg.ProbeMedia(ctx, req.Audio)
	if err != nil {
		return &ResourceError{Path: req.Audio, Err: err}
	}
	if !audioInfo.HasAudio || audioInfo.Duration <= 0 {
		return &ResourceError{Path: req.Audio, Err: fmt.Errorf("no audio stream found")}
	}

	workDir, err := os.MkdirTemp(p.cfg.TempDir, "effectreel-*")
	if err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	// Stage 2: build one segment per catalogue entry, in catalogue order.
	segments, err := p.buildSegments(ctx, req, workDir)
	if err != nil {
		return err
	}

	// Stage 3: assemble the timeline.
	perSegment := util.SecondsToDuration(p.cfg.Reel.SegmentSec)
	tl, err := timeline.Assemble(segments, perSegment)
	if err != nil {
		return err
	}

	p.logger.Info().
		Int("segments", len(tl.Segments)).
		Dur("total", tl.Total).
		Msg("timeline assembled")

	reelPath := filepath.Join(workDir, "reel.mp4")
	if err := p.ffmpeg.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs: tl.Paths(),
		Output: reelPath,
		Width:  p.cfg.Reel.Width,
		Height: p.cfg.Reel.Height,
		FPS:    p.cfg.Reel.FPS,
		Encode: p.encodeOptions(),
	}); err != nil {
		return fmt.Errorf("timeline concat failed: %w", err)
	}

	// Stage 4: fit the audio track to the timeline duration.
	plan, err := timeline.PlanFit(audioInfo.Duration, tl.Total)
	if err != nil {
		return &ResourceError{Path: req.Audio, Err: err}
	}

	fittedPath := filepath.Join(workDir, "audio_fitted.mka")
	if err := p.ffmpeg.FitAudio(ctx, ffmpeg.FitAudioOptions{
		Input:  req.Audio,
		Output: fittedPath,
		Plan:   plan,
		Codec:  p.cfg.FFmpeg.AudioCodec,
	}); err != nil {
		return err
	}
	tl.AttachAudio(fittedPath)

	// Stage 5: final encode.
	if err := p.ffmpeg.Mux(ctx, ffmpeg.MuxOptions{
		VideoPath: reelPath,
		AudioPath: tl.AudioPath,
		Output:    req.Output,
		Encode:    p.encodeOptions(),
	}); err != nil {
		return err
	}

	p.logger.Info().
		Str("output", req.Output).
		Dur("duration", tl.Total).
		Msg("reel build complete")

	return nil
}

// buildSegments renders every catalogue entry. Builds are independent of
// each other, so they run on a small worker pool; the returned slice is in
// catalogue order regardless.
func (p *Pipeline) buildSegments(ctx context.Context, req RenderRequest, workDir string) ([]timeline.Segment, error) {
	params := ffmpeg.SegmentParams{
		Width:    p.cfg.Reel.Width,
		Height:   p.cfg.Reel.Height,
		FPS:      p.cfg.Reel.FPS,
		Duration: p.cfg.Reel.SegmentSec,
	}
	style := ffmpeg.TextStyle{
		Font:      p.cfg.Text.Font,
		FontSize:  p.cfg.Text.FontSize,
		FontColor: p.cfg.Text.FontColor,
		BoxColor:  p.cfg.Text.BoxColor,
	}
	perSegment := util.SecondsToDuration(p.cfg.Reel.SegmentSec)

	workers := p.cfg.Concurrency
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	segments := make([]timeline.Segment, len(req.Catalogue))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, entry := range req.Catalogue {
		wg.Add(1)
		go func(i int, entry effects.Entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			output := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp4", i))
			buildErr := p.ffmpeg.BuildSegment(ctx, ffmpeg.SegmentOptions{
				Label:    entry.Label,
				Sequence: entry.Produce(),
				Image:    req.Image,
				Output:   output,
				Style:    style,
				Params:   params,
				Encode:   p.encodeOptions(),
			})
			if buildErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = buildErr
					cancel()
				}
				mu.Unlock()
				return
			}

			segments[i] = timeline.Segment{
				Label:     entry.Label,
				Path:      output,
				Duration:  perSegment,
				FrameRate: p.cfg.Reel.FPS,
			}
		}(i, entry)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}

func (p *Pipeline) encodeOptions() ffmpeg.EncodeOptions {
	return ffmpeg.EncodeOptions{
		VideoCodec: p.cfg.FFmpeg.VideoCodec,
		AudioCodec: p.cfg.FFmpeg.AudioCodec,
		Preset:     p.cfg.FFmpeg.Preset,
		CRF:        p.cfg.FFmpeg.CRF,
		FPS:        p.cfg.Reel.FPS,
	}
}
