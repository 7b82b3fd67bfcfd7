package ffmpeg

import (
	"context"
	"fmt"

	"github.com/kikiluvv/effectreel/internal/timeline"
	"github.com/kikiluvv/effectreel/pkg/util"
)

// FitAudioOptions defines an audio fit execution.
type FitAudioOptions struct {
	Input        string
	Output       string
	Plan         timeline.FitPlan
	Codec        string
	ProgressFunc ProgressFunc
}

// FitAudio realizes a fit plan: loops the track from the start until the
// target is covered and cuts at the exact boundary, or trims a longer
// track. Loop seams restart abruptly; no crossfade. The output duration
// matches the plan target within one audio frame.
func (e *Executor) FitAudio(ctx context.Context, opts FitAudioOptions) error {
	if opts.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	codec := opts.Codec
	if codec == "" {
		codec = DefaultAudioCodec
	}

	e.logger.Info().
		Str("input", opts.Input).
		Str("mode", string(opts.Plan.Mode)).
		Int("extra_loops", opts.Plan.ExtraLoops).
		Dur("target", opts.Plan.Target).
		Msg("fitting audio")

	var args []string
	if opts.Plan.Mode == timeline.FitLoop {
		args = append(args, "-stream_loop", fmt.Sprintf("%d", opts.Plan.ExtraLoops))
	}
	args = append(args,
		"-i", opts.Input,
		"-t", util.FormatSeconds(opts.Plan.Target),
		"-vn",
		"-acodec", codec,
		opts.Output,
	)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("audio fit")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("audio fit failed: %w", err)
	}

	return nil
}
