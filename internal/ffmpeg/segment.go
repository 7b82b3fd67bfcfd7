package ffmpeg

import (
	"context"
	"fmt"

	"github.com/kikiluvv/effectreel/internal/effects"
	"github.com/kikiluvv/effectreel/pkg/util"
)

// SegmentOptions defines one labelled effect segment build.
type SegmentOptions struct {
	Label        string
	Sequence     []effects.Descriptor
	Image        string
	Output       string
	Style        TextStyle
	Params       SegmentParams
	Encode       EncodeOptions
	ProgressFunc ProgressFunc
}

// BuildError identifies the segment a build failed on.
type BuildError struct {
	Label string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building segment %q: %v", e.Label, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// BuildSegment renders one segment: the still image looped for the
// segment duration, the effect sequence applied in declared order, and the
// label composited bottom-center on top. Pure construction of one output
// file; failures carry the offending label and effect.
func (e *Executor) BuildSegment(ctx context.Context, opts SegmentOptions) error {
	if opts.Image == "" {
		return &BuildError{Label: opts.Label, Err: fmt.Errorf("image path is required")}
	}
	if opts.Output == "" {
		return &BuildError{Label: opts.Label, Err: fmt.Errorf("output path is required")}
	}

	graph, err := CompileSegmentGraph(opts.Sequence, opts.Label, opts.Style, opts.Params)
	if err != nil {
		return &BuildError{Label: opts.Label, Err: err}
	}

	enc := opts.Encode.withDefaults()
	duration := util.SecondsToDuration(opts.Params.Duration)

	e.logger.Info().
		Str("label", opts.Label).
		Int("effects", len(opts.Sequence)).
		Str("output", opts.Output).
		Msg("building segment")

	args := []string{
		"-loop", "1",
		"-framerate", fmt.Sprintf("%d", opts.Params.FPS),
		"-i", opts.Image,
		"-filter_complex", graph,
		"-map", "[vout]",
		"-t", util.FormatSeconds(duration),
		"-r", fmt.Sprintf("%d", opts.Params.FPS),
		"-c:v", enc.VideoCodec,
		"-crf", fmt.Sprintf("%d", enc.CRF),
		"-preset", enc.Preset,
		"-an",
		opts.Output,
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("segment build")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return &BuildError{Label: opts.Label, Err: err}
	}

	e.logger.Debug().Str("label", opts.Label).Msg("segment built")
	return nil
}
