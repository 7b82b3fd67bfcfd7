package ffmpeg

import (
	"context"
	"fmt"
	"strings"
)

// ConcatOptions defines concatenation parameters.
type ConcatOptions struct {
	Inputs       []string
	Output       string
	Width        int
	Height       int
	FPS          int
	Encode       EncodeOptions
	ProgressFunc ProgressFunc
}

// Concat joins the inputs strictly in order into one video. Inputs are
// re-rendered onto a shared canvas before the concat filter runs, so
// segments whose effect chains changed their frame geometry still compose
// cleanly. This is deliberately not the cheap demuxer-level append.
func (e *Executor) Concat(ctx context.Context, opts ConcatOptions) error {
	if len(opts.Inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return fmt.Errorf("invalid canvas %dx%d @%dfps", opts.Width, opts.Height, opts.FPS)
	}

	e.logger.Info().
		Int("inputs", len(opts.Inputs)).
		Str("output", opts.Output).
		Msg("concatenating segments")

	var args []string
	for _, input := range opts.Inputs {
		args = append(args, "-i", input)
	}

	var graph []string
	var pads []string
	for i := range opts.Inputs {
		pad := fmt.Sprintf("c%d", i)
		graph = append(graph, fmt.Sprintf(
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,"+
				"pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%d[%s]",
			i, opts.Width, opts.Height, opts.Width, opts.Height, opts.FPS, pad))
		pads = append(pads, "["+pad+"]")
	}
	graph = append(graph, fmt.Sprintf("%sconcat=n=%d:v=1:a=0[vout]",
		strings.Join(pads, ""), len(opts.Inputs)))

	enc := opts.Encode.withDefaults()
	args = append(args,
		"-filter_complex", strings.Join(graph, ";"),
		"-map", "[vout]",
		"-c:v", enc.VideoCodec,
		"-crf", fmt.Sprintf("%d", enc.CRF),
		"-preset", enc.Preset,
		"-r", fmt.Sprintf("%d", opts.FPS),
		opts.Output,
	)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("concat")
		},
	}

	return e.Run(ctx, runOpts)
}
