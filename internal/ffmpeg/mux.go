package ffmpeg

import (
	"context"
	"fmt"
)

// MuxOptions defines the final encode: the assembled timeline video plus
// the fitted audio track.
type MuxOptions struct {
	VideoPath    string
	AudioPath    string
	Output       string
	Encode       EncodeOptions
	ProgressFunc ProgressFunc
}

// Mux attaches the audio track to the timeline video and writes the final
// file. Encoder settings are passed through verbatim.
func (e *Executor) Mux(ctx context.Context, opts MuxOptions) error {
	if opts.VideoPath == "" {
		return fmt.Errorf("video path is required")
	}
	if opts.AudioPath == "" {
		return fmt.Errorf("audio path is required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	enc := opts.Encode.withDefaults()

	e.logger.Info().
		Str("video", opts.VideoPath).
		Str("audio", opts.AudioPath).
		Str("output", opts.Output).
		Msg("muxing final output")

	args := []string{
		"-i", opts.VideoPath,
		"-i", opts.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", enc.VideoCodec,
		"-crf", fmt.Sprintf("%d", enc.CRF),
		"-preset", enc.Preset,
		"-c:a", enc.AudioCodec,
	}
	if enc.FPS > 0 {
		args = append(args, "-r", fmt.Sprintf("%d", enc.FPS))
	}
	args = append(args,
		"-shortest",
		"-movflags", "+faststart",
		opts.Output,
	)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("mux")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("final encode failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("final encode completed")
	return nil
}
