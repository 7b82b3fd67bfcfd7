package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kikiluvv/effectreel/internal/config"
	"github.com/kikiluvv/effectreel/internal/effects"
	"github.com/kikiluvv/effectreel/internal/ffmpeg"
	"github.com/kikiluvv/effectreel/internal/logging"
	"github.com/kikiluvv/effectreel/internal/pipeline"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "effectreel",
	Short: "effectreel - effect showcase reel generator",
	Long:  "Assembles a demo reel from a still image: one labelled segment per catalogue effect, concatenated and scored with a looped audio track.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./effectreel.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(effectsCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(configCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [image] [audio] [output]",
	Short: "Render the effect reel",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		req := pipeline.RenderRequest{
			Image:     args[0],
			Audio:     args[1],
			Output:    args[2],
			Catalogue: effects.Default(),
		}

		if err := pipe.Render(cmd.Context(), req); err != nil {
			log.Error().Err(err).Msg("reel build failed")
			return err
		}

		log.Info().Str("output", args[2]).Msg("reel written")
		return nil
	},
}

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List the effect catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		for i, entry := range effects.Default() {
			kinds := entry.Produce()
			names := make([]string, len(kinds))
			for j, d := range kinds {
				names[j] = string(d.Kind)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-22s %v\n", i+1, entry.Label, names)
		}
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [file]",
	Short: "Print media metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		info, err := exec.ProbeMedia(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "file:     %s\n", info.FilePath)
		fmt.Fprintf(out, "duration: %v\n", info.Duration)
		if info.HasVideo {
			fmt.Fprintf(out, "video:    %dx%d @%.2ffps (%s)\n", info.Width, info.Height, info.FPS, info.VideoCodec)
		}
		if info.HasAudio {
			fmt.Fprintf(out, "audio:    %s\n", info.AudioCodec)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to ./effectreel.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "./effectreel.yaml"
		if err := config.Default().Save(path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("config written")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
