package ffmpeg

import "time"

// MediaInfo contains metadata about a media file.
type MediaInfo struct {
	FilePath   string
	Duration   time.Duration
	Width      int
	Height     int
	FPS        float64
	VideoCodec string
	HasVideo   bool
	HasAudio   bool
	AudioCodec string
}

// Progress represents ffmpeg progress data parsed from -progress output.
type Progress struct {
	Frame   int
	FPS     float64
	OutTime string
	Speed   string
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
type ProgressFunc func(*Progress)

// RunOptions configures a single ffmpeg execution.
type RunOptions struct {
	Args            []string
	ProgressHandler ProgressFunc
	LogHandler      func(line string)
}

// TextStyle configures the label overlay drawn on each segment.
type TextStyle struct {
	Font      string
	FontSize  int
	FontColor string
	BoxColor  string
}

// EncodeOptions are the final encoder settings, passed through to ffmpeg
// verbatim.
type EncodeOptions struct {
	VideoCodec string
	AudioCodec string
	Preset     string
	CRF        int
	FPS        int
}

// Default encoding settings.
const (
	DefaultCRF        = 23
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)

func (o EncodeOptions) withDefaults() EncodeOptions {
	if o.VideoCodec == "" {
		o.VideoCodec = DefaultVideoCodec
	}
	if o.AudioCodec == "" {
		o.AudioCodec = DefaultAudioCodec
	}
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.CRF == 0 {
		o.CRF = DefaultCRF
	}
	return o
}
