package effects

import "fmt"

// Kind identifies a visual effect variant.
type Kind string

const (
	KindFadeIn         Kind = "fade_in"
	KindFadeOut        Kind = "fade_out"
	KindSlideIn        Kind = "slide_in"
	KindSlideOut       Kind = "slide_out"
	KindRotate         Kind = "rotate"
	KindMirrorX        Kind = "mirror_x"
	KindMirrorY        Kind = "mirror_y"
	KindZoom           Kind = "zoom"
	KindBlackAndWhite  Kind = "black_and_white"
	KindInvert         Kind = "invert"
	KindContrast       Kind = "contrast"
	KindGamma          Kind = "gamma"
	KindBlink          Kind = "blink"
	KindFreeze         Kind = "freeze"
	KindTimeMirror     Kind = "time_mirror"
	KindTimeSymmetrize Kind = "time_symmetrize"
	KindSuperSample    Kind = "supersample"
	KindAccelDecel     Kind = "accel_decel"
	KindPainting       Kind = "painting"
	KindScroll         Kind = "scroll"
	KindMargin         Kind = "margin"
)

// Side is the frame edge a slide effect enters or leaves through.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// Descriptor is one effect in a segment's effect sequence: a kind tag plus
// the parameters that kind uses. Descriptors are plain data; they are not
// validated until a segment is built from them.
type Descriptor struct {
	Kind Kind

	// Span is the portion of the segment the effect animates over, in
	// seconds (fades, slides).
	Span float64

	// Side applies to slide effects.
	Side Side

	// Degrees applies to rotation: total rotation over the segment.
	Degrees float64

	// Scale is a time-varying zoom factor, an expression of the elapsed
	// seconds t since segment start. Passed through to the filter engine
	// unmodified.
	Scale string

	// Amount is a kind-specific magnitude: contrast delta, gamma value,
	// margin width in pixels, supersample blur distance.
	Amount float64

	// Frames applies to supersampling: number of frames averaged.
	Frames int

	// OnSpan and OffSpan apply to blinking: visible and hidden intervals
	// in seconds.
	OnSpan  float64
	OffSpan float64

	// At applies to freezing: the timestamp the frame is held from. When
	// FromEnd is set it is an offset back from the segment end.
	At      float64
	FromEnd bool

	// XSpeed and YSpeed apply to scrolling, in pixels per second.
	XSpeed float64
	YSpeed float64

	// Color applies to margins.
	Color string
}

func (d Descriptor) String() string {
	return string(d.Kind)
}

// ParamError reports a descriptor parameter that is invalid for the segment
// being built. It is raised lazily, when the effect sequence is compiled.
type ParamError struct {
	Kind   Kind
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("effect %q: %s", e.Kind, e.Reason)
}

// FadeIn fades from black over the first span seconds.
func FadeIn(span float64) Descriptor {
	return Descriptor{Kind: KindFadeIn, Span: span}
}

// FadeOut fades to black over the last span seconds.
func FadeOut(span float64) Descriptor {
	return Descriptor{Kind: KindFadeOut, Span: span}
}

// SlideIn moves the picture into frame through the given side over span
// seconds.
func SlideIn(span float64, side Side) Descriptor {
	return Descriptor{Kind: KindSlideIn, Span: span, Side: side}
}

// SlideOut moves the picture out of frame through the given side during the
// last span seconds.
func SlideOut(span float64, side Side) Descriptor {
	return Descriptor{Kind: KindSlideOut, Span: span, Side: side}
}

// Rotate spins the picture by the given total degrees over the segment.
func Rotate(degrees float64) Descriptor {
	return Descriptor{Kind: KindRotate, Degrees: degrees}
}

// MirrorX flips the picture horizontally.
func MirrorX() Descriptor { return Descriptor{Kind: KindMirrorX} }

// MirrorY flips the picture vertically.
func MirrorY() Descriptor { return Descriptor{Kind: KindMirrorY} }

// Zoom resizes the picture by a time-varying factor. The expression is in
// terms of t, the elapsed seconds since segment start, e.g. "1+0.25*t".
func Zoom(scaleExpr string) Descriptor {
	return Descriptor{Kind: KindZoom, Scale: scaleExpr}
}

// BlackAndWhite drops all color.
func BlackAndWhite() Descriptor { return Descriptor{Kind: KindBlackAndWhite} }

// Invert inverts all colors.
func Invert() Descriptor { return Descriptor{Kind: KindInvert} }

// Contrast raises contrast by the given amount (percent points).
func Contrast(amount float64) Descriptor {
	return Descriptor{Kind: KindContrast, Amount: amount}
}

// Gamma applies gamma correction.
func Gamma(gamma float64) Descriptor {
	return Descriptor{Kind: KindGamma, Amount: gamma}
}

// Blink alternates the picture between visible for on seconds and hidden
// for off seconds.
func Blink(on, off float64) Descriptor {
	return Descriptor{Kind: KindBlink, OnSpan: on, OffSpan: off}
}

// FreezeAt holds the frame at the given timestamp for the rest of the
// segment.
func FreezeAt(at float64) Descriptor {
	return Descriptor{Kind: KindFreeze, At: at}
}

// FreezeBeforeEnd holds the frame reached the given offset before the
// segment end. The offset is kept relative so it tracks the segment
// duration.
func FreezeBeforeEnd(offset float64) Descriptor {
	return Descriptor{Kind: KindFreeze, At: offset, FromEnd: true}
}

// TimeMirror plays the segment backwards.
func TimeMirror() Descriptor { return Descriptor{Kind: KindTimeMirror} }

// TimeSymmetrize plays the segment forwards then backwards.
func TimeSymmetrize() Descriptor { return Descriptor{Kind: KindTimeSymmetrize} }

// SuperSample motion-blurs by averaging frames over the given distance.
func SuperSample(distance float64, frames int) Descriptor {
	return Descriptor{Kind: KindSuperSample, Amount: distance, Frames: frames}
}

// AccelDecel eases playback speed in and out across the segment.
func AccelDecel() Descriptor { return Descriptor{Kind: KindAccelDecel} }

// Painting gives the picture a painted look.
func Painting() Descriptor { return Descriptor{Kind: KindPainting} }

// Scroll pans the picture at the given speeds in pixels per second.
func Scroll(xSpeed, ySpeed float64) Descriptor {
	return Descriptor{Kind: KindScroll, XSpeed: xSpeed, YSpeed: ySpeed}
}

// Margin draws a colored border of the given width around the picture.
func Margin(width float64, color string) Descriptor {
	return Descriptor{Kind: KindMargin, Amount: width, Color: color}
}
