package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kikiluvv/effectreel/internal/effects"
)

// SegmentParams fixes the canvas and timing every effect filter is
// compiled against.
type SegmentParams struct {
	Width    int
	Height   int
	FPS      int
	Duration float64 // seconds
}

// CompileSegmentGraph builds the full filter_complex for one segment: the
// base chain normalizing the still image to the canvas, the effect stages
// in declared order, and the label overlay on top. The effect sequence
// order is significant and preserved exactly; this is where descriptor
// parameters are validated.
func CompileSegmentGraph(seq []effects.Descriptor, label string, style TextStyle, p SegmentParams) (string, error) {
	if p.Width <= 0 || p.Height <= 0 || p.FPS <= 0 || p.Duration <= 0 {
		return "", fmt.Errorf("invalid segment params: %dx%d @%dfps %.3fs", p.Width, p.Height, p.FPS, p.Duration)
	}

	var stages []string

	base := fmt.Sprintf(
		"[0:v]scale=%d:%d:force_original_aspect_ratio=decrease,"+
			"pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%d,format=yuv420p[v0]",
		p.Width, p.Height, p.Width, p.Height, p.FPS)
	stages = append(stages, base)

	cur := "v0"
	for i, d := range seq {
		next := fmt.Sprintf("v%d", i+1)
		stage, err := compileEffect(d, p, cur, next, i)
		if err != nil {
			return "", err
		}
		stages = append(stages, stage)
		cur = next
	}

	overlay := fmt.Sprintf("[%s]%s[vout]", cur, drawLabel(label, style))
	stages = append(stages, overlay)

	return strings.Join(stages, ";"), nil
}

// compileEffect renders one descriptor into a filtergraph stage reading
// pad in and writing pad out. Most effects are a linear filter chain; the
// time-symmetrize effect needs an internal split/concat subgraph.
func compileEffect(d effects.Descriptor, p SegmentParams, in, out string, idx int) (string, error) {
	chain, err := effectChain(d, p, idx)
	if err != nil {
		return "", err
	}
	if strings.Contains(chain, "[") {
		// Subgraph with its own pads: substitute the boundary labels.
		chain = strings.ReplaceAll(chain, "{in}", in)
		chain = strings.ReplaceAll(chain, "{out}", out)
		return chain, nil
	}
	return fmt.Sprintf("[%s]%s[%s]", in, chain, out), nil
}

func effectChain(d effects.Descriptor, p SegmentParams, idx int) (string, error) {
	D := p.Duration

	switch d.Kind {
	case effects.KindFadeIn:
		if err := checkSpan(d, D); err != nil {
			return "", err
		}
		return fmt.Sprintf("fade=t=in:st=0:d=%.3f", d.Span), nil

	case effects.KindFadeOut:
		if err := checkSpan(d, D); err != nil {
			return "", err
		}
		return fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", D-d.Span, d.Span), nil

	case effects.KindSlideIn, effects.KindSlideOut:
		if err := checkSpan(d, D); err != nil {
			return "", err
		}
		return slideChain(d, D)

	case effects.KindRotate:
		return fmt.Sprintf("rotate='(%.3f*PI/180)*t/%.3f':c=black", d.Degrees, D), nil

	case effects.KindMirrorX:
		return "hflip", nil

	case effects.KindMirrorY:
		return "vflip", nil

	case effects.KindZoom:
		if strings.TrimSpace(d.Scale) == "" {
			return "", &effects.ParamError{Kind: d.Kind, Reason: "empty scale expression"}
		}
		// The descriptor expression is a function of elapsed seconds t;
		// zoompan calls it in_time. Passed through otherwise unmodified.
		expr := timeVar.ReplaceAllString(d.Scale, "in_time")
		return fmt.Sprintf(
			"scale=%d:%d,zoompan=z='%s':d=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%d",
			p.Width*2, p.Height*2, expr, p.Width, p.Height, p.FPS), nil

	case effects.KindBlackAndWhite:
		return "hue=s=0", nil

	case effects.KindInvert:
		return "negate", nil

	case effects.KindContrast:
		return fmt.Sprintf("eq=contrast=%.3f", 1+d.Amount/100), nil

	case effects.KindGamma:
		if d.Amount < 0.1 || d.Amount > 10 {
			return "", &effects.ParamError{Kind: d.Kind, Reason: fmt.Sprintf("gamma %.3f outside [0.1, 10]", d.Amount)}
		}
		return fmt.Sprintf("eq=gamma=%.3f", d.Amount), nil

	case effects.KindBlink:
		if d.OnSpan <= 0 || d.OffSpan <= 0 {
			return "", &effects.ParamError{Kind: d.Kind, Reason: "blink intervals must be positive"}
		}
		period := d.OnSpan + d.OffSpan
		return fmt.Sprintf("eq=brightness=-1:enable='gte(mod(t,%.3f),%.3f)'", period, d.OnSpan), nil

	case effects.KindFreeze:
		at := d.At
		if d.FromEnd {
			at = D - d.At
		}
		if at < 0 || at >= D {
			return "", &effects.ParamError{Kind: d.Kind, Reason: fmt.Sprintf("freeze point %.3fs outside segment of %.3fs", at, D)}
		}
		if at == 0 {
			return fmt.Sprintf("trim=end_frame=1,setpts=PTS-STARTPTS,tpad=stop_mode=clone:stop_duration=%.3f", D), nil
		}
		return fmt.Sprintf("trim=end=%.3f,setpts=PTS-STARTPTS,tpad=stop_mode=clone:stop_duration=%.3f", at, D-at), nil

	case effects.KindTimeMirror:
		return "reverse", nil

	case effects.KindTimeSymmetrize:
		a := fmt.Sprintf("fx%da", idx)
		b := fmt.Sprintf("fx%db", idx)
		r := fmt.Sprintf("fx%dr", idx)
		return fmt.Sprintf(
			"[{in}]split[%s][%s];[%s]reverse[%s];[%s][%s]concat=n=2:v=1:a=0,setpts=0.5*PTS[{out}]",
			a, b, b, r, a, r), nil

	case effects.KindSuperSample:
		if d.Frames < 2 || d.Frames > 128 {
			return "", &effects.ParamError{Kind: d.Kind, Reason: fmt.Sprintf("frame count %d outside [2, 128]", d.Frames)}
		}
		return fmt.Sprintf("tmix=frames=%d", d.Frames), nil

	case effects.KindAccelDecel:
		return fmt.Sprintf(
			"setpts='(%.3f*(3*pow(T/%.3f,2)-2*pow(T/%.3f,3)))/TB'", D, D, D), nil

	case effects.KindPainting:
		return "smartblur=lr=5:ls=-1", nil

	case effects.KindScroll:
		h := d.XSpeed / (float64(p.Width) * float64(p.FPS))
		v := d.YSpeed / (float64(p.Height) * float64(p.FPS))
		return fmt.Sprintf("scroll=horizontal=%.6f:vertical=%.6f", h, v), nil

	case effects.KindMargin:
		width := int(d.Amount)
		if width <= 0 {
			return "", &effects.ParamError{Kind: d.Kind, Reason: fmt.Sprintf("margin width %.1f must be positive", d.Amount)}
		}
		color := d.Color
		if color == "" {
			color = "black"
		}
		return fmt.Sprintf("pad=w=iw+%d:h=ih+%d:x=%d:y=%d:color=%s", 2*width, 2*width, width, width, color), nil

	default:
		return "", &effects.ParamError{Kind: d.Kind, Reason: "unknown effect kind"}
	}
}

// timeVar matches the standalone identifier t in a scale expression.
var timeVar = regexp.MustCompile(`\bt\b`)

func checkSpan(d effects.Descriptor, total float64) error {
	if d.Span <= 0 {
		return &effects.ParamError{Kind: d.Kind, Reason: fmt.Sprintf("span %.3fs must be positive", d.Span)}
	}
	if d.Span > total {
		return &effects.ParamError{Kind: d.Kind, Reason: fmt.Sprintf("span %.3fs exceeds segment duration %.3fs", d.Span, total)}
	}
	return nil
}

// slideChain moves the picture in or out of frame with a pad+crop window:
// the frame is padded to double size along the slide axis and a
// canvas-sized crop window travels between the padded (black) half and the
// picture half.
func slideChain(d effects.Descriptor, D float64) (string, error) {
	// Animation progress expression, 0 to 1.
	var progress string
	if d.Kind == effects.KindSlideIn {
		progress = fmt.Sprintf("min(t/%.3f,1)", d.Span)
	} else {
		progress = fmt.Sprintf("min(max((t-%.3f)/%.3f,0),1)", D-d.Span, d.Span)
	}

	horizontal := "pad=w=2*iw:h=ih:x=%s:y=0:color=black,crop=w=iw/2:h=ih:x='(iw/2)*%s':y=0"
	vertical := "pad=w=iw:h=2*ih:x=0:y=%s:color=black,crop=w=iw:h=ih/2:x=0:y='(ih/2)*%s'"

	entering := d.Kind == effects.KindSlideIn
	switch d.Side {
	case effects.SideLeft:
		if entering {
			// Window travels from the black half onto the picture.
			return fmt.Sprintf(horizontal, "0", "(1-"+progress+")"), nil
		}
		return fmt.Sprintf(horizontal, "0", progress), nil
	case effects.SideRight:
		if entering {
			return fmt.Sprintf(horizontal, "iw", progress), nil
		}
		return fmt.Sprintf(horizontal, "iw", "(1-"+progress+")"), nil
	case effects.SideTop:
		if entering {
			return fmt.Sprintf(vertical, "0", "(1-"+progress+")"), nil
		}
		return fmt.Sprintf(vertical, "0", progress), nil
	case effects.SideBottom:
		if entering {
			return fmt.Sprintf(vertical, "ih", progress), nil
		}
		return fmt.Sprintf(vertical, "ih", "(1-"+progress+")"), nil
	default:
		return "", &effects.ParamError{Kind: d.Kind, Reason: fmt.Sprintf("unknown side %q", d.Side)}
	}
}

// drawLabel renders the drawtext overlay for the segment label:
// bottom-centered, boxed, visible for the whole segment.
func drawLabel(label string, style TextStyle) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("text='%s'", escapeDrawText(label)))
	if style.Font != "" {
		parts = append(parts, fmt.Sprintf("font=%s", style.Font))
	}
	parts = append(parts, fmt.Sprintf("fontsize=%d", style.FontSize))
	parts = append(parts, fmt.Sprintf("fontcolor=%s", style.FontColor))
	parts = append(parts, "box=1")
	parts = append(parts, fmt.Sprintf("boxcolor=%s", style.BoxColor))
	parts = append(parts, "boxborderw=8")
	parts = append(parts, "x=(w-text_w)/2")
	parts = append(parts, "y=h-text_h-20")
	return "drawtext=" + strings.Join(parts, ":")
}

// escapeDrawText escapes characters the drawtext filter treats specially.
func escapeDrawText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\\\'`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return s
}
