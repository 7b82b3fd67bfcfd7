package effects

// Producer builds the effect sequence for one catalogue entry. Producers
// must be pure: no side effects, same output on every call.
type Producer func() []Descriptor

// Entry pairs a human-readable label with the producer for its effect
// sequence. Catalogue order is final timeline order.
type Entry struct {
	Label   string
	Produce Producer
}

// Catalogue is an ordered collection of labelled effect sequences.
type Catalogue []Entry

// Labels returns the entry labels in catalogue order.
func (c Catalogue) Labels() []string {
	labels := make([]string, len(c))
	for i, e := range c {
		labels[i] = e.Label
	}
	return labels
}

// Sequence returns a producer for a fixed descriptor list. Each call
// yields a fresh copy, so callers may mutate the result freely.
func Sequence(ds ...Descriptor) Producer {
	return func() []Descriptor {
		out := make([]Descriptor, len(ds))
		copy(out, ds)
		return out
	}
}

// Compose chains producers: the composed producer yields the first
// producer's effects followed by the second's, and so on. Concatenation,
// not merging; relative order inside each producer is preserved.
func Compose(producers ...Producer) Producer {
	return func() []Descriptor {
		var out []Descriptor
		for _, p := range producers {
			out = append(out, p()...)
		}
		return out
	}
}

// Default returns the built-in catalogue: one entry per supported effect,
// in showcase order. The freeze-end entry holds the frame reached just
// before the segment boundary; the offset is relative to the segment
// duration.
func Default() Catalogue {
	return Catalogue{
		{"Fade In / Fade Out", Sequence(FadeIn(0.8), FadeOut(0.8))},
		{"Slide-In Left", Sequence(SlideIn(0.8, SideLeft))},
		{"Slide-In Right", Sequence(SlideIn(0.8, SideRight))},
		{"Slide-In Top", Sequence(SlideIn(0.8, SideTop))},
		{"Slide-In Bottom", Sequence(SlideIn(0.8, SideBottom))},
		{"Slide-Out Left", Sequence(SlideOut(0.8, SideLeft))},
		{"Slide-Out Right", Sequence(SlideOut(0.8, SideRight))},
		{"Slide-Out Top", Sequence(SlideOut(0.8, SideTop))},
		{"Slide-Out Bottom", Sequence(SlideOut(0.8, SideBottom))},
		{"Rotate 360", Sequence(Rotate(360))},
		{"Rotate 180", Sequence(Rotate(180))},
		{"Mirror X", Sequence(MirrorX())},
		{"Mirror Y", Sequence(MirrorY())},
		{"Zoom-In (enlarge)", Sequence(Zoom("1+0.25*t"))},
		{"Zoom-Out (shrink)", Sequence(Zoom("1.5-0.25*t"))},
		{"Black & White", Sequence(BlackAndWhite())},
		{"Invert Colors", Sequence(Invert())},
		{"Increase Contrast", Sequence(Contrast(40))},
		{"Gamma Brighten", Sequence(Gamma(1.5))},
		{"Blink", Sequence(Blink(0.2, 0.2))},
		{"Freeze Start", Sequence(FreezeAt(0))},
		{"Freeze End", Sequence(FreezeBeforeEnd(0.1))},
		{"Time Mirror", Sequence(TimeMirror())},
		{"Time Symmetrize", Sequence(TimeSymmetrize())},
		{"SuperSample", Sequence(SuperSample(0.1, 6))},
		{"Accel-Decel", Sequence(AccelDecel())},
		{"Painting", Sequence(Painting())},
		{"Scroll", Sequence(Scroll(0, 100))},
		{"Margin Glow", Sequence(Margin(20, "gold"))},
	}
}
