package pipeline

import (
	"fmt"

	"github.com/kikiluvv/effectreel/internal/effects"
)

// RenderRequest describes one reel build.
type RenderRequest struct {
	Image     string
	Audio     string
	Output    string
	Catalogue effects.Catalogue
}

func (r RenderRequest) validate() error {
	if r.Image == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if r.Audio == "" {
		return fmt.Errorf("audio path cannot be empty")
	}
	if r.Output == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	return nil
}

// ResourceError reports a missing or unreadable input resource. Raised
// before any segment is built.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
