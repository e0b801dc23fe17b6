// Package surface provides the raster output surface that a capture paints
// into, the default surface factory and encoders for the supported image
// formats.
package surface

import (
	"errors"
	"image"
	"sync"
)

// ErrEmptySurface is returned when encoding a surface that has no pixels.
var ErrEmptySurface = errors.New("surface has no pixels")

// Surface is a raster destination. The backing image is allocated lazily by
// the render pipeline once the output size is known.
type Surface struct {
	mu  sync.Mutex
	img *image.RGBA
}

// New creates an empty surface with no backing image.
func New() *Surface {
	return &Surface{}
}

// NewWithImage wraps an existing RGBA image. Allocate reuses it when the
// requested size matches its bounds.
func NewWithImage(img *image.RGBA) *Surface {
	return &Surface{img: img}
}

// Provide returns existing when it is non-nil, otherwise a fresh surface.
// It is the default surface factory used by the capture orchestrator.
func Provide(existing *Surface) *Surface {
	if existing != nil {
		return existing
	}
	return New()
}

// Allocate returns a backing image of the given size, reusing the current one
// when its dimensions already match. Negative sizes are treated as zero.
func (s *Surface) Allocate(width, height int) *image.RGBA {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.img != nil && s.img.Bounds().Dx() == width && s.img.Bounds().Dy() == height {
		return s.img
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return s.img
}

// Image returns the backing image, or nil if nothing has been allocated.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Bounds returns the bounds of the backing image.
func (s *Surface) Bounds() image.Rectangle {
	img := s.Image()
	if img == nil {
		return image.Rectangle{}
	}
	return img.Bounds()
}

// Empty reports whether the surface holds no pixels.
func (s *Surface) Empty() bool {
	return s.Bounds().Empty()
}
