package catalog

import "github.com/cityverse/backend/internal/domain"

// ResolveMainImage picks the display image for a city with a fixed
// precedence: mainImage, then image, then the first non-empty gallery
// entry. ok is false when nothing resolves; the consumer must substitute
// its placeholder rather than render an empty reference.
func ResolveMainImage(city domain.City) (string, bool) {
	if city.MainImage != "" {
		return city.MainImage, true
	}
	if city.Image != "" {
		return city.Image, true
	}
	for _, img := range city.Images {
		if img != "" {
			return img, true
		}
	}
	return "", false
}

// MainImageView is the per-view "currently displayed main image" state,
// seeded from ResolveMainImage. It is owned by one consumer and never
// persisted; the next fetch of the city starts a fresh view.
type MainImageView struct {
	current     string
	placeholder string
	failed      bool
}

func NewMainImageView(city domain.City, placeholder string) *MainImageView {
	view := &MainImageView{placeholder: placeholder}
	if resolved, ok := ResolveMainImage(city); ok {
		view.current = resolved
	} else {
		view.current = placeholder
	}
	return view
}

func (v *MainImageView) Current() string {
	return v.current
}

// Select re-points the view at a gallery or point-of-interest image.
// Empty URLs are ignored. Selecting clears a previous load failure so the
// new image gets its own one-shot fallback.
func (v *MainImageView) Select(url string) {
	if url == "" {
		return
	}
	v.current = url
	v.failed = false
}

// Fail records a load-error signal from the rendering surface and swaps
// to the placeholder exactly once. Repeated failures, including failures
// of the placeholder itself, must not loop.
func (v *MainImageView) Fail() {
	if v.failed || v.current == v.placeholder {
		return
	}
	v.current = v.placeholder
	v.failed = true
}
