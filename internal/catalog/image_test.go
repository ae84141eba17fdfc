package catalog

import (
	"testing"

	"github.com/cityverse/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveMainImage(t *testing.T) {
	tests := []struct {
		name string
		city domain.City
		want string
		ok   bool
	}{
		{
			name: "mainImage wins",
			city: domain.City{MainImage: "A", Image: "B", Images: []string{"C"}},
			want: "A",
			ok:   true,
		},
		{
			name: "image is second",
			city: domain.City{Image: "B", Images: []string{"C"}},
			want: "B",
			ok:   true,
		},
		{
			name: "first non-empty gallery entry",
			city: domain.City{Images: []string{"", "C"}},
			want: "C",
			ok:   true,
		},
		{
			name: "nothing resolves",
			city: domain.City{},
			want: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveMainImage(tt.city)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestMainImageView_SeededFromResolution(t *testing.T) {
	view := NewMainImageView(domain.City{Image: "B"}, "placeholder.jpg")
	assert.Equal(t, "B", view.Current())

	empty := NewMainImageView(domain.City{}, "placeholder.jpg")
	assert.Equal(t, "placeholder.jpg", empty.Current())
}

func TestMainImageView_FailSwapsExactlyOnce(t *testing.T) {
	view := NewMainImageView(domain.City{Image: "B"}, "placeholder.jpg")

	view.Fail()
	assert.Equal(t, "placeholder.jpg", view.Current())

	// a failure of the placeholder itself must not loop
	view.Fail()
	view.Fail()
	assert.Equal(t, "placeholder.jpg", view.Current())
}

func TestMainImageView_SelectRepointsAndRearmsFallback(t *testing.T) {
	view := NewMainImageView(domain.City{Image: "B"}, "placeholder.jpg")

	view.Select("gallery.jpg")
	assert.Equal(t, "gallery.jpg", view.Current())

	view.Select("")
	assert.Equal(t, "gallery.jpg", view.Current(), "empty selection is ignored")

	view.Fail()
	assert.Equal(t, "placeholder.jpg", view.Current())

	view.Select("poi.jpg")
	view.Fail()
	assert.Equal(t, "placeholder.jpg", view.Current(), "new selection gets its own one-shot fallback")
}
