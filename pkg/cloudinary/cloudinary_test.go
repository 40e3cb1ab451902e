package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{
			"versioned nested path",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/blog/images/post_abc.jpg",
			"blog/images/post_abc",
			true,
		},
		{
			"no version segment",
			"https://res.cloudinary.com/demo/image/upload/users/avatars/avatar_1.png",
			"users/avatars/avatar_1",
			true,
		},
		{
			"folder starting with v but not a version",
			"https://res.cloudinary.com/demo/image/upload/videos/clip.jpg",
			"videos/clip",
			true,
		},
		{
			"no extension",
			"https://res.cloudinary.com/demo/image/upload/v1/uploads/raw_file",
			"uploads/raw_file",
			true,
		},
		{"not cloudinary", "https://example.com/image/upload/v1/a/b.jpg", "", false},
		{"no upload segment", "https://res.cloudinary.com/demo/image/a/b.jpg", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PublicIDFromURL(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
