package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"already lowercase", "hello", "hello"},
		{"diacritics stripped", "Ánh Sáng", "anh-sang"},
		{"punctuation removed", "Go, MongoDB & S3!", "go-mongodb-s3"},
		{"repeated spaces collapse", "a   b", "a-b"},
		{"leading and trailing junk", "  --Hello--  ", "hello"},
		{"digits kept", "Top 10 Lenses", "top-10-lenses"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateSlug(tc.input))
		})
	}
}

func TestGenerateSlugCJKFallback(t *testing.T) {
	// A fully CJK title strips to nothing; the slug falls back to a random
	// fragment instead of an empty string.
	slug := GenerateSlug("你好 世界")
	assert.NotEmpty(t, slug)
	assert.Regexp(t, `^[a-z0-9-]+$`, slug)

	// Two calls must not collide.
	assert.NotEqual(t, slug, GenerateSlug("你好 世界"))
}

func TestGenerateSlugMixedCJKAndLatin(t *testing.T) {
	assert.Equal(t, "golang", GenerateSlug("Golang 入门"))
}
