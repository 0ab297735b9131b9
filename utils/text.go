package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var htmlTags = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup so reading time and excerpts work on plain text.
func StripHTML(s string) string {
	return htmlTags.ReplaceAllString(s, "")
}

// ReadingTime estimates minutes to read, at 300 characters per minute.
func ReadingTime(content string) int {
	n := len([]rune(StripHTML(content)))
	if n == 0 {
		return 0
	}
	return (n + 299) / 300
}

// Excerpt returns the first 200 plain-text characters of the content.
func Excerpt(content string) string {
	plain := StripHTML(content)
	runes := []rune(plain)
	if len(runes) <= 200 {
		return plain
	}
	return string(runes[:200]) + "..."
}

// UniqueFilename keeps the original extension but replaces the name so
// concurrent uploads of the same file never collide in object storage.
func UniqueFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	return uuid.NewString() + strings.ToLower(ext)
}

// TitleFromFilename derives a photo title from the uploaded file name.
func TitleFromFilename(originalName string) string {
	return strings.TrimSuffix(originalName, filepath.Ext(originalName))
}
