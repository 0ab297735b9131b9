package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "hello world", StripHTML("<p>hello <b>world</b></p>"))
	assert.Equal(t, "plain", StripHTML("plain"))
	assert.Equal(t, "", StripHTML("<br/>"))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("short"))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("a", 300)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("a", 301)))
	assert.Equal(t, 4, ReadingTime(strings.Repeat("字", 1000)))
}

func TestReadingTimeIgnoresMarkup(t *testing.T) {
	content := "<p>" + strings.Repeat("a", 300) + "</p>"
	assert.Equal(t, 1, ReadingTime(content))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", Excerpt("short text"))

	long := strings.Repeat("字", 250)
	got := Excerpt(long)
	assert.Equal(t, strings.Repeat("字", 200)+"...", got)
	assert.Equal(t, 203, len([]rune(got)))
}

func TestUniqueFilename(t *testing.T) {
	a := UniqueFilename("IMG_1234.JPG")
	b := UniqueFilename("IMG_1234.JPG")

	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.NotEqual(t, a, b)

	assert.False(t, strings.Contains(UniqueFilename("noext"), "."))
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "IMG_1234", TitleFromFilename("IMG_1234.jpg"))
	assert.Equal(t, "portrait.final", TitleFromFilename("portrait.final.png"))
	assert.Equal(t, "noext", TitleFromFilename("noext"))
}
