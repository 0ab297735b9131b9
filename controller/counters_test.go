package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagDiff(t *testing.T) {
	added, removed := tagDiff([]string{"a", "b"}, []string{"b", "c"})
	assert.Equal(t, []string{"c"}, added)
	assert.Equal(t, []string{"a"}, removed)
}

func TestTagDiffCreate(t *testing.T) {
	added, removed := tagDiff(nil, []string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, added)
	assert.Empty(t, removed)
}

func TestTagDiffDelete(t *testing.T) {
	added, removed := tagDiff([]string{"x", "y"}, nil)
	assert.Empty(t, added)
	assert.Equal(t, []string{"x", "y"}, removed)
}

func TestTagDiffUnchanged(t *testing.T) {
	added, removed := tagDiff([]string{"a", "b"}, []string{"b", "a"})
	assert.Empty(t, added)
	assert.Empty(t, removed)
}
