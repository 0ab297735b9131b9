package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryPrepareSave(t *testing.T) {
	now := time.Now()
	c := Category{Name: "Travel Notes"}
	c.PrepareSave(nil, now)

	assert.Equal(t, "#1890ff", c.Color)
	assert.Equal(t, "travel-notes", c.Slug)
	assert.Equal(t, now, c.CreatedAt)

	// Renaming regenerates the slug; an unchanged name keeps it.
	prev := c
	c.PrepareSave(&prev, now)
	assert.Equal(t, "travel-notes", c.Slug)

	prev = c
	c.Name = "Street"
	c.PrepareSave(&prev, now)
	assert.Equal(t, "street", c.Slug)
}

func TestCategoryRequestValidate(t *testing.T) {
	valid := CategoryRequest{Name: "Travel"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&CategoryRequest{}).Validate())

	badParent := CategoryRequest{Name: "Travel", Parent: ptr("zzz")}
	assert.Error(t, badParent.Validate())
}

func TestCategoryRequestApply(t *testing.T) {
	req := CategoryRequest{Name: "Travel", Parent: ptr("507f1f77bcf86cd799439011")}

	c := Category{IsActive: true}
	require.NoError(t, req.Apply(&c))
	require.NotNil(t, c.Parent)
	assert.Equal(t, "507f1f77bcf86cd799439011", c.Parent.Hex())
	assert.True(t, c.IsActive, "isActive untouched when omitted")

	f := false
	req.IsActive = &f
	require.NoError(t, req.Apply(&c))
	assert.False(t, c.IsActive)

	// An explicit empty parent makes the category a root.
	req.Parent = ptr("")
	require.NoError(t, req.Apply(&c))
	assert.Nil(t, c.Parent)
}

func TestCategoryRequestApplyKeepsOmittedFields(t *testing.T) {
	c := Category{
		Name:        "Travel",
		Description: "long-form trip write-ups",
		Icon:        "camera",
		Color:       "#ff0000",
		SortOrder:   5,
		IsActive:    true,
	}

	req := CategoryRequest{Name: "Travel Notes"}
	require.NoError(t, req.Apply(&c))

	assert.Equal(t, "Travel Notes", c.Name)
	assert.Equal(t, "long-form trip write-ups", c.Description)
	assert.Equal(t, "camera", c.Icon)
	assert.Equal(t, "#ff0000", c.Color)
	assert.Equal(t, 5, c.SortOrder)
	assert.True(t, c.IsActive)
}
