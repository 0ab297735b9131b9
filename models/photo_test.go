package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoMarkRetouched(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	var p Photo
	p.MarkRetouched("v2", now)

	assert.True(t, p.IsRetouched)
	assert.Equal(t, "v2", p.RetouchedVersion)
	require.NotNil(t, p.RetouchedAt)
	assert.Equal(t, now, *p.RetouchedAt)
}

func TestPhotoPrepareSave(t *testing.T) {
	now := time.Now()

	var p Photo
	p.PrepareSave(now)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, DefaultAuthor, p.Author)
	assert.Equal(t, now, p.CreatedAt)

	later := now.Add(time.Hour)
	p.PrepareSave(later)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, later, p.UpdatedAt)
}

func TestPhotoUpdateRequestValidate(t *testing.T) {
	valid := PhotoUpdateRequest{
		Title:        "portrait",
		ShootDate:    time.Now(),
		ShootSession: "507f1f77bcf86cd799439011",
	}
	assert.NoError(t, valid.Validate())

	missingSession := valid
	missingSession.ShootSession = ""
	assert.Error(t, missingSession.Validate())

	badSession := valid
	badSession.ShootSession = "short"
	assert.Error(t, badSession.Validate())
}

func TestPhotoUpdateRequestApply(t *testing.T) {
	req := PhotoUpdateRequest{
		Title:        "portrait",
		ShootDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ShootSession: "507f1f77bcf86cd799439011",
		Settings:     &CameraSettings{Aperture: "f/1.8", ISO: 200},
		Tags:         []string{"portrait"},
	}

	var p Photo
	require.NoError(t, req.Apply(&p))

	assert.Equal(t, "portrait", p.Title)
	assert.Equal(t, "507f1f77bcf86cd799439011", p.ShootSession.Hex())
	assert.Equal(t, "f/1.8", p.Settings.Aperture)
	assert.Equal(t, 200, p.Settings.ISO)
	assert.Equal(t, []string{"portrait"}, p.Tags)

	bad := req
	bad.ShootSession = "not-a-hex-object-id-chars"
	assert.Error(t, bad.Apply(&p))
}

func TestPhotoUpdateRequestApplyKeepsOmittedFields(t *testing.T) {
	p := Photo{
		Camera:        "A7M4",
		Lens:          "35mm f/1.8",
		Description:   "golden hour",
		ShootLocation: "西湖",
		Tags:          []string{"portrait"},
		SortOrder:     2,
		IsFeatured:    true,
	}

	// A partial update carrying only the required fields must not clear
	// anything it does not mention.
	req := PhotoUpdateRequest{
		Title:        "renamed",
		ShootDate:    time.Now(),
		ShootSession: "507f1f77bcf86cd799439011",
	}
	require.NoError(t, req.Apply(&p))

	assert.Equal(t, "renamed", p.Title)
	assert.Equal(t, "A7M4", p.Camera)
	assert.Equal(t, "35mm f/1.8", p.Lens)
	assert.Equal(t, "golden hour", p.Description)
	assert.Equal(t, "西湖", p.ShootLocation)
	assert.Equal(t, []string{"portrait"}, p.Tags)
	assert.Equal(t, 2, p.SortOrder)
	assert.True(t, p.IsFeatured)
}
