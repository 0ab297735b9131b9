package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSessionRequest() ShootSessionRequest {
	return ShootSessionRequest{
		Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		FriendName:     "小美",
		FriendFullName: "王小美",
		PhoneTail:      "1234",
	}
}

func TestShootSessionRequestValidate(t *testing.T) {
	req := validSessionRequest()
	assert.NoError(t, req.Validate())

	req = validSessionRequest()
	req.PhoneTail = "12a3"
	assert.Error(t, req.Validate(), "phoneTail must be numeric")

	req = validSessionRequest()
	req.PhoneTail = "123"
	assert.Error(t, req.Validate(), "phoneTail must be exactly 4 digits")

	req = validSessionRequest()
	req.Date = time.Time{}
	assert.Error(t, req.Validate())

	req = validSessionRequest()
	req.FriendName = ""
	assert.Error(t, req.Validate())
}

func TestShootSessionNameDerivation(t *testing.T) {
	s := ShootSession{
		ShootDate:  time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
		FriendName: "小美",
	}
	s.PrepareSave(time.Now())
	assert.Equal(t, "2024-03-15-小美", s.Name)

	// An explicit name is kept.
	s = ShootSession{Name: "spring-shoot", ShootDate: time.Now(), FriendName: "小美"}
	s.PrepareSave(time.Now())
	assert.Equal(t, "spring-shoot", s.Name)
}

func TestShootSessionRequestApplyFieldMapping(t *testing.T) {
	req := validSessionRequest()
	req.BatchName = ptr("spring")
	req.Location = ptr("西湖")
	req.ShootLocation = ptr("ignored")

	s := ShootSession{IsPublic: true}
	req.Apply(&s)

	assert.Equal(t, req.Date, s.ShootDate)
	assert.Equal(t, "spring", s.Name)
	assert.Equal(t, "西湖", s.ShootLocation, "location wins over shootLocation")
	assert.Equal(t, "小美", s.FriendName)
	assert.True(t, s.IsPublic)

	// The long spelling is used when the short one is absent.
	req.Location = nil
	req.ShootLocation = ptr("植物园")
	req.Apply(&s)
	assert.Equal(t, "植物园", s.ShootLocation)

	// Explicit isPublic=false survives.
	f := false
	req.IsPublic = &f
	req.Apply(&s)
	assert.False(t, s.IsPublic)
}

func TestShootSessionRequestApplyKeepsOmittedFields(t *testing.T) {
	s := ShootSession{
		Name:          "2024-03-15-小美",
		ShootLocation: "西湖",
		Theme:         "夜景",
		Description:   "湖边夜拍",
		Camera:        "A7M4",
		Lens:          "35mm f/1.8",
		Weather:       "晴",
		Lighting:      "自然光",
		Tags:          []string{"夜景"},
		IsFeatured:    true,
		SortOrder:     3,
		IsPublic:      false,
	}

	// A partial update carrying only the required fields must not clear
	// anything it does not mention.
	req := validSessionRequest()
	req.Apply(&s)

	assert.Equal(t, "2024-03-15-小美", s.Name)
	assert.Equal(t, "西湖", s.ShootLocation)
	assert.Equal(t, "夜景", s.Theme)
	assert.Equal(t, "湖边夜拍", s.Description)
	assert.Equal(t, "A7M4", s.Camera)
	assert.Equal(t, "35mm f/1.8", s.Lens)
	assert.Equal(t, "晴", s.Weather)
	assert.Equal(t, "自然光", s.Lighting)
	assert.Equal(t, []string{"夜景"}, s.Tags)
	assert.True(t, s.IsFeatured)
	assert.Equal(t, 3, s.SortOrder)
	assert.False(t, s.IsPublic, "a private session must stay private")
}

func TestShootSessionAPIView(t *testing.T) {
	s := ShootSession{
		Name:          "2024-03-15-小美",
		ShootDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ShootLocation: "西湖",
		FriendName:    "小美",
		PhoneTail:     "1234",
		TotalPhotos:   12,
	}

	v := s.APIView()
	assert.Equal(t, s.Name, v.BatchName)
	assert.Equal(t, s.ShootDate, v.Date)
	assert.Equal(t, s.ShootLocation, v.Location)
	assert.Equal(t, s.ShootLocation, v.ShootLocation)
	assert.Equal(t, int64(12), v.TotalPhotos)
}

func TestShootSessionPrepareSaveTimestamps(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.AddDate(0, 1, 0)

	s := ShootSession{ShootDate: created, FriendName: "a"}
	s.PrepareSave(created)
	require.Equal(t, created, s.CreatedAt)

	s.PrepareSave(updated)
	assert.Equal(t, created, s.CreatedAt)
	assert.Equal(t, updated, s.UpdatedAt)
	assert.Equal(t, DefaultAuthor, s.Author)
}
