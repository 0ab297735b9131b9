package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ShootSession groups the photos of one outing. totalPhotos, retouchedPhotos
// and publishedPhotos are derived counters, recounted from the photo
// collection after every photo write that touches the session.
type ShootSession struct {
	ID              bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name            string         `json:"name" bson:"name"`
	ShootDate       time.Time      `json:"shootDate" bson:"shootDate"`
	ShootLocation   string         `json:"shootLocation,omitempty" bson:"shootLocation,omitempty"`
	FriendName      string         `json:"friendName" bson:"friendName"`
	FriendFullName  string         `json:"friendFullName" bson:"friendFullName"`
	PhoneTail       string         `json:"phoneTail" bson:"phoneTail"`
	IsPublic        bool           `json:"isPublic" bson:"isPublic"`
	Theme           string         `json:"theme,omitempty" bson:"theme,omitempty"`
	Description     string         `json:"description,omitempty" bson:"description,omitempty"`
	Camera          string         `json:"camera,omitempty" bson:"camera,omitempty"`
	Lens            string         `json:"lens,omitempty" bson:"lens,omitempty"`
	Settings        CameraSettings `json:"settings" bson:"settings"`
	Weather         string         `json:"weather,omitempty" bson:"weather,omitempty"`
	Lighting        string         `json:"lighting,omitempty" bson:"lighting,omitempty"`
	TotalPhotos     int64          `json:"totalPhotos" bson:"totalPhotos"`
	RetouchedPhotos int64          `json:"retouchedPhotos" bson:"retouchedPhotos"`
	PublishedPhotos int64          `json:"publishedPhotos" bson:"publishedPhotos"`
	Tags            []string       `json:"tags" bson:"tags"`
	IsFeatured      bool           `json:"isFeatured" bson:"isFeatured"`
	SortOrder       int            `json:"sortOrder" bson:"sortOrder"`
	Author          string         `json:"author" bson:"author"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// PrepareSave fills the derived name when none was supplied: ISO date plus
// friend name, e.g. "2024-03-15-小美".
func (s *ShootSession) PrepareSave(now time.Time) {
	if s.Name == "" {
		s.Name = s.ShootDate.Format("2006-01-02") + "-" + s.FriendName
	}
	if s.Author == "" {
		s.Author = DefaultAuthor
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// ShootSessionRequest carries the API field names, which differ from the
// stored ones: date->shootDate, batchName->name, location->shootLocation.
// Optional fields are pointers so a partial update only overwrites what the
// payload actually carries.
type ShootSessionRequest struct {
	Date           time.Time       `json:"date" validate:"required"`
	FriendName     string          `json:"friendName" validate:"required,min=1,max=50"`
	FriendFullName string          `json:"friendFullName" validate:"required,min=1,max=100"`
	PhoneTail      string          `json:"phoneTail" validate:"required,len=4,numeric"`
	BatchName      *string         `json:"batchName" validate:"omitempty,max=100"`
	Location       *string         `json:"location" validate:"omitempty,max=200"`
	ShootLocation  *string         `json:"shootLocation" validate:"omitempty,max=200"`
	Theme          *string         `json:"theme" validate:"omitempty,max=100"`
	Description    *string         `json:"description" validate:"omitempty,max=1000"`
	Camera         *string         `json:"camera"`
	Lens           *string         `json:"lens"`
	Settings       *CameraSettings `json:"settings"`
	Weather        *string         `json:"weather"`
	Lighting       *string         `json:"lighting"`
	Tags           []string        `json:"tags"`
	IsFeatured     *bool           `json:"isFeatured"`
	SortOrder      *int            `json:"sortOrder"`
	IsPublic       *bool           `json:"isPublic"`
}

func (r *ShootSessionRequest) Validate() error {
	return validate.Struct(r)
}

// Apply merges the API fields onto the document; absent fields keep their
// stored values. Both location spellings are accepted; the short one wins
// when present.
func (r *ShootSessionRequest) Apply(s *ShootSession) {
	s.ShootDate = r.Date
	s.FriendName = r.FriendName
	s.FriendFullName = r.FriendFullName
	s.PhoneTail = r.PhoneTail
	if r.BatchName != nil {
		s.Name = *r.BatchName
	}
	if r.Location != nil && *r.Location != "" {
		s.ShootLocation = *r.Location
	} else if r.ShootLocation != nil {
		s.ShootLocation = *r.ShootLocation
	}
	if r.Theme != nil {
		s.Theme = *r.Theme
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.Camera != nil {
		s.Camera = *r.Camera
	}
	if r.Lens != nil {
		s.Lens = *r.Lens
	}
	if r.Settings != nil {
		s.Settings = *r.Settings
	}
	if r.Weather != nil {
		s.Weather = *r.Weather
	}
	if r.Lighting != nil {
		s.Lighting = *r.Lighting
	}
	if r.Tags != nil {
		s.Tags = r.Tags
	}
	if r.IsFeatured != nil {
		s.IsFeatured = *r.IsFeatured
	}
	if r.SortOrder != nil {
		s.SortOrder = *r.SortOrder
	}
	if r.IsPublic != nil {
		s.IsPublic = *r.IsPublic
	}
}

// ShootSessionView is the response shape the frontend expects: the stored
// fields plus the renamed aliases id/date/batchName/location.
type ShootSessionView struct {
	ID              bson.ObjectID  `json:"id"`
	Date            time.Time      `json:"date"`
	BatchName       string         `json:"batchName"`
	Location        string         `json:"location"`
	FriendName      string         `json:"friendName"`
	FriendFullName  string         `json:"friendFullName"`
	PhoneTail       string         `json:"phoneTail"`
	IsPublic        bool           `json:"isPublic"`
	ShootLocation   string         `json:"shootLocation,omitempty"`
	Theme           string         `json:"theme,omitempty"`
	Description     string         `json:"description,omitempty"`
	Camera          string         `json:"camera,omitempty"`
	Lens            string         `json:"lens,omitempty"`
	Settings        CameraSettings `json:"settings"`
	Weather         string         `json:"weather,omitempty"`
	Lighting        string         `json:"lighting,omitempty"`
	TotalPhotos     int64          `json:"totalPhotos"`
	RetouchedPhotos int64          `json:"retouchedPhotos"`
	PublishedPhotos int64          `json:"publishedPhotos"`
	Tags            []string       `json:"tags"`
	IsFeatured      bool           `json:"isFeatured"`
	SortOrder       int            `json:"sortOrder"`
	Author          string         `json:"author"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (s *ShootSession) APIView() ShootSessionView {
	return ShootSessionView{
		ID:              s.ID,
		Date:            s.ShootDate,
		BatchName:       s.Name,
		Location:        s.ShootLocation,
		FriendName:      s.FriendName,
		FriendFullName:  s.FriendFullName,
		PhoneTail:       s.PhoneTail,
		IsPublic:        s.IsPublic,
		ShootLocation:   s.ShootLocation,
		Theme:           s.Theme,
		Description:     s.Description,
		Camera:          s.Camera,
		Lens:            s.Lens,
		Settings:        s.Settings,
		Weather:         s.Weather,
		Lighting:        s.Lighting,
		TotalPhotos:     s.TotalPhotos,
		RetouchedPhotos: s.RetouchedPhotos,
		PublishedPhotos: s.PublishedPhotos,
		Tags:            s.Tags,
		IsFeatured:      s.IsFeatured,
		SortOrder:       s.SortOrder,
		Author:          s.Author,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
