package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CameraSettings is the exposure block shared by photos and shoot sessions.
type CameraSettings struct {
	Aperture     string `json:"aperture,omitempty" bson:"aperture,omitempty"`
	ShutterSpeed string `json:"shutterSpeed,omitempty" bson:"shutterSpeed,omitempty"`
	ISO          int    `json:"iso,omitempty" bson:"iso,omitempty"`
	FocalLength  string `json:"focalLength,omitempty" bson:"focalLength,omitempty"`
}

// Photo is one uploaded image. The binary lives in object storage under
// OSSKey; mongo only keeps metadata and the public URLs.
type Photo struct {
	ID               bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title            string         `json:"title" bson:"title"`
	Filename         string         `json:"filename" bson:"filename"`
	OriginalName     string         `json:"originalName" bson:"originalName"`
	OSSKey           string         `json:"ossKey,omitempty" bson:"ossKey,omitempty"`
	OSSUrl           string         `json:"ossUrl,omitempty" bson:"ossUrl,omitempty"`
	ThumbnailURL     string         `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	FileSize         int64          `json:"fileSize" bson:"fileSize"`
	MimeType         string         `json:"mimeType" bson:"mimeType"`
	Width            int            `json:"width,omitempty" bson:"width,omitempty"`
	Height           int            `json:"height,omitempty" bson:"height,omitempty"`
	ShootDate        time.Time      `json:"shootDate" bson:"shootDate"`
	ShootLocation    string         `json:"shootLocation,omitempty" bson:"shootLocation,omitempty"`
	Camera           string         `json:"camera,omitempty" bson:"camera,omitempty"`
	Lens             string         `json:"lens,omitempty" bson:"lens,omitempty"`
	Settings         CameraSettings `json:"settings" bson:"settings"`
	ShootSession     bson.ObjectID  `json:"shootSession" bson:"shootSession"`
	IsRetouched      bool           `json:"isRetouched" bson:"isRetouched"`
	RetouchedVersion string         `json:"retouchedVersion,omitempty" bson:"retouchedVersion,omitempty"`
	RetouchedAt      *time.Time     `json:"retouchedAt,omitempty" bson:"retouchedAt,omitempty"`
	Tags             []string       `json:"tags" bson:"tags"`
	Description      string         `json:"description,omitempty" bson:"description,omitempty"`
	Status           string         `json:"status" bson:"status"`
	SortOrder        int            `json:"sortOrder" bson:"sortOrder"`
	IsFeatured       bool           `json:"isFeatured" bson:"isFeatured"`
	ViewCount        int64          `json:"viewCount" bson:"viewCount"`
	DownloadCount    int64          `json:"downloadCount" bson:"downloadCount"`
	Author           string         `json:"author" bson:"author"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`

	SessionInfo *SessionRef `json:"sessionInfo,omitempty" bson:"-"`
}

// SessionRef is the slim shoot-session shape embedded in photo responses.
type SessionRef struct {
	ID          bson.ObjectID `json:"id" bson:"_id"`
	Name        string        `json:"name" bson:"name"`
	Theme       string        `json:"theme,omitempty" bson:"theme,omitempty"`
	ShootDate   time.Time     `json:"shootDate" bson:"shootDate"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
}

// MarkRetouched flags the photo as having a post-processed version. The three
// fields are always set together and only once.
func (p *Photo) MarkRetouched(retouchedVersion string, now time.Time) {
	p.IsRetouched = true
	p.RetouchedVersion = retouchedVersion
	t := now
	p.RetouchedAt = &t
}

func (p *Photo) PrepareSave(now time.Time) {
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Author == "" {
		p.Author = DefaultAuthor
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// PhotoUpdateRequest is the validated metadata-update payload. Optional
// fields are pointers so a partial update leaves omitted metadata untouched.
type PhotoUpdateRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=100"`
	ShootDate     time.Time       `json:"shootDate" validate:"required"`
	ShootLocation *string         `json:"shootLocation" validate:"omitempty,max=200"`
	Camera        *string         `json:"camera"`
	Lens          *string         `json:"lens"`
	Settings      *CameraSettings `json:"settings"`
	ShootSession  string          `json:"shootSession" validate:"required,len=24,hexadecimal"`
	Tags          []string        `json:"tags"`
	Description   *string         `json:"description" validate:"omitempty,max=500"`
	SortOrder     *int            `json:"sortOrder"`
	IsFeatured    *bool           `json:"isFeatured"`
}

func (r *PhotoUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Apply merges the request onto the document; absent fields keep their stored
// values.
func (r *PhotoUpdateRequest) Apply(p *Photo) error {
	sessionID, err := bson.ObjectIDFromHex(r.ShootSession)
	if err != nil {
		return err
	}
	p.Title = r.Title
	p.ShootDate = r.ShootDate
	p.ShootSession = sessionID
	if r.ShootLocation != nil {
		p.ShootLocation = *r.ShootLocation
	}
	if r.Camera != nil {
		p.Camera = *r.Camera
	}
	if r.Lens != nil {
		p.Lens = *r.Lens
	}
	if r.Settings != nil {
		p.Settings = *r.Settings
	}
	if r.Tags != nil {
		p.Tags = r.Tags
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.SortOrder != nil {
		p.SortOrder = *r.SortOrder
	}
	if r.IsFeatured != nil {
		p.IsFeatured = *r.IsFeatured
	}
	return nil
}
