package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mengblog/utils"
)

// Blog is a post document. CategoryInfo is populated from the categories
// collection on reads and never stored.
type Blog struct {
	ID              bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title           string         `json:"title" bson:"title"`
	Content         string         `json:"content" bson:"content"`
	Summary         string         `json:"summary,omitempty" bson:"summary,omitempty"`
	Category        *bson.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	Tags            []string       `json:"tags" bson:"tags"`
	Status          string         `json:"status" bson:"status"`
	ViewCount       int64          `json:"viewCount" bson:"viewCount"`
	PublishedAt     *time.Time     `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	Author          string         `json:"author" bson:"author"`
	Slug            string         `json:"slug" bson:"slug"`
	MetaTitle       string         `json:"metaTitle,omitempty" bson:"metaTitle,omitempty"`
	MetaDescription string         `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`
	FeaturedImage   string         `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	IsFeatured      bool           `json:"isFeatured" bson:"isFeatured"`
	ReadingTime     int            `json:"readingTime" bson:"readingTime"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt" bson:"updatedAt"`

	CategoryInfo *CategoryRef `json:"categoryInfo,omitempty" bson:"-"`
}

// CategoryRef is the slim category shape embedded in blog responses.
type CategoryRef struct {
	ID          bson.ObjectID `json:"id" bson:"_id"`
	Name        string        `json:"name" bson:"name"`
	Slug        string        `json:"slug" bson:"slug"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
}

// Excerpt returns the summary, or the first 200 plain-text characters of the
// content when no summary was written.
func (b *Blog) Excerpt() string {
	if b.Summary != "" {
		return b.Summary
	}
	return utils.Excerpt(b.Content)
}

// PrepareSave derives the computed fields right before the document is
// written. prev is nil on create and the pre-update snapshot on update.
//
// publishedAt is set exactly once, on the first save that transitions the
// status into "published", and is never cleared or overwritten afterwards.
func (b *Blog) PrepareSave(prev *Blog, now time.Time) {
	if b.Status == "" {
		b.Status = StatusDraft
	}
	if b.Author == "" {
		b.Author = DefaultAuthor
	}

	if b.Slug == "" || (prev != nil && prev.Title != b.Title) {
		b.Slug = utils.GenerateSlug(b.Title)
	}

	statusChanged := prev == nil || prev.Status != b.Status
	if statusChanged && b.Status == StatusPublished && b.PublishedAt == nil {
		t := now
		b.PublishedAt = &t
	}

	if prev == nil || prev.Content != b.Content {
		b.ReadingTime = utils.ReadingTime(b.Content)
	}

	if b.MetaTitle == "" {
		b.MetaTitle = b.Title
	}
	if b.MetaDescription == "" {
		b.MetaDescription = b.Excerpt()
	}

	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// BlogRequest is the validated create/update payload. Optional fields are
// pointers so an update can tell "absent" from "set to the zero value".
type BlogRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=255"`
	Content         string   `json:"content" validate:"required"`
	Summary         *string  `json:"summary" validate:"omitempty,max=500"`
	Category        *string  `json:"category" validate:"omitempty,len=24,hexadecimal"`
	Tags            []string `json:"tags"`
	Status          *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	MetaTitle       *string  `json:"metaTitle" validate:"omitempty,max=255"`
	MetaDescription *string  `json:"metaDescription" validate:"omitempty,max=500"`
	FeaturedImage   *string  `json:"featuredImage" validate:"omitempty,uri"`
	IsFeatured      *bool    `json:"isFeatured"`
	Slug            string   `json:"slug"`
}

func (r *BlogRequest) Validate() error {
	return validate.Struct(r)
}

// Apply merges the request onto the document: only fields present in the
// payload overwrite stored values, so a partial update never clears data it
// did not mention. An explicit empty category detaches the blog from its
// category. Counters, timestamps and derived fields are left to PrepareSave.
func (r *BlogRequest) Apply(b *Blog) error {
	b.Title = r.Title
	b.Content = r.Content
	if r.Summary != nil {
		b.Summary = *r.Summary
	}
	if r.Category != nil {
		if *r.Category == "" {
			b.Category = nil
		} else {
			id, err := bson.ObjectIDFromHex(*r.Category)
			if err != nil {
				return err
			}
			b.Category = &id
		}
	}
	if r.Tags != nil {
		b.Tags = r.Tags
	}
	if r.Status != nil {
		b.Status = *r.Status
	}
	if r.MetaTitle != nil {
		b.MetaTitle = *r.MetaTitle
	}
	if r.MetaDescription != nil {
		b.MetaDescription = *r.MetaDescription
	}
	if r.FeaturedImage != nil {
		b.FeaturedImage = *r.FeaturedImage
	}
	if r.IsFeatured != nil {
		b.IsFeatured = *r.IsFeatured
	}
	if r.Slug != "" {
		b.Slug = r.Slug
	}
	return nil
}
