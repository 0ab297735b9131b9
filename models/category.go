package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mengblog/utils"
)

// Category forms a tree via the optional parent reference. Children and blog
// counts are looked up from the collections on demand, not stored.
type Category struct {
	ID          bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Parent      *bson.ObjectID `json:"parent,omitempty" bson:"parent,omitempty"`
	Slug        string         `json:"slug" bson:"slug"`
	Icon        string         `json:"icon,omitempty" bson:"icon,omitempty"`
	Color       string         `json:"color" bson:"color"`
	IsActive    bool           `json:"isActive" bson:"isActive"`
	SortOrder   int            `json:"sortOrder" bson:"sortOrder"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`

	ParentInfo *CategoryRef  `json:"parentInfo,omitempty" bson:"-"`
	Children   []CategoryRef `json:"children,omitempty" bson:"-"`
	BlogCount  int64         `json:"blogCount,omitempty" bson:"-"`
}

func (c *Category) PrepareSave(prev *Category, now time.Time) {
	if c.Color == "" {
		c.Color = "#1890ff"
	}
	if c.Slug == "" || (prev != nil && prev.Name != c.Name) {
		c.Slug = utils.GenerateSlug(c.Name)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// CategoryRequest is the validated create/update payload. Optional fields are
// pointers so an update only overwrites what the payload actually carries.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Parent      *string `json:"parent" validate:"omitempty,len=24,hexadecimal"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

func (r *CategoryRequest) Validate() error {
	return validate.Struct(r)
}

// Apply merges the request onto the document; absent fields keep their stored
// values. An explicit empty parent makes the category a root.
func (r *CategoryRequest) Apply(c *Category) error {
	c.Name = r.Name
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Parent != nil {
		if *r.Parent == "" {
			c.Parent = nil
		} else {
			id, err := bson.ObjectIDFromHex(*r.Parent)
			if err != nil {
				return err
			}
			c.Parent = &id
		}
	}
	if r.Icon != nil {
		c.Icon = *r.Icon
	}
	if r.Color != nil && *r.Color != "" {
		c.Color = *r.Color
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	if r.SortOrder != nil {
		c.SortOrder = *r.SortOrder
	}
	return nil
}
