package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

const DefaultAuthor = "Meng"
