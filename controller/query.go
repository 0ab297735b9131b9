package controller

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mengblog/models"
)

// Filter builders translate the optional query-parameter bags into mongo
// predicates. Present, non-empty parameters narrow the result set; everything
// else is ignored. Sort orders carry explicit tie-breaks so pagination stays
// stable across requests.

type blogListParams struct {
	Status   string
	Category string
	Search   string
	Tag      string
	Featured string
}

func blogListFilter(p blogListParams) bson.M {
	filter := bson.M{}
	if p.Status != "" {
		filter["status"] = p.Status
	}
	if p.Category != "" {
		// An unparseable id is treated like an unknown filter value.
		if id, err := bson.ObjectIDFromHex(p.Category); err == nil {
			filter["category"] = id
		}
	}
	if p.Featured == "true" {
		filter["isFeatured"] = true
	}
	if p.Tag != "" {
		filter["tags"] = bson.M{"$in": []string{p.Tag}}
	}
	if p.Search != "" {
		filter["$text"] = bson.M{"$search": p.Search}
	}
	return filter
}

var blogListSort = bson.D{
	{Key: "publishedAt", Value: -1},
	{Key: "createdAt", Value: -1},
}

// blogSearchFilter scopes full-text search to published posts; results are
// ordered by text-relevance score instead of recency.
func blogSearchFilter(q string) bson.M {
	return bson.M{
		"$text":  bson.M{"$search": q},
		"status": models.StatusPublished,
	}
}

var (
	textScoreProjection = bson.M{"score": bson.M{"$meta": "textScore"}}
	textScoreSort       = bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
)

type photoListParams struct {
	ShootSession string
	IsRetouched  string
	Featured     string
}

func photoListFilter(p photoListParams) bson.M {
	filter := bson.M{}
	if p.ShootSession != "" {
		if id, err := bson.ObjectIDFromHex(p.ShootSession); err == nil {
			filter["shootSession"] = id
		}
	}
	if b := parseBoolFlag(p.IsRetouched); b != nil {
		filter["isRetouched"] = *b
	}
	if p.Featured == "true" {
		filter["isFeatured"] = true
	}
	return filter
}

var photoListSort = bson.D{
	{Key: "shootDate", Value: -1},
	{Key: "sortOrder", Value: 1},
	{Key: "_id", Value: -1},
}

var retouchedListSort = bson.D{
	{Key: "retouchedAt", Value: -1},
	{Key: "_id", Value: -1},
}

type sessionListParams struct {
	IsMeng         string
	Featured       string
	FriendName     string
	FriendFullName string
	PhoneTail      string
	IsPublic       string
}

// sessionListFilter hides private sessions unless the owner flag is set.
// Friend-name fields match case-insensitive substrings; phoneTail is exact.
func sessionListFilter(p sessionListParams) bson.M {
	filter := bson.M{}
	if p.IsMeng != "true" {
		filter["isPublic"] = true
	}
	if p.Featured == "true" {
		filter["isFeatured"] = true
	}
	if p.FriendName != "" {
		filter["friendName"] = bson.M{"$regex": regexp.QuoteMeta(p.FriendName), "$options": "i"}
	}
	if p.FriendFullName != "" {
		filter["friendFullName"] = bson.M{"$regex": regexp.QuoteMeta(p.FriendFullName), "$options": "i"}
	}
	if p.PhoneTail != "" {
		filter["phoneTail"] = p.PhoneTail
	}
	if b := parseBoolFlag(p.IsPublic); b != nil {
		filter["isPublic"] = *b
	}
	return filter
}

var sessionListSort = bson.D{
	{Key: "shootDate", Value: -1},
	{Key: "sortOrder", Value: 1},
}

type categoryListParams struct {
	Active string
	Root   string
}

func categoryListFilter(p categoryListParams) bson.M {
	filter := bson.M{}
	if p.Active == "true" {
		filter["isActive"] = true
	} else if p.Root == "true" {
		filter["parent"] = nil
		filter["isActive"] = true
	}
	return filter
}

var categoryListSort = bson.D{
	{Key: "sortOrder", Value: 1},
	{Key: "name", Value: 1},
}

var sessionPhotosSort = bson.D{
	{Key: "sortOrder", Value: 1},
	{Key: "createdAt", Value: -1},
}

var sessionRetouchedSort = bson.D{
	{Key: "retouchedAt", Value: -1},
	{Key: "sortOrder", Value: 1},
	{Key: "createdAt", Value: -1},
}
