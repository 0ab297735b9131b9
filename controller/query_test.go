package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBlogListFilter(t *testing.T) {
	assert.Empty(t, blogListFilter(blogListParams{}))

	f := blogListFilter(blogListParams{
		Status:   "published",
		Category: "507f1f77bcf86cd799439011",
		Tag:      "travel",
		Featured: "true",
		Search:   "lake",
	})
	assert.Equal(t, "published", f["status"])

	id, _ := bson.ObjectIDFromHex("507f1f77bcf86cd799439011")
	assert.Equal(t, id, f["category"])
	assert.Equal(t, true, f["isFeatured"])
	assert.Equal(t, bson.M{"$in": []string{"travel"}}, f["tags"])
	assert.Equal(t, bson.M{"$search": "lake"}, f["$text"])
}

func TestBlogListFilterIgnoresBadValues(t *testing.T) {
	f := blogListFilter(blogListParams{Category: "not-an-object-id", Featured: "yes"})
	assert.NotContains(t, f, "category")
	assert.NotContains(t, f, "isFeatured")
}

func TestBlogSearchFilter(t *testing.T) {
	f := blogSearchFilter("lake")
	assert.Equal(t, "published", f["status"])
	assert.Equal(t, bson.M{"$search": "lake"}, f["$text"])
}

func TestPhotoListFilter(t *testing.T) {
	assert.Empty(t, photoListFilter(photoListParams{}))

	f := photoListFilter(photoListParams{
		ShootSession: "507f1f77bcf86cd799439011",
		IsRetouched:  "true",
		Featured:     "true",
	})
	id, _ := bson.ObjectIDFromHex("507f1f77bcf86cd799439011")
	assert.Equal(t, id, f["shootSession"])
	assert.Equal(t, true, f["isRetouched"])
	assert.Equal(t, true, f["isFeatured"])

	f = photoListFilter(photoListParams{IsRetouched: "false"})
	assert.Equal(t, false, f["isRetouched"])

	f = photoListFilter(photoListParams{IsRetouched: "maybe"})
	assert.NotContains(t, f, "isRetouched")
}

func TestSessionListFilterVisibility(t *testing.T) {
	// Default: only public sessions.
	f := sessionListFilter(sessionListParams{})
	assert.Equal(t, true, f["isPublic"])

	// Owner flag lifts the restriction.
	f = sessionListFilter(sessionListParams{IsMeng: "true"})
	assert.NotContains(t, f, "isPublic")

	// An explicit isPublic filter still applies for the owner.
	f = sessionListFilter(sessionListParams{IsMeng: "true", IsPublic: "false"})
	assert.Equal(t, false, f["isPublic"])
}

func TestSessionListFilterFriendSearch(t *testing.T) {
	f := sessionListFilter(sessionListParams{FriendName: "小美", PhoneTail: "1234"})

	require.Contains(t, f, "friendName")
	assert.Equal(t, bson.M{"$regex": "小美", "$options": "i"}, f["friendName"])
	assert.Equal(t, "1234", f["phoneTail"])
}

func TestSessionListFilterQuotesRegexMeta(t *testing.T) {
	f := sessionListFilter(sessionListParams{FriendFullName: "a.b*"})
	assert.Equal(t, bson.M{"$regex": `a\.b\*`, "$options": "i"}, f["friendFullName"])
}

func TestCategoryListFilter(t *testing.T) {
	assert.Empty(t, categoryListFilter(categoryListParams{}))

	f := categoryListFilter(categoryListParams{Active: "true"})
	assert.Equal(t, bson.M{"isActive": true}, f)

	f = categoryListFilter(categoryListParams{Root: "true"})
	assert.Equal(t, true, f["isActive"])
	assert.Contains(t, f, "parent")
	assert.Nil(t, f["parent"])
}

func TestSortOrdersHaveTieBreaks(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "publishedAt", Value: -1},
		{Key: "createdAt", Value: -1},
	}, blogListSort)

	assert.Equal(t, bson.D{
		{Key: "shootDate", Value: -1},
		{Key: "sortOrder", Value: 1},
		{Key: "_id", Value: -1},
	}, photoListSort)

	assert.Equal(t, bson.D{
		{Key: "shootDate", Value: -1},
		{Key: "sortOrder", Value: 1},
	}, sessionListSort)

	assert.Equal(t, bson.D{
		{Key: "sortOrder", Value: 1},
		{Key: "name", Value: 1},
	}, categoryListSort)
}
