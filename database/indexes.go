package database

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes every collection relies on. Slug and name
// uniqueness is enforced here, not in application code.
func EnsureIndexes(ctx context.Context) error {
	blogIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := Collection("blogs").Indexes().CreateMany(ctx, blogIndexes); err != nil {
		return err
	}

	categoryIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "parent", Value: 1}}},
		{Keys: bson.D{{Key: "sortOrder", Value: 1}}},
	}
	if _, err := Collection("categories").Indexes().CreateMany(ctx, categoryIndexes); err != nil {
		return err
	}

	tagIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "usageCount", Value: -1}}},
	}
	if _, err := Collection("tags").Indexes().CreateMany(ctx, tagIndexes); err != nil {
		return err
	}

	photoIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "shootSession", Value: 1}}},
		{Keys: bson.D{{Key: "shootDate", Value: -1}}},
		{Keys: bson.D{{Key: "isRetouched", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	if _, err := Collection("photos").Indexes().CreateMany(ctx, photoIndexes); err != nil {
		return err
	}

	sessionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "shootDate", Value: -1}}},
		{Keys: bson.D{{Key: "isFeatured", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	if _, err := Collection("shootsessions").Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return err
	}

	return nil
}
