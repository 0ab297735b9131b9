package controller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mengblog/database"
)

// Counter maintenance is a best-effort side effect: by the time it runs the
// primary write has already committed, so failures are logged and swallowed,
// never surfaced to the caller.

// tagDiff returns the tags present only in newTags (added) and only in
// oldTags (removed). Tags in both sets are untouched.
func tagDiff(oldTags, newTags []string) (added, removed []string) {
	oldSet := make(map[string]bool, len(oldTags))
	for _, t := range oldTags {
		oldSet[t] = true
	}
	newSet := make(map[string]bool, len(newTags))
	for _, t := range newTags {
		newSet[t] = true
	}

	for _, t := range newTags {
		if !oldSet[t] {
			added = append(added, t)
		}
	}
	for _, t := range oldTags {
		if !newSet[t] {
			removed = append(removed, t)
		}
	}
	return added, removed
}

// adjustTagUsage applies the symmetric difference between the old and new tag
// sets to the usage counters. Increments upsert the tag record; decrements
// are filtered on usageCount > 0 so the counter can never go negative. Both
// are single atomic storage operations, so concurrent writers cannot race a
// read-modify-write.
func adjustTagUsage(ctx context.Context, oldTags, newTags []string) {
	added, removed := tagDiff(oldTags, newTags)
	now := time.Now()

	tags := database.Collection("tags")
	for _, name := range added {
		_, err := tags.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{
				"$inc": bson.M{"usageCount": 1},
				"$set": bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{
					"color":     "#1890ff",
					"isActive":  true,
					"createdAt": now,
				},
			},
			options.UpdateOne().SetUpsert(true),
		)
		if err != nil {
			log.Warn().Err(err).Str("tag", name).Msg("tag usage increment failed")
		}
	}

	for _, name := range removed {
		_, err := tags.UpdateOne(ctx,
			bson.M{"name": name, "usageCount": bson.M{"$gt": 0}},
			bson.M{
				"$inc": bson.M{"usageCount": -1},
				"$set": bson.M{"updatedAt": now},
			},
		)
		if err != nil {
			log.Warn().Err(err).Str("tag", name).Msg("tag usage decrement failed")
		}
	}
}

// refreshSessionCounts recounts a session's photo counters from the photo
// collection. Recomputation is authoritative and cannot drift, unlike the
// incremental tag counters.
func refreshSessionCounts(ctx context.Context, sessionID bson.ObjectID) {
	photos := database.Collection("photos")

	total, err := photos.CountDocuments(ctx, bson.M{"shootSession": sessionID})
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID.Hex()).Msg("session photo count failed")
		return
	}
	retouched, err := photos.CountDocuments(ctx, bson.M{"shootSession": sessionID, "isRetouched": true})
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID.Hex()).Msg("session retouched count failed")
		return
	}
	published, err := photos.CountDocuments(ctx, bson.M{"shootSession": sessionID, "status": "published"})
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID.Hex()).Msg("session published count failed")
		return
	}

	_, err = database.Collection("shootsessions").UpdateByID(ctx, sessionID, bson.M{
		"$set": bson.M{
			"totalPhotos":     total,
			"retouchedPhotos": retouched,
			"publishedPhotos": published,
			"updatedAt":       time.Now(),
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID.Hex()).Msg("session counter update failed")
	}
}
