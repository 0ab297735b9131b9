package controller

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mengblog/database"
	"mengblog/models"
	"mengblog/utils"
)

var representativeSort = bson.D{
	{Key: "isFeatured", Value: -1},
	{Key: "isRetouched", Value: -1},
	{Key: "createdAt", Value: -1},
}

var overviewRetouchedSort = bson.D{
	{Key: "isFeatured", Value: -1},
	{Key: "retouchedAt", Value: -1},
	{Key: "createdAt", Value: -1},
}

// overviewPhoto is the slim photo shape embedded in session overviews.
type overviewPhoto struct {
	Filename     string     `json:"filename"`
	Title        string     `json:"title"`
	ShootDate    time.Time  `json:"shootDate"`
	IsRetouched  bool       `json:"isRetouched"`
	IsFeatured   bool       `json:"isFeatured"`
	RetouchedAt  *time.Time `json:"retouchedAt,omitempty"`
	ImageURL     string     `json:"imageUrl"`
	ThumbnailURL string     `json:"thumbnailUrl"`
}

func toOverviewPhoto(p *models.Photo) overviewPhoto {
	imageURL := p.OSSUrl
	if imageURL == "" {
		imageURL = p.ThumbnailURL
	}
	thumbnailURL := p.ThumbnailURL
	if thumbnailURL == "" {
		thumbnailURL = p.OSSUrl
	}
	return overviewPhoto{
		Filename:     p.Filename,
		Title:        p.Title,
		ShootDate:    p.ShootDate,
		IsRetouched:  p.IsRetouched,
		IsFeatured:   p.IsFeatured,
		RetouchedAt:  p.RetouchedAt,
		ImageURL:     imageURL,
		ThumbnailURL: thumbnailURL,
	}
}

type sessionOverview struct {
	models.ShootSessionView
	RepresentativePhoto *overviewPhoto  `json:"representativePhoto"`
	RetouchedPhoto      []overviewPhoto `json:"retouchedPhoto"`
	PhotoStats          photoStats      `json:"photoStats"`
}

// GetShootSessionsOverview handles GET /api/shoot-sessions/overview: the
// session list enriched with one representative photo, a retouched sample and
// aggregate photo stats per session. retouchedOnly=true drops sessions
// without retouched photos and widens the sample to eight.
func GetShootSessionsOverview(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	page, limit, skip := paginationParams(c, 20)
	filter := sessionListFilter(sessionListParamsFromQuery(c))
	retouchedOnly := c.Query("retouchedOnly") == "true"

	sessions := database.Collection("shootsessions")

	total, err := sessions.CountDocuments(ctx, filter)
	if err != nil {
		utils.InternalError(c, "获取批次概览失败", err)
		return
	}

	cursor, err := sessions.Find(ctx, filter, options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(sessionListSort))
	if err != nil {
		utils.InternalError(c, "获取批次概览失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.ShootSession
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "获取批次概览失败", err)
		return
	}

	overviews := make([]sessionOverview, 0, len(list))
	for i := range list {
		session := &list[i]

		retouchedLimit := int64(1)
		if retouchedOnly {
			retouchedLimit = 8
		}
		retouched := findOverviewPhotos(ctx,
			bson.M{"shootSession": session.ID, "isRetouched": true},
			overviewRetouchedSort, retouchedLimit)

		if retouchedOnly && len(retouched) == 0 {
			continue
		}

		var representative *overviewPhoto
		if retouchedOnly {
			if len(retouched) > 0 {
				representative = &retouched[0]
			}
		} else {
			representative = findOnePhoto(ctx, bson.M{"shootSession": session.ID}, representativeSort)
		}

		overviews = append(overviews, sessionOverview{
			ShootSessionView:    session.APIView(),
			RepresentativePhoto: representative,
			RetouchedPhoto:      retouched,
			PhotoStats:          sessionPhotoStats(ctx, session.ID),
		})
	}

	utils.SuccessWithPagination(c, "", overviews, utils.NewPagination(page, limit, total))
}

func findOverviewPhotos(ctx context.Context, filter bson.M, sort bson.D, limit int64) []overviewPhoto {
	cursor, err := database.Collection("photos").Find(ctx, filter,
		options.Find().SetSort(sort).SetLimit(limit))
	if err != nil {
		log.Warn().Err(err).Msg("overview photo lookup failed")
		return nil
	}
	defer cursor.Close(ctx)

	var photos []models.Photo
	if err := cursor.All(ctx, &photos); err != nil {
		log.Warn().Err(err).Msg("overview photo lookup failed")
		return nil
	}

	out := make([]overviewPhoto, 0, len(photos))
	for i := range photos {
		out = append(out, toOverviewPhoto(&photos[i]))
	}
	return out
}

func findOnePhoto(ctx context.Context, filter bson.M, sort bson.D) *overviewPhoto {
	var photo models.Photo
	err := database.Collection("photos").
		FindOne(ctx, filter, options.FindOne().SetSort(sort)).
		Decode(&photo)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Err(err).Msg("overview photo lookup failed")
		}
		return nil
	}
	view := toOverviewPhoto(&photo)
	return &view
}
