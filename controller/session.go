package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
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

// GetAllShootSessions handles GET /api/shoot-sessions. Private sessions are
// hidden unless isMeng=true; friend fields filter by substring, phoneTail
// exactly.
func GetAllShootSessions(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	page, limit, skip := paginationParams(c, 20)
	filter := sessionListFilter(sessionListParamsFromQuery(c))

	sessions := database.Collection("shootsessions")

	total, err := sessions.CountDocuments(ctx, filter)
	if err != nil {
		utils.InternalError(c, "获取拍摄批次列表失败", err)
		return
	}

	cursor, err := sessions.Find(ctx, filter, options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(sessionListSort))
	if err != nil {
		utils.InternalError(c, "获取拍摄批次列表失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.ShootSession
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "获取拍摄批次列表失败", err)
		return
	}

	views := make([]models.ShootSessionView, 0, len(list))
	for i := range list {
		views = append(views, list[i].APIView())
	}

	utils.SuccessWithPagination(c, "", views, utils.NewPagination(page, limit, total))
}

// GetShootSessionByID handles GET /api/shoot-sessions/:id.
func GetShootSessionByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的批次ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	var session models.ShootSession
	err = database.Collection("shootsessions").FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "拍摄批次不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "获取拍摄批次详情失败", err)
		return
	}

	utils.Success(c, http.StatusOK, "", session.APIView())
}

// CreateShootSession handles POST /api/shoot-sessions.
func CreateShootSession(c *gin.Context) {
	var req models.ShootSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	// Schema default: new sessions are public unless the payload says not.
	session := models.ShootSession{IsPublic: true}
	req.Apply(&session)
	session.PrepareSave(time.Now())

	result, err := database.Collection("shootsessions").InsertOne(ctx, &session)
	if err != nil {
		utils.InternalError(c, "创建拍摄批次失败", err)
		return
	}
	session.ID = result.InsertedID.(bson.ObjectID)

	utils.Success(c, http.StatusCreated, "拍摄批次创建成功", session.APIView())
}

// UpdateShootSession handles PUT /api/shoot-sessions/:id.
func UpdateShootSession(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的批次ID", err)
		return
	}

	var req models.ShootSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	sessions := database.Collection("shootsessions")

	var session models.ShootSession
	err = sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "拍摄批次不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "更新拍摄批次失败", err)
		return
	}

	req.Apply(&session)
	session.PrepareSave(time.Now())

	if _, err := sessions.ReplaceOne(ctx, bson.M{"_id": id}, &session); err != nil {
		utils.InternalError(c, "更新拍摄批次失败", err)
		return
	}

	utils.Success(c, http.StatusOK, "拍摄批次更新成功", session.APIView())
}

// DeleteShootSession handles DELETE /api/shoot-sessions/:id; blocked while
// any photo still references the session, naming the blocking count.
func DeleteShootSession(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的批次ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	sessions := database.Collection("shootsessions")

	n, err := sessions.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		utils.InternalError(c, "删除拍摄批次失败", err)
		return
	}
	if n == 0 {
		utils.NotFound(c, "拍摄批次不存在")
		return
	}

	photoCount, err := database.Collection("photos").CountDocuments(ctx, bson.M{"shootSession": id})
	if err != nil {
		utils.InternalError(c, "删除拍摄批次失败", err)
		return
	}
	if photoCount > 0 {
		utils.BadRequest(c, fmt.Sprintf("无法删除拍摄批次，还有 %d 张图片关联", photoCount), nil)
		return
	}

	if _, err := sessions.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.InternalError(c, "删除拍摄批次失败", err)
		return
	}

	utils.Success(c, http.StatusOK, "拍摄批次删除成功", nil)
}

func sessionListParamsFromQuery(c *gin.Context) sessionListParams {
	return sessionListParams{
		IsMeng:         c.Query("isMeng"),
		Featured:       c.Query("featured"),
		FriendName:     c.Query("friendName"),
		FriendFullName: c.Query("friendFullName"),
		PhoneTail:      c.Query("phoneTail"),
		IsPublic:       c.Query("isPublic"),
	}
}

type sessionPhotosRequest struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Types []string `json:"types"`
}

// GetSessionPhotos handles GET and POST /api/shoot-sessions/:id/photos.
// types selects which photo sets to return: "all", "retouched" or both.
func GetSessionPhotos(c *gin.Context) {
	sessionID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的批次ID", err)
		return
	}

	page, limit := 1, 50
	types := []string{"all"}

	if c.Request.Method == http.MethodPost {
		var body sessionPhotosRequest
		if err := c.ShouldBindJSON(&body); err == nil {
			if body.Page > 0 {
				page = body.Page
			}
			if body.Limit > 0 {
				limit = body.Limit
			}
			if len(body.Types) > 0 {
				types = body.Types
			}
		}
	} else {
		page, limit, _ = paginationParams(c, 50)
		if qt := c.QueryArray("types"); len(qt) > 0 {
			types = qt
		}
	}
	skip := (page - 1) * limit

	wantAll, wantRetouched := false, false
	for _, t := range types {
		switch t {
		case "all":
			wantAll = true
		case "retouched":
			wantRetouched = true
		default:
			utils.BadRequest(c, fmt.Sprintf("无效的类型参数: %s。支持的类型: all, retouched", t), nil)
			return
		}
	}

	ctx, cancel := queryContext()
	defer cancel()

	var session models.ShootSession
	err = database.Collection("shootsessions").FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "拍摄批次不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "获取拍摄批次图片失败", err)
		return
	}

	photos := database.Collection("photos")
	baseFilter := bson.M{"shootSession": sessionID}
	retouchedFilter := bson.M{"shootSession": sessionID, "isRetouched": true}

	totalAll, err := photos.CountDocuments(ctx, baseFilter)
	if err != nil {
		utils.InternalError(c, "获取拍摄批次图片失败", err)
		return
	}
	totalRetouched, err := photos.CountDocuments(ctx, retouchedFilter)
	if err != nil {
		utils.InternalError(c, "获取拍摄批次图片失败", err)
		return
	}

	data := gin.H{"shootSession": session.APIView()}

	if wantAll {
		list, err := findPhotos(ctx, baseFilter, sessionPhotosSort, skip, limit)
		if err != nil {
			utils.InternalError(c, "获取拍摄批次图片失败", err)
			return
		}
		data["photos"] = list
		data["pagination"] = utils.NewPagination(page, limit, totalAll)
	}
	if wantRetouched {
		list, err := findPhotos(ctx, retouchedFilter, sessionRetouchedSort, skip, limit)
		if err != nil {
			utils.InternalError(c, "获取拍摄批次图片失败", err)
			return
		}
		data["retouchedPhotos"] = list
		if _, ok := data["pagination"]; !ok {
			data["pagination"] = utils.NewPagination(page, limit, totalRetouched)
		}
	}
	if wantAll && wantRetouched {
		data["stats"] = gin.H{
			"totalPhotos":     totalAll,
			"retouchedPhotos": totalRetouched,
			"normalPhotos":    totalAll - totalRetouched,
		}
	}

	utils.Success(c, http.StatusOK, "", data)
}

func findPhotos(ctx context.Context, filter bson.M, sort bson.D, skip, limit int) ([]models.Photo, error) {
	cursor, err := database.Collection("photos").Find(ctx, filter, options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Photo
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// photoStats aggregates per-session photo counts for the overview endpoint.
type photoStats struct {
	TotalPhotos     int64 `json:"totalPhotos" bson:"totalPhotos"`
	PublishedPhotos int64 `json:"publishedPhotos" bson:"publishedPhotos"`
	RetouchedPhotos int64 `json:"retouchedPhotos" bson:"retouchedPhotos"`
	FeaturedPhotos  int64 `json:"featuredPhotos" bson:"featuredPhotos"`
}

func sessionPhotoStats(ctx context.Context, sessionID bson.ObjectID) photoStats {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"shootSession": sessionID}}},
		{{Key: "$group", Value: bson.M{
			"_id":             nil,
			"totalPhotos":     bson.M{"$sum": 1},
			"publishedPhotos": bson.M{"$sum": 1},
			"retouchedPhotos": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$isRetouched", true}}, 1, 0}}},
			"featuredPhotos":  bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$isFeatured", true}}, 1, 0}}},
		}}},
	}

	var stats photoStats
	cursor, err := database.Collection("photos").Aggregate(ctx, pipeline)
	if err != nil {
		log.Warn().Err(err).Msg("photo stats aggregation failed")
		return stats
	}
	defer cursor.Close(ctx)

	var rows []photoStats
	if err := cursor.All(ctx, &rows); err != nil {
		log.Warn().Err(err).Msg("photo stats aggregation failed")
		return stats
	}
	if len(rows) > 0 {
		stats = rows[0]
	}
	return stats
}
