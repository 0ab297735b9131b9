package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mengblog/database"
	"mengblog/models"
	"mengblog/storage"
	"mengblog/utils"
)

// GetAllPhotos handles GET /api/photos with optional shootSession,
// isRetouched and featured filters.
func GetAllPhotos(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	page, limit, skip := paginationParams(c, 20)
	filter := photoListFilter(photoListParams{
		ShootSession: c.Query("shootSession"),
		IsRetouched:  c.Query("isRetouched"),
		Featured:     c.Query("featured"),
	})

	photos := database.Collection("photos")

	total, err := photos.CountDocuments(ctx, filter)
	if err != nil {
		utils.InternalError(c, "获取图片列表失败", err)
		return
	}

	cursor, err := photos.Find(ctx, filter, options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(photoListSort))
	if err != nil {
		utils.InternalError(c, "获取图片列表失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Photo
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "获取图片列表失败", err)
		return
	}

	populateSessions(ctx, list)
	utils.SuccessWithPagination(c, "", list, utils.NewPagination(page, limit, total))
}

// GetRetouchedPhotos handles GET /api/photos/retouched.
func GetRetouchedPhotos(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	page, limit, skip := paginationParams(c, 20)
	filter := bson.M{"isRetouched": true}

	photos := database.Collection("photos")

	total, err := photos.CountDocuments(ctx, filter)
	if err != nil {
		utils.InternalError(c, "获取精修图片失败", err)
		return
	}

	cursor, err := photos.Find(ctx, filter, options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(retouchedListSort))
	if err != nil {
		utils.InternalError(c, "获取精修图片失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Photo
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "获取精修图片失败", err)
		return
	}

	populateSessions(ctx, list)
	utils.SuccessWithPagination(c, "", list, utils.NewPagination(page, limit, total))
}

// GetPhotoByID handles GET /api/photos/:id; bumps the view counter in the
// same storage operation that loads the document.
func GetPhotoByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的图片ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	var photo models.Photo
	err = database.Collection("photos").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&photo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "图片不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "获取图片详情失败", err)
		return
	}

	populateSession(ctx, &photo)
	utils.Success(c, http.StatusOK, "", photo)
}

// UpdatePhoto handles PUT /api/photos/:id. Session counters are refreshed for
// both the old and, when the reference moved, the new session.
func UpdatePhoto(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的图片ID", err)
		return
	}

	var req models.PhotoUpdateRequest
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

	photos := database.Collection("photos")

	var photo models.Photo
	err = photos.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "图片不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "更新图片失败", err)
		return
	}

	prevSession := photo.ShootSession
	if err := req.Apply(&photo); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}
	photo.PrepareSave(time.Now())

	if _, err := photos.ReplaceOne(ctx, bson.M{"_id": id}, &photo); err != nil {
		utils.InternalError(c, "更新图片失败", err)
		return
	}

	refreshSessionCounts(ctx, prevSession)
	if photo.ShootSession != prevSession {
		refreshSessionCounts(ctx, photo.ShootSession)
	}

	populateSession(ctx, &photo)
	utils.Success(c, http.StatusOK, "图片更新成功", photo)
}

// MarkPhotoRetouched handles PUT /api/photos/:id/retouch.
func MarkPhotoRetouched(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的图片ID", err)
		return
	}

	var body struct {
		RetouchedVersion string `json:"retouchedVersion"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.RetouchedVersion == "" {
		utils.BadRequest(c, "精修版本文件路径不能为空", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	photos := database.Collection("photos")

	var photo models.Photo
	err = photos.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "图片不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "标记图片精修失败", err)
		return
	}

	now := time.Now()
	photo.MarkRetouched(body.RetouchedVersion, now)
	photo.UpdatedAt = now

	if _, err := photos.ReplaceOne(ctx, bson.M{"_id": id}, &photo); err != nil {
		utils.InternalError(c, "标记图片精修失败", err)
		return
	}

	refreshSessionCounts(ctx, photo.ShootSession)

	utils.Success(c, http.StatusOK, "图片已标记为精修", photo)
}

// DeletePhoto handles DELETE /api/photos/:id. The stored object is removed
// best-effort; the record deletion is what counts.
func DeletePhoto(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的图片ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	photos := database.Collection("photos")

	var photo models.Photo
	err = photos.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "图片不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "删除图片失败", err)
		return
	}

	if photo.OSSKey != "" {
		if err := storage.Delete(ctx, photo.OSSKey); err != nil {
			log.Warn().Err(err).Str("key", photo.OSSKey).Msg("object cleanup failed")
		}
	}

	if _, err := photos.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.InternalError(c, "删除图片失败", err)
		return
	}

	refreshSessionCounts(ctx, photo.ShootSession)

	utils.Success(c, http.StatusOK, "图片删除成功", nil)
}

type batchDeleteRequest struct {
	PhotoIDs []string `json:"photoIds"`
}

type deletedPhotoInfo struct {
	ID           bson.ObjectID `json:"id"`
	Title        string        `json:"title"`
	Filename     string        `json:"filename"`
	OriginalName string        `json:"originalName"`
}

type failedDeletion struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// DeletePhotos handles DELETE /api/photos — batch deletion by id array with
// per-item failure isolation: one bad id never aborts the rest.
func DeletePhotos(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.PhotoIDs) == 0 {
		utils.BadRequest(c, "请提供要删除的图片ID数组", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	ids := make([]bson.ObjectID, 0, len(req.PhotoIDs))
	notFound := make([]string, 0)
	for _, hex := range req.PhotoIDs {
		id, err := bson.ObjectIDFromHex(hex)
		if err != nil {
			notFound = append(notFound, hex)
			continue
		}
		ids = append(ids, id)
	}

	var found []models.Photo
	if len(ids) > 0 {
		cursor, err := database.Collection("photos").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			utils.InternalError(c, "批量删除图片失败", err)
			return
		}
		if err := cursor.All(ctx, &found); err != nil {
			utils.InternalError(c, "批量删除图片失败", err)
			return
		}
	}
	if len(found) == 0 {
		utils.NotFound(c, "没有找到要删除的图片")
		return
	}

	photos := database.Collection("photos")

	foundIDs := make(map[bson.ObjectID]bool, len(found))
	for _, p := range found {
		foundIDs[p.ID] = true
	}
	for _, id := range ids {
		if !foundIDs[id] {
			notFound = append(notFound, id.Hex())
		}
	}

	keys := make([]string, 0, len(found))
	for _, p := range found {
		if p.OSSKey != "" {
			keys = append(keys, p.OSSKey)
		}
	}
	if err := storage.BatchDelete(ctx, keys); err != nil {
		log.Warn().Err(err).Int("keys", len(keys)).Msg("object cleanup failed")
	}

	deleted := make([]deletedPhotoInfo, 0, len(found))
	failed := make([]failedDeletion, 0)
	sessionsToRefresh := make(map[bson.ObjectID]bool)

	for _, photo := range found {
		if _, err := photos.DeleteOne(ctx, bson.M{"_id": photo.ID}); err != nil {
			failed = append(failed, failedDeletion{
				ID:    photo.ID.Hex(),
				Title: photo.Title,
				Error: err.Error(),
			})
			continue
		}

		deleted = append(deleted, deletedPhotoInfo{
			ID:           photo.ID,
			Title:        photo.Title,
			Filename:     photo.Filename,
			OriginalName: photo.OriginalName,
		})
		sessionsToRefresh[photo.ShootSession] = true
	}

	for sessionID := range sessionsToRefresh {
		refreshSessionCounts(ctx, sessionID)
	}

	utils.Success(c, http.StatusOK, "批量删除完成", gin.H{
		"summary": gin.H{
			"totalRequested": len(req.PhotoIDs),
			"totalFound":     len(found),
			"deletedCount":   len(deleted),
			"failedCount":    len(failed),
		},
		"deletedPhotos":   deleted,
		"failedDeletions": failed,
		"notFound":        notFound,
	})
}

func populateSession(ctx context.Context, photo *models.Photo) {
	var ref models.SessionRef
	err := database.Collection("shootsessions").
		FindOne(ctx, bson.M{"_id": photo.ShootSession}).
		Decode(&ref)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Err(err).Msg("session populate failed")
		}
		return
	}
	photo.SessionInfo = &ref
}

// populateSessions resolves the session references of a page of photos with a
// single lookup.
func populateSessions(ctx context.Context, list []models.Photo) {
	ids := make([]bson.ObjectID, 0, len(list))
	seen := make(map[bson.ObjectID]bool)
	for i := range list {
		if !seen[list[i].ShootSession] {
			seen[list[i].ShootSession] = true
			ids = append(ids, list[i].ShootSession)
		}
	}
	if len(ids) == 0 {
		return
	}

	cursor, err := database.Collection("shootsessions").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		log.Warn().Err(err).Msg("session populate failed")
		return
	}
	defer cursor.Close(ctx)

	var refs []models.SessionRef
	if err := cursor.All(ctx, &refs); err != nil {
		log.Warn().Err(err).Msg("session populate failed")
		return
	}

	byID := make(map[bson.ObjectID]models.SessionRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}
	for i := range list {
		if ref, ok := byID[list[i].ShootSession]; ok {
			r := ref
			list[i].SessionInfo = &r
		}
	}
}
