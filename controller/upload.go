package controller

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"

	"mengblog/database"
	"mengblog/models"
	"mengblog/storage"
	"mengblog/utils"
)

const maxUploadFiles = 100

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/tiff": true,
	"image/bmp":  true,
}

func maxFileSize() int64 {
	if v, err := strconv.ParseInt(os.Getenv("MAX_FILE_SIZE"), 10, 64); err == nil && v > 0 {
		return v
	}
	return 50 * 1024 * 1024
}

type uploadedFile struct {
	header   *multipart.FileHeader
	filename string
	result   *storage.UploadResult
	err      error
}

// UploadPhotos handles POST /api/photos/upload: multipart batch upload of up
// to 100 images. Files are pushed to object storage concurrently; a failed
// push does not block the others, the photo record is simply created without
// storage URLs like the rest of the pipeline expects.
func UploadPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequest(c, "文件上传失败", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequest(c, "没有上传任何文件", nil)
		return
	}
	if len(files) > maxUploadFiles {
		utils.BadRequest(c, fmt.Sprintf("最多只能上传 %d 个文件", maxUploadFiles), nil)
		return
	}

	sizeCap := maxFileSize()
	for _, f := range files {
		if f.Size > sizeCap {
			utils.BadRequest(c, "文件大小超出限制", fmt.Errorf("%s: %d bytes", f.Filename, f.Size))
			return
		}
		if !allowedImageTypes[f.Header.Get("Content-Type")] {
			utils.BadRequest(c, "不支持的文件类型", fmt.Errorf("%s: %s", f.Filename, f.Header.Get("Content-Type")))
			return
		}
	}

	sessionHex := c.PostForm("shootSession")
	if sessionHex == "" {
		utils.BadRequest(c, "拍摄批次不能为空", nil)
		return
	}
	sessionID, err := bson.ObjectIDFromHex(sessionHex)
	if err != nil {
		utils.BadRequest(c, "指定的拍摄批次不存在", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	n, err := database.Collection("shootsessions").CountDocuments(ctx, bson.M{"_id": sessionID})
	if err != nil {
		utils.InternalError(c, "图片上传失败", err)
		return
	}
	if n == 0 {
		utils.BadRequest(c, "指定的拍摄批次不存在", nil)
		return
	}

	shootDate := parseShootDate(c.PostForm("shootDate"))
	shootLocation := c.PostForm("shootLocation")
	camera := c.PostForm("camera")
	lens := c.PostForm("lens")
	description := c.PostForm("description")
	retouchedBatch := c.PostForm("imageType") == "retouched"

	var settings models.CameraSettings
	if raw := c.PostForm("settings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			utils.BadRequest(c, "settings格式错误", err)
			return
		}
	}
	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			utils.BadRequest(c, "tags格式错误", err)
			return
		}
	}

	// Push all blobs to object storage concurrently, one result slot per
	// file so no locking is needed.
	uploads := make([]uploadedFile, len(files))
	var wg sync.WaitGroup
	for i, header := range files {
		uploads[i] = uploadedFile{
			header:   header,
			filename: utils.UniqueFilename(header.Filename),
		}
		wg.Add(1)
		go func(u *uploadedFile) {
			defer wg.Done()
			src, err := u.header.Open()
			if err != nil {
				u.err = err
				return
			}
			defer src.Close()

			key := storage.ObjectKey("photos", u.filename)
			u.result, u.err = storage.Upload(c.Request.Context(), key, src, u.header.Header.Get("Content-Type"))
		}(&uploads[i])
	}
	wg.Wait()

	now := time.Now()
	uploadedPhotos := make([]models.Photo, 0, len(uploads))
	uploadedRetouched := make([]models.Photo, 0)

	for _, u := range uploads {
		photo := models.Photo{
			Title:         utils.TitleFromFilename(u.header.Filename),
			Filename:      u.filename,
			OriginalName:  u.header.Filename,
			FileSize:      u.header.Size,
			MimeType:      u.header.Header.Get("Content-Type"),
			ShootDate:     shootDate,
			ShootLocation: shootLocation,
			Camera:        camera,
			Lens:          lens,
			Settings:      settings,
			ShootSession:  sessionID,
			Tags:          tags,
			Description:   description,
		}

		if u.err != nil {
			log.Warn().Err(u.err).Str("file", u.header.Filename).Msg("object upload failed")
		} else {
			photo.OSSKey = u.result.Key
			photo.OSSUrl = u.result.URL
			photo.ThumbnailURL = u.result.ThumbnailURL
		}

		if retouchedBatch {
			photo.MarkRetouched(u.filename, now)
		}
		photo.PrepareSave(now)

		result, err := database.Collection("photos").InsertOne(ctx, &photo)
		if err != nil {
			log.Warn().Err(err).Str("file", u.header.Filename).Msg("photo insert failed")
			continue
		}
		photo.ID = result.InsertedID.(bson.ObjectID)

		if photo.IsRetouched {
			uploadedRetouched = append(uploadedRetouched, photo)
		} else {
			uploadedPhotos = append(uploadedPhotos, photo)
		}
	}

	refreshSessionCounts(ctx, sessionID)

	utils.Success(c, http.StatusCreated,
		fmt.Sprintf("成功上传 %d 张普通图片，%d 张精修图片", len(uploadedPhotos), len(uploadedRetouched)),
		gin.H{
			"photos":     uploadedPhotos,
			"retouched":  uploadedRetouched,
			"totalCount": len(uploadedPhotos) + len(uploadedRetouched),
		})
}

func parseShootDate(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
