package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mengblog/database"
	"mengblog/models"
	"mengblog/utils"
)

var tagListSort = bson.D{
	{Key: "usageCount", Value: -1},
	{Key: "name", Value: 1},
}

// GetAllTags handles GET /api/tags: active tags, most used first. ?limit
// caps the result for tag-cloud style consumers.
func GetAllTags(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	findOptions := options.Find().SetSort(tagListSort)
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := database.Collection("tags").Find(ctx, bson.M{"isActive": true}, findOptions)
	if err != nil {
		utils.InternalError(c, "获取标签列表失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Tag
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "获取标签列表失败", err)
		return
	}

	utils.Success(c, http.StatusOK, "", list)
}
