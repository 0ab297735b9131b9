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

// GetAllCategories handles GET /api/categories; ?active=true restricts to
// active categories, ?root=true to active root categories.
func GetAllCategories(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	filter := categoryListFilter(categoryListParams{
		Active: c.Query("active"),
		Root:   c.Query("root"),
	})

	cursor, err := database.Collection("categories").Find(ctx, filter,
		options.Find().SetSort(categoryListSort))
	if err != nil {
		utils.InternalError(c, "获取分类列表失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Category
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "获取分类列表失败", err)
		return
	}

	for i := range list {
		populateChildren(ctx, &list[i])
	}
	utils.Success(c, http.StatusOK, "", list)
}

// GetCategoryByID handles GET /api/categories/:id, with parent, children and
// the referencing blog count resolved.
func GetCategoryByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的分类ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	var category models.Category
	err = database.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "分类不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "获取分类详情失败", err)
		return
	}

	populateCategoryDetail(ctx, &category)
	utils.Success(c, http.StatusOK, "", category)
}

// GetCategoryBySlug handles GET /api/categories/slug/:slug; only active
// categories are reachable by slug.
func GetCategoryBySlug(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	var category models.Category
	err := database.Collection("categories").
		FindOne(ctx, bson.M{"slug": c.Param("slug"), "isActive": true}).
		Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "分类不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "获取分类详情失败", err)
		return
	}

	populateCategoryDetail(ctx, &category)
	utils.Success(c, http.StatusOK, "", category)
}

// CreateCategory handles POST /api/categories.
func CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
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

	if req.Parent != nil && !parentExists(ctx, c, *req.Parent) {
		return
	}

	// Schema default: new categories are active unless the payload says not.
	category := models.Category{IsActive: true}
	if err := req.Apply(&category); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}
	category.PrepareSave(nil, time.Now())

	result, err := database.Collection("categories").InsertOne(ctx, &category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.BadRequest(c, "分类名称或slug已存在", err)
			return
		}
		utils.InternalError(c, "创建分类失败", err)
		return
	}
	category.ID = result.InsertedID.(bson.ObjectID)

	populateParent(ctx, &category)
	utils.Success(c, http.StatusCreated, "分类创建成功", category)
}

// UpdateCategory handles PUT /api/categories/:id. A category cannot be its
// own parent; deeper cycles through the ancestor chain are not checked.
func UpdateCategory(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的分类ID", err)
		return
	}

	var req models.CategoryRequest
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

	categories := database.Collection("categories")

	var category models.Category
	err = categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "分类不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "更新分类失败", err)
		return
	}

	if req.Parent != nil && *req.Parent != "" {
		if *req.Parent == id.Hex() {
			utils.BadRequest(c, "不能将自己设为父分类", nil)
			return
		}
		if !parentExists(ctx, c, *req.Parent) {
			return
		}
	}

	prev := category
	if err := req.Apply(&category); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}
	category.PrepareSave(&prev, time.Now())

	if _, err := categories.ReplaceOne(ctx, bson.M{"_id": id}, &category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.BadRequest(c, "分类名称或slug已存在", err)
			return
		}
		utils.InternalError(c, "更新分类失败", err)
		return
	}

	populateParent(ctx, &category)
	populateChildren(ctx, &category)
	utils.Success(c, http.StatusOK, "分类更新成功", category)
}

// DeleteCategory handles DELETE /api/categories/:id; deletion is blocked
// while child categories still reference it.
func DeleteCategory(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的分类ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	categories := database.Collection("categories")

	n, err := categories.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		utils.InternalError(c, "删除分类失败", err)
		return
	}
	if n == 0 {
		utils.NotFound(c, "分类不存在")
		return
	}

	children, err := categories.CountDocuments(ctx, bson.M{"parent": id})
	if err != nil {
		utils.InternalError(c, "删除分类失败", err)
		return
	}
	if children > 0 {
		utils.BadRequest(c, fmt.Sprintf("该分类下有 %d 个子分类，无法删除", children), nil)
		return
	}

	if _, err := categories.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.InternalError(c, "删除分类失败", err)
		return
	}

	utils.Success(c, http.StatusOK, "分类删除成功", nil)
}

func parentExists(ctx context.Context, c *gin.Context, parentHex string) bool {
	if parentHex == "" {
		return true
	}
	id, err := bson.ObjectIDFromHex(parentHex)
	if err != nil {
		utils.BadRequest(c, "指定的父分类不存在", err)
		return false
	}
	n, err := database.Collection("categories").CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		utils.InternalError(c, "验证父分类失败", err)
		return false
	}
	if n == 0 {
		utils.BadRequest(c, "指定的父分类不存在", nil)
		return false
	}
	return true
}

func populateParent(ctx context.Context, category *models.Category) {
	if category.Parent == nil {
		return
	}
	var ref models.CategoryRef
	err := database.Collection("categories").
		FindOne(ctx, bson.M{"_id": *category.Parent}).
		Decode(&ref)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Err(err).Msg("parent populate failed")
		}
		return
	}
	category.ParentInfo = &ref
}

func populateChildren(ctx context.Context, category *models.Category) {
	cursor, err := database.Collection("categories").Find(ctx,
		bson.M{"parent": category.ID, "isActive": true},
		options.Find().SetSort(categoryListSort))
	if err != nil {
		log.Warn().Err(err).Msg("children populate failed")
		return
	}
	defer cursor.Close(ctx)

	var children []models.CategoryRef
	if err := cursor.All(ctx, &children); err != nil {
		log.Warn().Err(err).Msg("children populate failed")
		return
	}
	category.Children = children
}

// populateCategoryDetail adds parent, children and the count of blogs filed
// under the category. The count is looked up, never stored.
func populateCategoryDetail(ctx context.Context, category *models.Category) {
	populateParent(ctx, category)
	populateChildren(ctx, category)

	n, err := database.Collection("blogs").CountDocuments(ctx, bson.M{"category": category.ID})
	if err != nil {
		log.Warn().Err(err).Msg("blog count failed")
		return
	}
	category.BlogCount = n
}
