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
	"mengblog/utils"
)

// GetAllBlogs handles GET /api/blogs with optional status, category, search,
// tag and featured filters.
func GetAllBlogs(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	page, limit, skip := paginationParams(c, 10)
	filter := blogListFilter(blogListParams{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Tag:      c.Query("tag"),
		Featured: c.Query("featured"),
	})

	blogs := database.Collection("blogs")

	total, err := blogs.CountDocuments(ctx, filter)
	if err != nil {
		utils.InternalError(c, "获取博客列表失败", err)
		return
	}

	findOptions := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(blogListSort)

	cursor, err := blogs.Find(ctx, filter, findOptions)
	if err != nil {
		utils.InternalError(c, "获取博客列表失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Blog
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "获取博客列表失败", err)
		return
	}

	populateCategories(ctx, list)
	utils.SuccessWithPagination(c, "", list, utils.NewPagination(page, limit, total))
}

// SearchBlogs handles GET /api/blogs/search?q=... — full-text search over
// published posts, ordered by relevance. A missing query is a client error.
func SearchBlogs(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.BadRequest(c, "搜索关键词不能为空", nil)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	page, limit, skip := paginationParams(c, 10)
	filter := blogSearchFilter(q)

	blogs := database.Collection("blogs")

	total, err := blogs.CountDocuments(ctx, filter)
	if err != nil {
		utils.InternalError(c, "搜索博客失败", err)
		return
	}

	findOptions := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetProjection(textScoreProjection).
		SetSort(textScoreSort)

	cursor, err := blogs.Find(ctx, filter, findOptions)
	if err != nil {
		utils.InternalError(c, "搜索博客失败", err)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Blog
	if err = cursor.All(ctx, &list); err != nil {
		utils.InternalError(c, "搜索博客失败", err)
		return
	}

	populateCategories(ctx, list)
	utils.SuccessWithPagination(c, "", list, utils.NewPagination(page, limit, total))
}

// GetBlogByID handles GET /api/blogs/:id. The view counter is bumped in the
// same storage operation that loads the document.
func GetBlogByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的博客ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	var blog models.Blog
	err = database.Collection("blogs").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "博客不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "获取博客详情失败", err)
		return
	}

	populateCategory(ctx, &blog)
	utils.Success(c, http.StatusOK, "", blog)
}

// GetBlogBySlug handles GET /api/blogs/slug/:slug; only published posts are
// reachable by slug.
func GetBlogBySlug(c *gin.Context) {
	ctx, cancel := queryContext()
	defer cancel()

	var blog models.Blog
	err := database.Collection("blogs").FindOneAndUpdate(ctx,
		bson.M{"slug": c.Param("slug"), "status": models.StatusPublished},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "博客不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "获取博客详情失败", err)
		return
	}

	populateCategory(ctx, &blog)
	utils.Success(c, http.StatusOK, "", blog)
}

// CreateBlog handles POST /api/blogs.
func CreateBlog(c *gin.Context) {
	var req models.BlogRequest
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

	if req.Category != nil && !categoryExists(ctx, c, *req.Category) {
		return
	}

	var blog models.Blog
	if err := req.Apply(&blog); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}
	blog.PrepareSave(nil, time.Now())

	result, err := database.Collection("blogs").InsertOne(ctx, &blog)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.BadRequest(c, "slug已存在", err)
			return
		}
		utils.InternalError(c, "创建博客失败", err)
		return
	}
	blog.ID = result.InsertedID.(bson.ObjectID)

	adjustTagUsage(ctx, nil, blog.Tags)

	populateCategory(ctx, &blog)
	utils.Success(c, http.StatusCreated, "博客创建成功", blog)
}

// UpdateBlog handles PUT /api/blogs/:id. Provided fields overwrite the stored
// document; tag counters are adjusted by the symmetric difference.
func UpdateBlog(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的博客ID", err)
		return
	}

	var req models.BlogRequest
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

	blogs := database.Collection("blogs")

	var blog models.Blog
	err = blogs.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "博客不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "更新博客失败", err)
		return
	}

	if req.Category != nil && !categoryExists(ctx, c, *req.Category) {
		return
	}

	prev := blog
	if err := req.Apply(&blog); err != nil {
		utils.BadRequest(c, "数据验证失败", err)
		return
	}
	blog.PrepareSave(&prev, time.Now())

	if _, err := blogs.ReplaceOne(ctx, bson.M{"_id": id}, &blog); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.BadRequest(c, "slug已存在", err)
			return
		}
		utils.InternalError(c, "更新博客失败", err)
		return
	}

	adjustTagUsage(ctx, prev.Tags, blog.Tags)

	populateCategory(ctx, &blog)
	utils.Success(c, http.StatusOK, "博客更新成功", blog)
}

// DeleteBlog handles DELETE /api/blogs/:id and releases the post's tag usage.
func DeleteBlog(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的博客ID", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	blogs := database.Collection("blogs")

	var blog models.Blog
	err = blogs.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.NotFound(c, "博客不存在")
		return
	}
	if err != nil {
		utils.InternalError(c, "删除博客失败", err)
		return
	}

	if _, err := blogs.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.InternalError(c, "删除博客失败", err)
		return
	}

	adjustTagUsage(ctx, blog.Tags, nil)

	utils.Success(c, http.StatusOK, "博客删除成功", nil)
}

// categoryExists verifies an optional category reference and writes the 400
// response itself when the reference is broken.
func categoryExists(ctx context.Context, c *gin.Context, categoryHex string) bool {
	if categoryHex == "" {
		return true
	}
	id, err := bson.ObjectIDFromHex(categoryHex)
	if err != nil {
		utils.BadRequest(c, "指定的分类不存在", err)
		return false
	}
	n, err := database.Collection("categories").CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		utils.InternalError(c, "验证分类失败", err)
		return false
	}
	if n == 0 {
		utils.BadRequest(c, "指定的分类不存在", nil)
		return false
	}
	return true
}

func populateCategory(ctx context.Context, blog *models.Blog) {
	if blog.Category == nil {
		return
	}
	var ref models.CategoryRef
	err := database.Collection("categories").
		FindOne(ctx, bson.M{"_id": *blog.Category}).
		Decode(&ref)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Err(err).Msg("category populate failed")
		}
		return
	}
	blog.CategoryInfo = &ref
}

// populateCategories resolves the category references of a page of blogs with
// a single lookup.
func populateCategories(ctx context.Context, list []models.Blog) {
	ids := make([]bson.ObjectID, 0, len(list))
	seen := make(map[bson.ObjectID]bool)
	for i := range list {
		if list[i].Category != nil && !seen[*list[i].Category] {
			seen[*list[i].Category] = true
			ids = append(ids, *list[i].Category)
		}
	}
	if len(ids) == 0 {
		return
	}

	cursor, err := database.Collection("categories").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		log.Warn().Err(err).Msg("category populate failed")
		return
	}
	defer cursor.Close(ctx)

	var refs []models.CategoryRef
	if err := cursor.All(ctx, &refs); err != nil {
		log.Warn().Err(err).Msg("category populate failed")
		return
	}

	byID := make(map[bson.ObjectID]models.CategoryRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}
	for i := range list {
		if list[i].Category != nil {
			if ref, ok := byID[*list[i].Category]; ok {
				r := ref
				list[i].CategoryInfo = &r
			}
		}
	}
}
