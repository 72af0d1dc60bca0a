package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hjkwon-dev/miniblog/apperr"
	"github.com/hjkwon-dev/miniblog/middleware"
	"github.com/hjkwon-dev/miniblog/models"
	"github.com/hjkwon-dev/miniblog/policy"
	"github.com/hjkwon-dev/miniblog/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// requireActor resolves the authenticated caller or aborts with 401.
func requireActor(ctx *gin.Context) (policy.Actor, bool) {
	actor, ok := middleware.ActorFrom(ctx)
	if !ok {
		apperr.Abort(ctx, apperr.ErrUnauthenticated)
	}
	return actor, ok
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required,min=1"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	post := models.Post{
		UserID:  actor.ID,
		Title:   title,
		Content: content,
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")

	utils.Success(ctx, gin.H{"post": post})
}

// ListPosts returns every post ordered by last-modified time
// descending, each carrying its full comment list and like count.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if _, ok := requireActor(ctx); !ok {
		return
	}

	if b, ok := utils.CacheGetBytes("cache:posts:list"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var posts []models.Post
	if err := p.db.Preload("User").Order("updated_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}

	comments, likes, err := p.loadChildren(nil)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load comments")
		return
	}

	payload := gin.H{"posts": models.BuildPostViews(posts, comments, likes)}
	cacheEnvelope("cache:posts:list", payload)
	utils.Success(ctx, payload)
}

// GetPost returns a single post with its comments and like count.
func (p *PostController) GetPost(ctx *gin.Context) {
	if _, ok := requireActor(ctx); !ok {
		return
	}

	postID := ctx.Param("id")
	if b, ok := utils.CacheGetBytes("cache:post:detail:" + postID); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.loadPost(postID)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	comments, likes, err := p.loadChildren(&post.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load comments")
		return
	}

	views := models.BuildPostViews([]models.Post{*post}, comments, likes)
	payload := gin.H{"post": views[0]}
	cacheEnvelope("cache:post:detail:"+postID, payload)
	utils.Success(ctx, payload)
}

// UpdatePost allows the author to update their post. There is no admin
// override here: comments and likes grant one, posts do not.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required,min=1"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40025, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	postID := ctx.Param("id")
	post, err := p.loadPost(postID)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if post.UserID != actor.ID {
		apperr.Abort(ctx, apperr.ErrForbidden)
		return
	}

	post.Title = title
	post.Content = content
	if err := p.db.Save(post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to update post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")
	utils.InvalidateByPrefix("cache:post:detail:" + postID)

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the author to delete their post. The post's
// comments and likes go with it in the same transaction, so no child
// row can outlive its post.
func (p *PostController) DeletePost(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	postID := ctx.Param("id")
	post, err := p.loadPost(postID)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if post.UserID != actor.ID {
		apperr.Abort(ctx, apperr.ErrForbidden)
		return
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")
	utils.InvalidateByPrefix("cache:post:detail:" + postID)

	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// loadPost fetches a post by its path parameter.
func (p *PostController) loadPost(id string) (*models.Post, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return nil, apperr.ErrPostNotFound
	}
	var post models.Post
	if err := p.db.Preload("User").First(&post, n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// loadChildren fetches the comment and like sets feeding the
// aggregation step, scoped to one post when postID is non-nil.
func (p *PostController) loadChildren(postID *uint) ([]models.Comment, []models.PostLike, error) {
	cq := p.db.Preload("User").Order("updated_at DESC")
	lq := p.db.Session(&gorm.Session{})
	if postID != nil {
		cq = cq.Where("post_id = ?", *postID)
		lq = lq.Where("post_id = ?", *postID)
	}

	var comments []models.Comment
	if err := cq.Find(&comments).Error; err != nil {
		return nil, nil, err
	}
	var likes []models.PostLike
	if err := lq.Find(&likes).Error; err != nil {
		return nil, nil, err
	}
	return comments, likes, nil
}

// cacheEnvelope stores the full success envelope so cache hits can be
// written back verbatim.
func cacheEnvelope(key string, payload interface{}) {
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(key, wrapper, time.Hour)
}
