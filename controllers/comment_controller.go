package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hjkwon-dev/miniblog/apperr"
	"github.com/hjkwon-dev/miniblog/models"
	"github.com/hjkwon-dev/miniblog/policy"
	"github.com/hjkwon-dev/miniblog/utils"
)

// CommentController manages comment creation, update and deletion.
// Updates and deletes go through policy.CanModify, the shared
// owner-or-admin decision.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

// CreateComment attaches a new comment to an existing post.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "content cannot be empty")
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	postID := ctx.Param("id")
	var post models.Post
	if err := c.db.First(&post, "id = ?", atoiID(postID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Abort(ctx, apperr.ErrPostNotFound)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load post")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  actor.ID,
		Content: content,
	}

	if err := c.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to create comment")
		return
	}

	if err := c.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load comment")
		return
	}

	invalidatePostCaches(post.ID)

	utils.Success(ctx, gin.H{"comment": models.NewCommentView(comment)})
}

// UpdateComment rewrites the comment body. The request must name the
// comment's actual post: a mismatched post id is rejected, the comment
// is never moved to another post.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	var req struct {
		PostID  uint   `json:"post_id" binding:"required"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40033, "content cannot be empty")
		return
	}

	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	comment, err := c.loadComment(ctx.Param("commentId"))
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if !policy.CanModify(actor, comment.UserID) {
		apperr.Abort(ctx, apperr.ErrForbidden)
		return
	}

	if req.PostID != comment.PostID {
		apperr.Abort(ctx, apperr.ErrPostMismatch)
		return
	}

	comment.Content = content
	if err := c.db.Save(comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to update comment")
		return
	}

	invalidatePostCaches(comment.PostID)

	utils.Success(ctx, gin.H{"comment": models.NewCommentView(*comment)})
}

// DeleteComment removes a comment; the owner and admins may.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	comment, err := c.loadComment(ctx.Param("commentId"))
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if !policy.CanModify(actor, comment.UserID) {
		apperr.Abort(ctx, apperr.ErrForbidden)
		return
	}

	if err := c.db.Delete(comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to delete comment")
		return
	}

	invalidatePostCaches(comment.PostID)

	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

func (c *CommentController) loadComment(id string) (*models.Comment, error) {
	n := atoiID(id)
	if n == 0 {
		return nil, apperr.ErrCommentNotFound
	}
	var comment models.Comment
	if err := c.db.Preload("User").First(&comment, n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// atoiID parses a positive numeric path parameter, returning 0 when
// the value cannot name an entity.
func atoiID(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// invalidatePostCaches drops the cached list and the post's detail
// after any mutation touching it.
func invalidatePostCaches(postID uint) {
	utils.InvalidateByPrefix("cache:posts:list")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(int(postID)))
}
