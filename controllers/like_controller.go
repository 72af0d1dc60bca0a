package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hjkwon-dev/miniblog/apperr"
	"github.com/hjkwon-dev/miniblog/models"
	"github.com/hjkwon-dev/miniblog/policy"
	"github.com/hjkwon-dev/miniblog/utils"
)

// LikeController manages like reactions on posts. Uniqueness of a
// (user, post) like rests on the composite unique index, so two
// concurrent likes cannot both commit; the loser gets DuplicateLike.
type LikeController struct {
	db *gorm.DB
}

// NewLikeController creates a new LikeController instance.
func NewLikeController(db *gorm.DB) *LikeController {
	return &LikeController{db: db}
}

// LikePost records the actor's like on a post. Liking your own post is
// rejected, as is liking the same post twice.
func (l *LikeController) LikePost(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	postID := atoiID(ctx.Param("id"))
	if postID == 0 {
		apperr.Abort(ctx, apperr.ErrPostNotFound)
		return
	}

	var post models.Post
	if err := l.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Abort(ctx, apperr.ErrPostNotFound)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load post")
		return
	}

	if post.UserID == actor.ID {
		apperr.Abort(ctx, apperr.ErrSelfLike)
		return
	}

	// Indexed lookup for the friendly error on the common path; the
	// unique index still decides under contention.
	var count int64
	if err := l.db.Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", post.ID, actor.ID).
		Count(&count).Error; err == nil && count > 0 {
		apperr.Abort(ctx, apperr.ErrDuplicateLike)
		return
	}

	like := models.PostLike{
		PostID: post.ID,
		UserID: actor.ID,
	}
	if err := l.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperr.Abort(ctx, apperr.ErrDuplicateLike)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to create like")
		return
	}

	invalidatePostCaches(post.ID)

	utils.Success(ctx, gin.H{"like": like})
}

// UnlikePost removes a like; the like's owner and admins may.
func (l *LikeController) UnlikePost(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	likeID := atoiID(ctx.Param("likeId"))
	if likeID == 0 {
		apperr.Abort(ctx, apperr.ErrLikeNotFound)
		return
	}

	var like models.PostLike
	if err := l.db.First(&like, likeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Abort(ctx, apperr.ErrLikeNotFound)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load like")
		return
	}

	if !policy.CanModify(actor, like.UserID) {
		apperr.Abort(ctx, apperr.ErrForbidden)
		return
	}

	if err := l.db.Delete(&like).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to delete like")
		return
	}

	invalidatePostCaches(like.PostID)

	utils.Success(ctx, gin.H{"message": "like removed"})
}
