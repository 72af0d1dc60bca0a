// Package apperr defines the error taxonomy of the API and its mapping
// to HTTP statuses and stable response codes. Every failure is terminal
// for the current operation and aborts the enclosing transaction.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hjkwon-dev/miniblog/utils"
)

var (
	// ErrUnauthenticated means the caller identity could not be resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the shared authorization policy denied the actor.
	ErrForbidden = errors.New("you are not allowed to modify this resource")
	// ErrPostNotFound, ErrCommentNotFound, ErrLikeNotFound and
	// ErrUserNotFound are the per-entity lookup failures.
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrUserNotFound    = errors.New("user not found")
	// ErrPostMismatch means a comment update carried a post id different
	// from the comment's actual post; comments are never reparented.
	ErrPostMismatch = errors.New("post id does not match the comment's post")
	// ErrSelfLike means a user tried to like their own post.
	ErrSelfLike = errors.New("you cannot like your own post")
	// ErrDuplicateLike means a like already exists for this user and post.
	ErrDuplicateLike = errors.New("post already liked")
)

// mapping pins each error to its HTTP status and stable numeric code.
var mapping = []struct {
	err    error
	status int
	code   int
}{
	{ErrUnauthenticated, http.StatusUnauthorized, 40101},
	{ErrForbidden, http.StatusForbidden, 40301},
	{ErrPostNotFound, http.StatusNotFound, 40401},
	{ErrCommentNotFound, http.StatusNotFound, 40402},
	{ErrLikeNotFound, http.StatusNotFound, 40403},
	{ErrUserNotFound, http.StatusNotFound, 40404},
	{ErrPostMismatch, http.StatusBadRequest, 40010},
	{ErrSelfLike, http.StatusBadRequest, 40011},
	{ErrDuplicateLike, http.StatusConflict, 40901},
}

// Status returns the HTTP status and response code for a taxonomy
// error. Unknown errors map to 500.
func Status(err error) (int, int) {
	for _, m := range mapping {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, 50000
}

// Abort writes the error through the uniform response envelope and
// stops handler processing.
func Abort(ctx *gin.Context, err error) {
	status, code := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// do not leak internals to callers
		msg = "internal server error"
		if utils.Sugar != nil {
			utils.Sugar.Errorw("request failed", "path", ctx.FullPath(), "err", err)
		}
	}
	utils.Error(ctx, status, code, msg)
	ctx.Abort()
}
