package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hjkwon-dev/miniblog/models"
)

func TestCreateAndGetPost(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")
	postID := createPost(t, r, u.Token, "first post", "hello world")

	view := getPostView(t, r, u.Token, postID)
	require.Equal(t, postID, view.PostID)
	require.Equal(t, "first post", view.Title)
	require.Equal(t, "hello world", view.Content)
	require.Equal(t, "alice", view.Username)
	require.Equal(t, 0, view.LikeCount)
	require.NotNil(t, view.Comments)
	require.Empty(t, view.Comments)
}

func TestGetPostNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodGet, "/api/v1/posts/9999", u.Token, nil)
	requireError(t, w, http.StatusNotFound, 40401)

	w = doJSON(t, r, http.MethodGet, "/api/v1/posts/abc", u.Token, nil)
	requireError(t, w, http.StatusNotFound, 40401)
}

func TestListPostsNewestFirst(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")
	first := createPost(t, r, u.Token, "older", "body")
	time.Sleep(10 * time.Millisecond)
	second := createPost(t, r, u.Token, "newer", "body")

	views := listPostViews(t, r, u.Token)
	require.Len(t, views, 2)
	require.Equal(t, second, views[0].PostID)
	require.Equal(t, first, views[1].PostID)
}

func TestCreatePostRejectsEmptyTitle(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts", u.Token, map[string]string{
		"title":   "   ",
		"content": "body",
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := registerUser(t, r, "alice", "")
	stranger := registerUser(t, r, "mallory", "")
	admin := registerUser(t, r, "rootadm", testAdminCode)

	postID := createPost(t, r, owner.Token, "title", "body")
	path := fmt.Sprintf("/api/v1/posts/%d", postID)
	update := map[string]string{"title": "changed", "content": "changed body"}

	w := doJSON(t, r, http.MethodPut, path, stranger.Token, update)
	requireError(t, w, http.StatusForbidden, 40301)

	// admins have no override on posts, unlike comments and likes
	w = doJSON(t, r, http.MethodPut, path, admin.Token, update)
	requireError(t, w, http.StatusForbidden, 40301)

	w = doJSON(t, r, http.MethodPut, path, owner.Token, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view := getPostView(t, r, owner.Token, postID)
	require.Equal(t, "changed", view.Title)
	require.Equal(t, "changed body", view.Content)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := registerUser(t, r, "alice", "")
	stranger := registerUser(t, r, "mallory", "")
	admin := registerUser(t, r, "rootadm", testAdminCode)

	postID := createPost(t, r, owner.Token, "title", "body")
	path := fmt.Sprintf("/api/v1/posts/%d", postID)

	w := doJSON(t, r, http.MethodDelete, path, stranger.Token, nil)
	requireError(t, w, http.StatusForbidden, 40301)

	w = doJSON(t, r, http.MethodDelete, path, admin.Token, nil)
	requireError(t, w, http.StatusForbidden, 40301)

	// both rejections left the post in place
	getPostView(t, r, owner.Token, postID)

	w = doJSON(t, r, http.MethodDelete, path, owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, path, owner.Token, nil)
	requireError(t, w, http.StatusNotFound, 40401)
}

func TestDeletePostCascades(t *testing.T) {
	r, db := newTestRouter(t)

	owner := registerUser(t, r, "alice", "")
	other := registerUser(t, r, "bobby", "")

	postID := createPost(t, r, owner.Token, "title", "body")
	createComment(t, r, other.Token, postID, "nice one")
	w, _ := likePost(t, r, other.Token, postID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", postID), owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var comments, likes int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&likes).Error)
	require.Zero(t, comments)
	require.Zero(t, likes)
}
