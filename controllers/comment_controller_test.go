package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hjkwon-dev/miniblog/models"
)

func TestCreateCommentOnMissingPost(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts/9999/comments", u.Token, map[string]string{
		"content": "hello",
	})
	requireError(t, w, http.StatusNotFound, 40401)
}

func TestCommentAppearsInPostView(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	commenter := registerUser(t, r, "bobby", "")

	postID := createPost(t, r, author.Token, "title", "body")
	createComment(t, r, commenter.Token, postID, "first!")

	view := getPostView(t, r, author.Token, postID)
	require.Len(t, view.Comments, 1)
	require.Equal(t, "first!", view.Comments[0].Content)
	require.Equal(t, "bobby", view.Comments[0].Username)
	require.Equal(t, postID, view.Comments[0].PostID)
}

func TestUpdateComment(t *testing.T) {
	r, db := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	postID := createPost(t, r, author.Token, "title", "body")
	otherPostID := createPost(t, r, author.Token, "other", "body")
	commentID := createComment(t, r, author.Token, postID, "original")

	path := fmt.Sprintf("/api/v1/comments/%d", commentID)

	// naming another post is rejected and nothing changes
	w := doJSON(t, r, http.MethodPut, path, author.Token, map[string]interface{}{
		"post_id": otherPostID,
		"content": "moved?",
	})
	requireError(t, w, http.StatusBadRequest, 40010)

	var stored models.Comment
	require.NoError(t, db.First(&stored, commentID).Error)
	require.Equal(t, "original", stored.Content)
	require.Equal(t, postID, stored.PostID)

	w = doJSON(t, r, http.MethodPut, path, author.Token, map[string]interface{}{
		"post_id": postID,
		"content": "edited",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&stored, commentID).Error)
	require.Equal(t, "edited", stored.Content)
	require.Equal(t, postID, stored.PostID)
}

func TestUpdateCommentAuthorization(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	stranger := registerUser(t, r, "mallory", "")
	admin := registerUser(t, r, "rootadm", testAdminCode)

	postID := createPost(t, r, author.Token, "title", "body")
	commentID := createComment(t, r, author.Token, postID, "original")

	path := fmt.Sprintf("/api/v1/comments/%d", commentID)
	body := map[string]interface{}{"post_id": postID, "content": "edited"}

	w := doJSON(t, r, http.MethodPut, path, stranger.Token, body)
	requireError(t, w, http.StatusForbidden, 40301)

	w = doJSON(t, r, http.MethodPut, path, admin.Token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestDeleteCommentAuthorization(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	commenter := registerUser(t, r, "bobby", "")
	admin := registerUser(t, r, "rootadm", testAdminCode)

	postID := createPost(t, r, author.Token, "title", "body")
	commentID := createComment(t, r, commenter.Token, postID, "first!")

	path := fmt.Sprintf("/api/v1/comments/%d", commentID)

	// the post's author does not own the comment
	w := doJSON(t, r, http.MethodDelete, path, author.Token, nil)
	requireError(t, w, http.StatusForbidden, 40301)

	view := getPostView(t, r, author.Token, postID)
	require.Len(t, view.Comments, 1)

	w = doJSON(t, r, http.MethodDelete, path, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view = getPostView(t, r, author.Token, postID)
	require.Empty(t, view.Comments)
}

func TestPostAndCommentLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "userone", "")
	reader := registerUser(t, r, "usertwo", "")
	admin := registerUser(t, r, "rootadm", testAdminCode)

	postID := createPost(t, r, author.Token, "A", "B")

	views := listPostViews(t, r, reader.Token)
	require.Len(t, views, 1)
	require.Equal(t, "A", views[0].Title)
	require.Equal(t, "B", views[0].Content)
	require.Empty(t, views[0].Comments)
	require.Equal(t, 0, views[0].LikeCount)

	commentID := createComment(t, r, reader.Token, postID, "hi")
	view := getPostView(t, r, reader.Token, postID)
	require.Len(t, view.Comments, 1)
	require.Equal(t, "hi", view.Comments[0].Content)

	// the post's author neither owns the comment nor is an admin
	path := fmt.Sprintf("/api/v1/comments/%d", commentID)
	w := doJSON(t, r, http.MethodDelete, path, author.Token, nil)
	requireError(t, w, http.StatusForbidden, 40301)

	w = doJSON(t, r, http.MethodDelete, path, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view = getPostView(t, r, reader.Token, postID)
	require.Empty(t, view.Comments)
}

func TestDeleteCommentNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/comments/9999", u.Token, nil)
	requireError(t, w, http.StatusNotFound, 40402)
}
