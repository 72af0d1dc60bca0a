package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLikePost(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	fan := registerUser(t, r, "bobby", "")

	postID := createPost(t, r, author.Token, "title", "body")

	w, likeID := likePost(t, r, fan.Token, postID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotZero(t, likeID)

	view := getPostView(t, r, author.Token, postID)
	require.Equal(t, 1, view.LikeCount)

	// liking the same post again is rejected
	w, _ = likePost(t, r, fan.Token, postID)
	requireError(t, w, http.StatusConflict, 40901)

	view = getPostView(t, r, author.Token, postID)
	require.Equal(t, 1, view.LikeCount)
}

func TestLikeOwnPostRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	postID := createPost(t, r, author.Token, "title", "body")

	w, _ := likePost(t, r, author.Token, postID)
	requireError(t, w, http.StatusBadRequest, 40011)
}

func TestLikeMissingPost(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w, _ := likePost(t, r, u.Token, 9999)
	requireError(t, w, http.StatusNotFound, 40401)
}

func TestUnlikeAuthorization(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	fan := registerUser(t, r, "bobby", "")
	stranger := registerUser(t, r, "mallory", "")
	admin := registerUser(t, r, "rootadm", testAdminCode)

	postID := createPost(t, r, author.Token, "title", "body")

	w, likeID := likePost(t, r, fan.Token, postID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	path := fmt.Sprintf("/api/v1/likes/%d", likeID)

	w = doJSON(t, r, http.MethodDelete, path, stranger.Token, nil)
	requireError(t, w, http.StatusForbidden, 40301)

	w = doJSON(t, r, http.MethodDelete, path, fan.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view := getPostView(t, r, author.Token, postID)
	require.Equal(t, 0, view.LikeCount)

	// an admin may remove someone else's like
	w, likeID = likePost(t, r, stranger.Token, postID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/likes/%d", likeID), admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view = getPostView(t, r, author.Token, postID)
	require.Equal(t, 0, view.LikeCount)
}

func TestUnlikeMissingLike(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/likes/9999", u.Token, nil)
	requireError(t, w, http.StatusNotFound, 40403)
}

func TestUnlikeAfterRemovalAllowsRelike(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	fan := registerUser(t, r, "bobby", "")

	postID := createPost(t, r, author.Token, "title", "body")

	w, likeID := likePost(t, r, fan.Token, postID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/likes/%d", likeID), fan.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = likePost(t, r, fan.Token, postID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view := getPostView(t, r, author.Token, postID)
	require.Equal(t, 1, view.LikeCount)
}
