package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsCountsEntities(t *testing.T) {
	r, _ := newTestRouter(t)

	author := registerUser(t, r, "alice", "")
	fan := registerUser(t, r, "bobby", "")

	postID := createPost(t, r, author.Token, "title", "body")
	createComment(t, r, fan.Token, postID, "first!")
	w, _ := likePost(t, r, fan.Token, postID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// stats is public, no token needed
	w2 := doJSON(t, r, http.MethodGet, "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	var data struct {
		UserCount    int64 `json:"user_count"`
		PostCount    int64 `json:"post_count"`
		CommentCount int64 `json:"comment_count"`
		LikeCount    int64 `json:"like_count"`
	}
	decodeData(t, w2, &data)
	require.Equal(t, int64(2), data.UserCount)
	require.Equal(t, int64(1), data.PostCount)
	require.Equal(t, int64(1), data.CommentCount)
	require.Equal(t, int64(1), data.LikeCount)
}
