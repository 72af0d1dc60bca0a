package models

import "time"

// CommentView is the response projection of a comment carried inside
// its post.
type CommentView struct {
	CommentID uint      `json:"comment_id"`
	PostID    uint      `json:"post_id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostView is the response projection of a post: its own fields plus
// the like count and the embedded comment list.
type PostView struct {
	PostID    uint          `json:"post_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Username  string        `json:"username"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	LikeCount int           `json:"like_count"`
	Comments  []CommentView `json:"comments"`
}

// NewCommentView projects a comment into its response shape.
func NewCommentView(c Comment) CommentView {
	return CommentView{
		CommentID: c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Username:  c.User.Username,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// BuildPostViews joins the comment and like sets onto their posts by
// post id. Each comment lands under exactly one post; comments whose
// post is absent from the input are dropped. Input ordering of posts
// and comments is preserved.
func BuildPostViews(posts []Post, comments []Comment, likes []PostLike) []PostView {
	likeCounts := make(map[uint]int, len(posts))
	for _, l := range likes {
		likeCounts[l.PostID]++
	}

	byPost := make(map[uint][]CommentView, len(posts))
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], NewCommentView(c))
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		cs := byPost[p.ID]
		if cs == nil {
			cs = []CommentView{}
		}
		views = append(views, PostView{
			PostID:    p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Username:  p.User.Username,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
			LikeCount: likeCounts[p.ID],
			Comments:  cs,
		})
	}
	return views
}
