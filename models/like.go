package models

import "time"

// PostLike records one user's like on one post. The composite unique
// index makes the at-most-one-like-per-(user,post) invariant a storage
// guarantee: two concurrent likes race on the insert and the loser
// surfaces as a duplicate-key error.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_post_likes_user_post;not null" json:"post_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_post_likes_user_post;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
