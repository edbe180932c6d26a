package model

import "time"

// Comment 评论表 comments
type Comment struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
	UserID    int64     `db:"user_id"`
	ChirpID   int64     `db:"chirp_id"`
}

// CommentWithAuthor 连表查询结果，附带作者用户名
type CommentWithAuthor struct {
	Comment
	Username string `db:"username"`
}
