package model

import "time"

// Chirp 动态表 chirps，作者通过 UserID 外键关联
type Chirp struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
	UserID    int64     `db:"user_id"`
}

// ChirpWithAuthor 连表查询结果，附带作者用户名
type ChirpWithAuthor struct {
	Chirp
	Username string `db:"username"`
}
