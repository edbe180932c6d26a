package dto

import "time"

// ============================================================================
// 输入 DTO
// ============================================================================

// PostChirpDTO 发布 chirp
type PostChirpDTO struct {
	Text string `form:"chirp_text"`
}

// PostCommentDTO 发布评论
type PostCommentDTO struct {
	ChirpID int64  `form:"-"` // 取自路径参数
	Text    string `form:"comment_text"`
}

// ============================================================================
// 输出 DTO（模板渲染使用）
// ============================================================================

// UserDTO 用户公开信息，不含密码哈希
type UserDTO struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// ChirpDTO chirp 及作者
type ChirpDTO struct {
	ID             int64
	Text           string
	CreatedAt      time.Time
	AuthorID       int64
	AuthorUsername string
}

// CommentDTO 评论及作者
type CommentDTO struct {
	ID             int64
	Text           string
	CreatedAt      time.Time
	ChirpID        int64
	AuthorID       int64
	AuthorUsername string
}

// ChirpDetailDTO chirp 详情页
type ChirpDetailDTO struct {
	Chirp    *ChirpDTO
	Comments []*CommentDTO
}

// ProfileDTO 用户主页
type ProfileDTO struct {
	User   *UserDTO
	Chirps []*ChirpDTO
}
