package dto

import "chirper/internal/model"

// ============================================================================
// Model → DTO (Repository 层 → Service 层)
// ============================================================================

// FromUserModel model.User → UserDTO
func FromUserModel(user *model.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// FromChirpModel model.ChirpWithAuthor → ChirpDTO
func FromChirpModel(c *model.ChirpWithAuthor) *ChirpDTO {
	if c == nil {
		return nil
	}
	return &ChirpDTO{
		ID:             c.ID,
		Text:           c.Text,
		CreatedAt:      c.CreatedAt,
		AuthorID:       c.UserID,
		AuthorUsername: c.Username,
	}
}

// FromChirpModels 批量转换，保持顺序
func FromChirpModels(chirps []*model.ChirpWithAuthor) []*ChirpDTO {
	out := make([]*ChirpDTO, 0, len(chirps))
	for _, c := range chirps {
		out = append(out, FromChirpModel(c))
	}
	return out
}

// FromCommentModel model.CommentWithAuthor → CommentDTO
func FromCommentModel(c *model.CommentWithAuthor) *CommentDTO {
	if c == nil {
		return nil
	}
	return &CommentDTO{
		ID:             c.ID,
		Text:           c.Text,
		CreatedAt:      c.CreatedAt,
		ChirpID:        c.ChirpID,
		AuthorID:       c.UserID,
		AuthorUsername: c.Username,
	}
}

// FromCommentModels 批量转换，保持顺序
func FromCommentModels(comments []*model.CommentWithAuthor) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, FromCommentModel(c))
	}
	return out
}
