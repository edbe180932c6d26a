package dto

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxUsernameLength 用户名最大长度（与 users.username 列一致）
	MaxUsernameLength = 100
	// MaxPasswordBytes bcrypt 只处理前 72 字节
	MaxPasswordBytes = 72
	// MaxTextLength chirp / 评论最大字符数（与 text 列一致）
	MaxTextLength = 280
)

// usernameRegex 用户名出现在 /user/:username 路径中，只允许不需要转义的字符，且不能以 . 开头
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// ErrValidation 所有参数校验错误的公共哨兵，errors.Is 可识别
var ErrValidation = errors.New("validation error")

// ValidationError 参数校验错误，Message 可直接展示给用户
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is 让 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ============================================================================
// 验证错误
// ============================================================================

var (
	ErrCredentialsRequired = &ValidationError{Field: "username", Message: "Username and password are required."}
	ErrUsernameTooLong     = &ValidationError{Field: "username", Message: "Username must be at most 100 characters."}
	ErrUsernameInvalid     = &ValidationError{Field: "username", Message: "Username may only contain letters, digits, underscores, dots and hyphens."}
	ErrPasswordTooLong     = &ValidationError{Field: "password", Message: "Password must be at most 72 bytes."}
	ErrChirpTextEmpty      = &ValidationError{Field: "chirp_text", Message: "Chirp text cannot be empty."}
	ErrChirpTextTooLong    = &ValidationError{Field: "chirp_text", Message: "Chirps are limited to 280 characters."}
	ErrCommentTextEmpty    = &ValidationError{Field: "comment_text", Message: "Comment text cannot be empty."}
	ErrCommentTextTooLong  = &ValidationError{Field: "comment_text", Message: "Comments are limited to 280 characters."}
)

// Validate 验证注册DTO
func (d *RegisterDTO) Validate() error {
	if d.Username == "" || d.Password == "" {
		return ErrCredentialsRequired
	}
	if utf8.RuneCountInString(d.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(d.Username) {
		return ErrUsernameInvalid
	}
	if len(d.Password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// Normalize 去除首尾空白
func (d *PostChirpDTO) Normalize() {
	d.Text = strings.TrimSpace(d.Text)
}

// Validate 验证发布chirp DTO，调用前应先 Normalize
func (d *PostChirpDTO) Validate() error {
	if d.Text == "" {
		return ErrChirpTextEmpty
	}
	if utf8.RuneCountInString(d.Text) > MaxTextLength {
		return ErrChirpTextTooLong
	}
	return nil
}

// Normalize 去除首尾空白
func (d *PostCommentDTO) Normalize() {
	d.Text = strings.TrimSpace(d.Text)
}

// Validate 验证发布评论DTO，调用前应先 Normalize
func (d *PostCommentDTO) Validate() error {
	if d.Text == "" {
		return ErrCommentTextEmpty
	}
	if utf8.RuneCountInString(d.Text) > MaxTextLength {
		return ErrCommentTextTooLong
	}
	return nil
}
