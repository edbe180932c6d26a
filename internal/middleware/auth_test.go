package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"chirper/internal/dto"
	"chirper/internal/service"
	"chirper/pkg/logger"
)

const testCookie = "auth_token"

func TestMain(m *testing.M) {
	if err := logger.Init(&logger.Config{Level: "fatal", Output: "stdout"}); err != nil {
		panic("初始化日志失败: " + err.Error())
	}
	gin.SetMode(gin.TestMode)
	m.Run()
}

// MockAuthService 模拟 AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, registerDTO *dto.RegisterDTO) (int64, error) {
	args := m.Called(ctx, registerDTO)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.SessionDTO, error) {
	args := m.Called(ctx, loginDTO)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SessionDTO), args.Error(1)
}

func (m *MockAuthService) CurrentIdentity(ctx context.Context, token string) (service.Identity, bool) {
	args := m.Called(ctx, token)
	return args.Get(0).(service.Identity), args.Bool(1)
}

func (m *MockAuthService) EndSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) GetUser(ctx context.Context, id int64) (*dto.UserDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserDTO), args.Error(1)
}

// newTestEngine /whoami 回显当前身份，/private 需要登录
func newTestEngine(auth service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(auth, testCookie))
	r.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		name := ""
		if user != nil {
			name = user.Username
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":  CurrentIdentity(c).UserID,
			"username": name,
			"token":    SessionToken(c),
		})
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})
	return r
}

func request(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware_NoCookie(t *testing.T) {
	auth := new(MockAuthService)
	r := newTestEngine(auth)

	w := request(r, "/whoami", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"username":"","token":""}`, w.Body.String())
	auth.AssertNotCalled(t, "CurrentIdentity", mock.Anything, mock.Anything)
}

func TestSessionMiddleware_ValidSession(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("CurrentIdentity", mock.Anything, "tok").Return(service.Identity{UserID: 7}, true)
	auth.On("GetUser", mock.Anything, int64(7)).Return(&dto.UserDTO{ID: 7, Username: "bob"}, nil)
	r := newTestEngine(auth)

	w := request(r, "/whoami", "tok")

	assert.JSONEq(t, `{"user_id":7,"username":"bob","token":"tok"}`, w.Body.String())
	auth.AssertExpectations(t)
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("CurrentIdentity", mock.Anything, "stale").Return(service.Identity{}, false)
	r := newTestEngine(auth)

	w := request(r, "/whoami", "stale")

	assert.JSONEq(t, `{"user_id":0,"username":"","token":"stale"}`, w.Body.String())
	auth.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestSessionMiddleware_UserGone(t *testing.T) {
	for name, err := range map[string]error{
		"not found":   service.ErrNotFound,
		"persistence": errors.Join(service.ErrPersistence, errors.New("db down")),
	} {
		t.Run(name, func(t *testing.T) {
			auth := new(MockAuthService)
			auth.On("CurrentIdentity", mock.Anything, "tok").Return(service.Identity{UserID: 9}, true)
			auth.On("GetUser", mock.Anything, int64(9)).Return(nil, err)
			r := newTestEngine(auth)

			w := request(r, "/whoami", "tok")
			assert.JSONEq(t, `{"user_id":0,"username":"","token":"tok"}`, w.Body.String())

			w = request(r, "/private", "tok")
			assert.Equal(t, http.StatusFound, w.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("CurrentIdentity", mock.Anything, "tok").Return(service.Identity{UserID: 1}, true)
	auth.On("GetUser", mock.Anything, int64(1)).Return(&dto.UserDTO{ID: 1, Username: "alice"}, nil)
	r := newTestEngine(auth)

	w := request(r, "/private", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "secret")

	w = request(r, "/private", "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}
