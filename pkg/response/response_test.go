package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{CodeSuccess, http.StatusOK},
		{CodeInvalidParams, http.StatusBadRequest},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeUsernameExists, http.StatusConflict},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeServiceUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), GetMessage(tt.code))
	}
	assert.Equal(t, "未知错误", GetMessage(12345))
}

// flashEngine 挂载 flash session 的最小路由
func flashEngine(secret string, secure bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(FlashMiddleware(NewFlashStore([]byte(secret), secure)))
	r.POST("/post", func(c *gin.Context) {
		SetFlash(c, FlashSuccess, "Chirp posted successfully!")
		Redirect(c, "/page")
	})
	r.GET("/page", func(c *gin.Context) {
		c.JSON(http.StatusOK, TakeFlashes(c))
	})
	return r
}

func serve(r *gin.Engine, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == FlashSessionName {
			return c
		}
	}
	t.Fatalf("响应中没有 %s cookie", FlashSessionName)
	return nil
}

func TestFlash_SurvivesRedirect(t *testing.T) {
	r := flashEngine("flash-secret", false)

	w := serve(r, http.MethodPost, "/post")
	require.Equal(t, http.StatusSeeOther, w.Code)
	posted := flashCookie(t, w)
	assert.True(t, posted.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, posted.SameSite)
	assert.NotContains(t, posted.Value, "Chirp posted", "cookie 内容经过编码签名")

	w = serve(r, http.MethodGet, "/page", posted)
	assert.JSONEq(t, `[{"Category":"success","Message":"Chirp posted successfully!"}]`, w.Body.String())

	// 读取后写回空 session，再次访问不再展示
	w = serve(r, http.MethodGet, "/page", flashCookie(t, w))
	assert.JSONEq(t, `null`, w.Body.String())
}

func TestFlash_ForgedCookieIgnored(t *testing.T) {
	r := flashEngine("flash-secret", false)

	w := serve(r, http.MethodGet, "/page", &http.Cookie{Name: FlashSessionName, Value: "%%%not-a-session"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `null`, w.Body.String())

	// 其他密钥签发的 cookie 同样无效
	other := serve(flashEngine("another-secret", false), http.MethodPost, "/post")
	w = serve(r, http.MethodGet, "/page", flashCookie(t, other))
	assert.JSONEq(t, `null`, w.Body.String())
}

func TestFlash_SecureCookie(t *testing.T) {
	w := serve(flashEngine("flash-secret", true), http.MethodPost, "/post")
	assert.True(t, flashCookie(t, w).Secure)
	assert.True(t, strings.Contains(w.Header().Get("Set-Cookie"), "Secure"))

	w = serve(flashEngine("flash-secret", false), http.MethodPost, "/post")
	assert.False(t, flashCookie(t, w).Secure)
}

func TestFlashNow_SameRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FlashNow(c, FlashError, "a")
	FlashNow(c, FlashError, "b")

	flashes := TakeFlashes(c)
	assert.Equal(t, []Flash{{FlashError, "a"}, {FlashError, "b"}}, flashes)
	assert.Empty(t, TakeFlashes(c))
}

func TestSetFlash_WithoutSessionFallsBackToNow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	SetFlash(c, FlashSuccess, "saved")
	assert.Equal(t, []Flash{{FlashSuccess, "saved"}}, TakeFlashes(c))
	assert.Empty(t, w.Result().Cookies())
}
