package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menuhub/dish-service/internal/admin"
	"github.com/menuhub/dish-service/internal/sessions"
	"github.com/menuhub/dish-service/pkg/metrics"
	"github.com/menuhub/dish-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "admin_session"

func newAdminEngine(limit gin.HandlerFunc) *gin.Engine {
	gate := admin.NewGate(
		admin.NewStaticAuthenticator("admin@example.com", "admin123"),
		sessions.NewService(sessions.NewMemoryRepository()),
		[]byte("handler-test-secret-32-bytes-xxxx"),
		time.Hour,
	)
	g := gin.New()
	NewAdminHandler(gate, testCookie, false).Register(g, limit)
	return g
}

func postJSON(g *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookie {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", testCookie)
	return nil
}

func TestAdminLogin_Success(t *testing.T) {
	g := newAdminEngine(nil)
	before := testutil.ToFloat64(metrics.AdminLogins.WithLabelValues("ok"))

	w := postJSON(g, "/api/admin-login", `{"email":"admin@example.com","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login successful")

	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 3600, ck.MaxAge)
	assert.NotEmpty(t, ck.Value)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AdminLogins.WithLabelValues("ok")))

	req := httptest.NewRequest(http.MethodGet, "/api/admin-session", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: ck.Value})
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
	assert.Contains(t, w.Body.String(), `"admin":true`)
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	g := newAdminEngine(nil)

	w := postJSON(g, "/api/admin-login", `{"email":"admin@example.com","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminLogin_BadBody(t *testing.T) {
	g := newAdminEngine(nil)
	for _, body := range []string{`{`, `{"email":"admin@example.com"}`, `{}`} {
		w := postJSON(g, "/api/admin-login", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestAdminLogin_RateLimited(t *testing.T) {
	g := newAdminEngine(middleware.RateLimitMiddleware(0.01, 1, nil))

	w := postJSON(g, "/api/admin-login", `{"email":"admin@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = postJSON(g, "/api/admin-login", `{"email":"admin@example.com","password":"admin123"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAdminSession_RequiresCookie(t *testing.T) {
	g := newAdminEngine(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin-session", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin-session", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "forged.token.value"})
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLogout_EndsSession(t *testing.T) {
	g := newAdminEngine(nil)

	w := postJSON(g, "/api/admin-login", `{"email":"admin@example.com","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ck := &http.Cookie{Name: testCookie, Value: sessionCookie(t, w).Value}

	w = postJSON(g, "/api/admin-logout", ``, ck)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)

	// the old marker no longer names a live session
	w = postJSON(g, "/api/admin-logout", ``, ck)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
