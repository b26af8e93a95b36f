package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, client *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lim, err := NewLimiter("2-M", client)
	require.NoError(t, err)

	router := gin.New()
	router.Use(RateLimit(lim))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func hit(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	router := newLimitedRouter(t, client)

	assert.Equal(t, http.StatusOK, hit(router))
	assert.Equal(t, http.StatusOK, hit(router))
	assert.Equal(t, http.StatusTooManyRequests, hit(router))

	keys := mr.Keys()
	require.NotEmpty(t, keys)
	assert.Contains(t, keys[0], rateLimitKeyPrefix)
}

func TestRateLimit_MemoryStore(t *testing.T) {
	router := newLimitedRouter(t, nil)

	assert.Equal(t, http.StatusOK, hit(router))
	assert.Equal(t, http.StatusOK, hit(router))
	assert.Equal(t, http.StatusTooManyRequests, hit(router))
}

func TestNewLimiter_InvalidRate(t *testing.T) {
	_, err := NewLimiter("lots", nil)
	assert.Error(t, err)
}
