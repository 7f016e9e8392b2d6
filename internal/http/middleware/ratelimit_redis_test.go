package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	pass := os.Getenv("REDIS_PASSWORD")
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			db = n
		}
	}

	rdb := NewRedisClient(addr, pass, db)
	if rdb == nil {
		t.Fatalf("redis at %s did not answer", addr)
	}
	defer rdb.Close()

	// unique window so reruns do not share a key
	w := time.Duration(2+time.Now().Unix()%50) * time.Second
	max := 2
	limiter := NewRateLimiter(rdb, max, w)

	r := gin.New()
	r.GET("/test", limiter.Handler(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	ip := "10.9.0." + strconv.Itoa(int(time.Now().UnixNano()%250)+1)
	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < max; i++ {
		if code := do(); code != 200 {
			t.Fatalf("expected 200 got %d", code)
		}
	}
	if code := do(); code != 429 {
		t.Fatalf("expected 429 got %d", code)
	}
}
