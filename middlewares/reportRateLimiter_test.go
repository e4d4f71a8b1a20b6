package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// fakeCounter counts in memory, remembering the window it was first given
// for each key the way the Redis counter's SET NX does.
type fakeCounter struct {
	counts  map[string]int64
	windows map[string]time.Duration
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, windows: map[string]time.Duration{}}
}

func (f *fakeCounter) Count(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if _, exists := f.windows[key]; !exists {
		f.windows[key] = window
	}
	f.counts[key]++
	return f.counts[key], f.windows[key], nil
}

func limitedRouter(counter RateCounter, limit int, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	identify := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
	r.POST("/reports", identify, ReportRateLimiter(counter, limit), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "created"})
	})
	return r
}

func TestReportRateLimiterAllowsUpToLimit(t *testing.T) {
	counter := newFakeCounter()
	r := limitedRouter(counter, 3, "user-1")

	for i := 1; i <= 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d, expected 201", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request over limit: status = %d, expected 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "retry_after") {
		t.Errorf("429 response should carry retry_after, got %s", w.Body.String())
	}
}

func TestReportRateLimiterIsPerUser(t *testing.T) {
	counter := newFakeCounter()

	first := limitedRouter(counter, 1, "user-1")
	w := httptest.NewRecorder()
	first.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("first user: status = %d", w.Code)
	}
	w = httptest.NewRecorder()
	first.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("first user over limit: status = %d, expected 429", w.Code)
	}

	second := limitedRouter(counter, 1, "user-2")
	w = httptest.NewRecorder()
	second.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("second user should not share the first user's count, status = %d", w.Code)
	}
}

func TestReportRateLimiterRequiresUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/reports", ReportRateLimiter(newFakeCounter(), 5), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "created"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400 without user_id", w.Code)
	}
}
