package appMiddleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ctxKey string

func TestPipeline(t *testing.T) {
	errStop := errors.New("stop")

	reject := func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(err.Error()))
	}
	withValue := func(key ctxKey, val string) Guard {
		return func(r *http.Request) (context.Context, error) {
			return context.WithValue(r.Context(), key, val), nil
		}
	}

	t.Run("all guards pass and context flows to handler", func(t *testing.T) {
		var seen []string
		p := NewPipeline(reject, withValue("a", "1"), func(r *http.Request) (context.Context, error) {
			// the second guard sees the first guard's context
			v, _ := r.Context().Value(ctxKey("a")).(string)
			seen = append(seen, v)
			return nil, nil
		}).Then(withValue("b", "2"))
		assert.Equal(t, 3, p.Len())

		h := p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.Context().Value(ctxKey("b")).(string))
			w.WriteHeader(http.StatusOK)
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"1", "2"}, seen)
	})

	t.Run("first failure short-circuits", func(t *testing.T) {
		laterRan, handlerRan := false, false
		p := NewPipeline(reject,
			func(r *http.Request) (context.Context, error) { return nil, errStop },
			func(r *http.Request) (context.Context, error) { laterRan = true; return nil, nil },
		)
		h := p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { handlerRan = true }))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "stop", rr.Body.String())
		assert.False(t, laterRan)
		assert.False(t, handlerRan)
	})

	t.Run("Then does not mutate the base pipeline", func(t *testing.T) {
		base := NewPipeline(reject, withValue("a", "1"))
		_ = base.Then(withValue("b", "2"))
		assert.Equal(t, 1, base.Len())
	})
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rr.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, rr.Header().Get("Permissions-Policy"))
}
