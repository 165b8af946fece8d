package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-1")
		handler(c)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/1", nil))
	return rec
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	sentinel := errors.New("missing")
	responder := NewChainedResponder("https://errors.example.com",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, sentinel) {
				return ErrNotFound.WithDetail("Thing not found"), true
			}
			return ProblemDetail{}, false
		},
	)

	rec := serve(t, func(c *gin.Context) { responder.RespondError(c, sentinel) })

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "https://errors.example.com/problems/not-found", problem.Type)
	require.Equal(t, "Thing not found", problem.Detail)
	require.Equal(t, "/things/1", problem.Instance)
	require.Equal(t, "req-1", problem.Extensions["requestId"])
}

func TestResponder_UnknownErrorsAreOpaque500s(t *testing.T) {
	responder := NewChainedResponder("")

	rec := serve(t, func(c *gin.Context) { responder.RespondError(c, errors.New("pq: password authentication failed")) })

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	_ = ErrConflict.WithExtension("k", "v")
	require.Nil(t, ErrConflict.Extensions)
}
