package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myBizHub/pkg/logger"
	jsonres "myBizHub/pkg/response"
	"myBizHub/pkg/utils"
)

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := AuthMiddleware()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusNoContent)
	})(c)
	require.NoError(t, err)
	return rec, c, called
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetJWTSecret("middleware-secret")

	token, err := utils.GenerateJWT("12", "USER", time.Hour)
	require.NoError(t, err)

	rec, c, called := runAuth(t, "Bearer "+token)
	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(12), c.Get("user_id"))
	assert.Equal(t, "USER", c.Get("role"))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	utils.SetJWTSecret("middleware-secret")

	badID, err := utils.GenerateJWT("abc", "USER", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"non numeric user", "Bearer " + badID, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, called := runAuth(t, tt.header)
			assert.False(t, called)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestTraceID(t *testing.T) {
	e := echo.New()
	var seen string
	h := TraceID()(func(c echo.Context) error {
		seen = logger.TraceID(c.Request().Context())
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderTraceID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderTraceID, "abc-123")
	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", seen)
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	ErrorHandler(echo.NewHTTPError(http.StatusNotFound, "not here"), e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body jsonres.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "not here", body.Message)

	rec = httptest.NewRecorder()
	ErrorHandler(errors.New("boom"), e.NewContext(req, rec))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
