package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() (*gin.Engine, *gin.Context) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	return engine, nil
}

func TestRequireSession_PopulatesContext(t *testing.T) {
	engine, _ := setupRouter()
	userID := uuid.New()

	var gotUser uuid.UUID
	var gotConn string
	engine.GET("/probe", RequireSession(), func(c *gin.Context) {
		gotUser, _ = SessionUserID(c)
		gotConn, _ = SessionConnectionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-User-ID", userID.String())
	req.Header.Set("X-Connection-ID", "conn-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "conn-42", gotConn)
}

func TestRequireSession_RejectsMissingHeaders(t *testing.T) {
	engine, _ := setupRouter()
	engine.GET("/probe", RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers", nil},
		{"missing connection", map[string]string{"X-User-ID": uuid.NewString()}},
		{"missing user", map[string]string{"X-Connection-ID": "conn-1"}},
		{"malformed user id", map[string]string{"X-User-ID": "not-a-uuid", "X-Connection-ID": "conn-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
