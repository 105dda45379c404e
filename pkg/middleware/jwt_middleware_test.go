package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func roleRequest(t *testing.T, role string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	_, router := gin.CreateTestContext(recorder)

	router.GET("/admin",
		func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		},
		RoleMiddleware("admin"),
		func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"matching role passes", "admin", http.StatusOK},
		{"other role is forbidden", "user", http.StatusForbidden},
		{"missing role is forbidden", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := roleRequest(t, tt.role)
			if recorder.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", recorder.Code, tt.wantCode)
			}
		})
	}
}
