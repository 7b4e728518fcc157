package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skillpath/skillpath/internal/model"
)

func roleContext(user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if user != nil {
		c.Set(ctxUserKey, *user)
	}
	return c, rec
}

func TestRequireRole(t *testing.T) {
	okHandler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	tests := []struct {
		name       string
		user       *model.User
		roles      []string
		wantStatus int
	}{
		{"matching role", &model.User{ID: 1, Role: model.RoleAdmin}, []string{model.RoleAdmin}, http.StatusOK},
		{"one of several", &model.User{ID: 1, Role: model.RoleUser}, []string{model.RoleAdmin, model.RoleUser}, http.StatusOK},
		{"wrong role", &model.User{ID: 1, Role: model.RoleUser}, []string{model.RoleAdmin}, http.StatusForbidden},
		{"no user in context", nil, []string{model.RoleUser}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := roleContext(tt.user)
			mw := RequireRole(tt.roles...)
			if err := mw(okHandler)(c); err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	c, _ := roleContext(&model.User{ID: 7, Username: "alice"})
	u, ok := CurrentUser(c)
	if !ok || u.ID != 7 {
		t.Errorf("CurrentUser() = %+v, %v", u, ok)
	}

	c, _ = roleContext(nil)
	if _, ok := CurrentUser(c); ok {
		t.Error("CurrentUser() reported a user on an unauthenticated request")
	}
}
