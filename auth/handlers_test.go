package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", Register(db))
	r.POST("/login", Login(db))
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := postJSON(r, "/register", RegisterInput{
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "ada@example.com", resp.User.Email)

	claims, err := ParseToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)

	// password hash never leaves the server
	require.NotContains(t, w.Body.String(), "password")

	w = postJSON(r, "/login", LoginInput{Email: "ada@example.com", Password: "analytical-engine"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/login", LoginInput{Email: "ada@example.com", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/login", LoginInput{Email: "nobody@example.com", Password: "analytical-engine"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	db := newTestDB(t)
	r := newAuthRouter(db)

	tests := []struct {
		name  string
		input RegisterInput
		want  int
	}{
		{"invalid email", RegisterInput{Email: "not-an-email", Password: "longenough"}, http.StatusBadRequest},
		{"short password", RegisterInput{Email: "a@example.com", Password: "short"}, http.StatusBadRequest},
		{"missing password", RegisterInput{Email: "a@example.com"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/register", tt.input)
			require.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := postJSON(r, "/register", RegisterInput{Email: "ada@example.com", Password: "analytical-engine"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/register", RegisterInput{Email: "ada@example.com", Password: "analytical-engine"})
	require.Equal(t, http.StatusConflict, w.Code)
}
