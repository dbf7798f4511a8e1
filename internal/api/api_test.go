package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"recipe/internal/config"
	"recipe/internal/entity"
	"recipe/internal/model"
	"recipe/internal/service"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t       *testing.T
	handler *HTTPHandler
	router  *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		DBType:            model.DBTypeSQLite,
		DBPath:            filepath.Join(t.TempDir(), "api.db"),
		TokenHeader:       "Authorization",
		MinPasswordLength: 5,
		RequestTimeout:    5 * time.Second,
	}
	repo, err := model.InitRepository(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	h := NewHTTPHandler(cfg, repo)
	return &testServer{t: t, handler: h, router: h.NewRouter()}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(email, password string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users/create", "", gin.H{"email": email, "password": password, "name": "Test name"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) token(email, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users/token", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp entity.TokenResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	s.register(email, "testpass123")
	return s.token(email, "testpass123")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateUserSuccess(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/users/create", "", gin.H{
		"email":    "test@londonappdev.com",
		"password": "testpass",
		"name":     "Test name",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "test@londonappdev.com", body["email"])
	assert.Equal(t, "Test name", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, w.Body.String(), "testpass")
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t)
	s.register("exists@x.com", "testpass")

	tests := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"duplicate", gin.H{"email": "exists@x.com", "password": "testpass"}, "email"},
		{"duplicate case variant", gin.H{"email": "EXISTS@X.com", "password": "testpass"}, "email"},
		{"short password", gin.H{"email": "new@x.com", "password": "pw"}, "password"},
		{"missing email", gin.H{"password": "testpass"}, "email"},
		{"malformed email", gin.H{"email": "nope", "password": "testpass"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/users/create", "", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			resp := decode[struct {
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			}](t, w)
			assert.Equal(t, ErrCodeValidation, resp.Code)
			assert.Contains(t, resp.Details, tt.field)
		})
	}

	w := s.do(http.MethodPost, "/users/token", "", gin.H{"email": "new@x.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTokenFlow(t *testing.T) {
	s := newTestServer(t)
	s.register("cook@x.com", "testpass")

	first := s.token("cook@x.com", "testpass")
	assert.Len(t, first, 40)
	second := s.token("COOK@x.com", "testpass")
	assert.Equal(t, first, second)

	for _, body := range []gin.H{
		{"email": "cook@x.com", "password": "wrong"},
		{"email": "ghost@x.com", "password": "testpass"},
	} {
		w := s.do(http.MethodPost, "/users/token", "", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[APIError](t, w)
		assert.Equal(t, ErrCodeInvalidCredentials, resp.Code)
		assert.NotContains(t, w.Body.String(), "token\":")
	}

	w := s.do(http.MethodPost, "/users/token", "", gin.H{"email": "cook@x.com", "password": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/users/me", "/recipe/tags", "/recipe/ingredients", "/admin/users"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = s.do(http.MethodGet, path, "0000000000000000000000000000000000000000", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := s.do(http.MethodPost, "/recipe/tags", "", gin.H{"name": "vegan"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHeaderSchemes(t *testing.T) {
	s := newTestServer(t)
	key := s.login("cook@x.com")

	for _, value := range []string{"Token " + key, "Bearer " + key, "bearer " + key, "TOKEN  " + key} {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", value)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, value)
	}

	for _, value := range []string{key, "Basic " + key, "Token"} {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", value)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, value)
	}
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	key := s.login("me@x.com")

	w := s.do(http.MethodGet, "/users/me", key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[entity.UserProfile](t, w)
	assert.Equal(t, "me@x.com", profile.Email)
	assert.Equal(t, "Test name", profile.Name)

	w = s.do(http.MethodPost, "/users/me", key, gin.H{})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = s.do(http.MethodPatch, "/users/me", key, gin.H{"name": "new name", "password": "newpassword123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile = decode[entity.UserProfile](t, w)
	assert.Equal(t, "new name", profile.Name)

	assert.Equal(t, key, s.token("me@x.com", "newpassword123"))
	w = s.do(http.MethodPost, "/users/token", "", gin.H{"email": "me@x.com", "password": "testpass123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/users/me", key, gin.H{"password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceEndpoints(t *testing.T) {
	for _, kind := range entity.ResourceKinds {
		t.Run(string(kind), func(t *testing.T) {
			s := newTestServer(t)
			path := "/recipe/" + kind.Path()
			key := s.login("cook@x.com")

			w := s.do(http.MethodGet, path, key, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, "[]", w.Body.String())

			for _, name := range []string{"vegan", "dessert"} {
				w = s.do(http.MethodPost, path, key, gin.H{"name": name})
				require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
				created := decode[entity.Resource](t, w)
				assert.Equal(t, name, created.Name)
				assert.NotZero(t, created.ID)
			}

			w = s.do(http.MethodGet, path, key, nil)
			require.Equal(t, http.StatusOK, w.Code)
			items := decode[[]entity.Resource](t, w)
			require.Len(t, items, 2)
			assert.Equal(t, "vegan", items[0].Name)
			assert.Equal(t, "dessert", items[1].Name)
		})
	}
}

func TestResourcesAreScopedToOwner(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@x.com")
	bob := s.login("bob@x.com")

	w := s.do(http.MethodPost, "/recipe/tags", bob, gin.H{"name": "fruity"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(http.MethodPost, "/recipe/tags", alice, gin.H{"name": "comfort food"})
	require.Equal(t, http.StatusCreated, w.Code)

	// user_id in the body is ignored
	w = s.do(http.MethodPost, "/recipe/ingredients", alice, gin.H{"name": "salt", "user_id": 999})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/recipe/tags", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]entity.Resource](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "comfort food", items[0].Name)

	w = s.do(http.MethodGet, "/recipe/ingredients", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateResourceRejectsEmptyName(t *testing.T) {
	s := newTestServer(t)
	key := s.login("cook@x.com")

	for _, body := range []gin.H{{"name": ""}, {"name": "   "}, {}} {
		w := s.do(http.MethodPost, "/recipe/ingredients", key, body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		}](t, w)
		assert.Equal(t, ErrCodeValidation, resp.Code)
		assert.Contains(t, resp.Details, "name")
	}

	user, err := s.handler.identity.VerifyCredentials(context.Background(), "cook@x.com", "testpass123")
	require.NoError(t, err)
	count, err := s.handler.stores[entity.KindIngredient].Count(context.Background(), user)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnsupportedMethodsAndPaths(t *testing.T) {
	s := newTestServer(t)
	key := s.login("cook@x.com")

	for _, method := range []string{http.MethodDelete, http.MethodPut, http.MethodPatch} {
		w := s.do(method, "/recipe/tags", key, gin.H{"name": "x"})
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		resp := decode[APIError](t, w)
		assert.Equal(t, ErrCodeMethodNotAllowed, resp.Code)
	}

	w := s.do(http.MethodGet, "/users/create", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = s.do(http.MethodGet, "/recipe/tags/1", key, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	regular := s.login("cook@x.com")

	w := s.do(http.MethodGet, "/admin/users", regular, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, ErrCodeForbidden, decode[APIError](t, w).Code)

	_, err := s.handler.Identity().CreateSuperuser(context.Background(), "admin@x.com", "adminpass", service.UserFields{})
	require.NoError(t, err)
	staff := s.token("admin@x.com", "adminpass")

	w = s.do(http.MethodGet, "/admin/users", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]entity.UserSummary](t, w)
	require.Len(t, users, 2)
	assert.Equal(t, "cook@x.com", users[0].Email)
	assert.True(t, users[1].IsSuperuser)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(http.MethodPost, "/admin/users", staff, gin.H{"email": "Helper@X.com", "password": "helperpass", "is_staff": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[entity.UserSummary](t, w)
	assert.Equal(t, "helper@x.com", created.Email)
	assert.True(t, created.IsStaff)
	assert.False(t, created.IsSuperuser)

	w = s.do(http.MethodGet, "/admin/users/"+strconv.FormatUint(uint64(created.ID), 10), staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "helper@x.com", decode[entity.UserSummary](t, w).Email)

	for _, id := range []string{"999", "abc", "0", "-1"} {
		w = s.do(http.MethodGet, "/admin/users/"+id, staff, nil)
		require.Equal(t, http.StatusNotFound, w.Code, id)
		assert.Equal(t, ErrCodeNotFound, decode[APIError](t, w).Code, id)
	}
}

func TestAdminCreateInactiveUserCannotLogin(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handler.Identity().CreateSuperuser(context.Background(), "admin@x.com", "adminpass", service.UserFields{})
	require.NoError(t, err)
	staff := s.token("admin@x.com", "adminpass")

	w := s.do(http.MethodPost, "/admin/users", staff, gin.H{"email": "off@x.com", "password": "offpass", "is_active": false})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, decode[entity.UserSummary](t, w).IsActive)

	w = s.do(http.MethodPost, "/users/token", "", gin.H{"email": "off@x.com", "password": "offpass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "recipe_http_requests_total"))
}

func TestCustomTokenHeader(t *testing.T) {
	s := newTestServer(t)
	key := s.login("cook@x.com")

	s.handler.cfg.TokenHeader = "X-Auth-Token"
	router := s.handler.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("X-Auth-Token", "Token "+key)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Token "+key)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExtractTokenKey(t *testing.T) {
	key, ok := extractTokenKey("  Bearer abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", key)

	for _, value := range []string{"", "abc", "Basic abc", "Token a b"} {
		_, ok := extractTokenKey(value)
		assert.False(t, ok, value)
	}
}

func TestPasswordOverBcryptLimitIsRejected(t *testing.T) {
	s := newTestServer(t)
	long := strings.Repeat("p", 80)

	w := s.do(http.MethodPost, "/users/create", "", gin.H{"email": "long@x.com", "password": long})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	resp := decode[struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}](t, w)
	assert.Equal(t, ErrCodeValidation, resp.Code)
	assert.Contains(t, resp.Details, "password")

	key := s.login("me@x.com")
	w = s.do(http.MethodPatch, "/users/me", key, gin.H{"password": long})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, ErrCodeValidation, decode[APIError](t, w).Code)

	// 原密码仍然有效
	assert.Equal(t, key, s.token("me@x.com", "testpass123"))
}
