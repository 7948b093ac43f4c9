package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"jobtracker/internal/logger"
	"jobtracker/internal/middleware"
	"jobtracker/internal/models"
	"jobtracker/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Application{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.New("error", false)
	authHandler := NewAuthHandler(services.NewUserService(db), log)
	appHandler := NewApplicationHandler(services.NewApplicationService(db), log)

	r := gin.New()
	r.Use(sessions.Sessions("sid", cookie.NewStore([]byte("test-secret"))))

	r.GET("/health", HealthCheck)
	api := r.Group("/api")
	{
		api.GET("/db-health", DBHealth(db))
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authHandler.Me)
		}
		apps := api.Group("/applications", middleware.RequireAuth())
		{
			apps.GET("", appHandler.List)
			apps.POST("", appHandler.Create)
			apps.PUT("/:id", appHandler.Update)
			apps.DELETE("/:id", appHandler.Delete)
		}
	}
	return r
}

// do performs one request, carrying any session cookies from a previous
// response.
func do(t *testing.T, r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	if w := do(t, r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("GET /health = %d %q", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/api/db-health", "", nil); w.Code != http.StatusOK {
		t.Errorf("GET /api/db-health = %d", w.Code)
	}
}

func TestApplicationsRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	if w := do(t, r, http.MethodGet, "/api/applications", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated list = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/applications", `{"company":"Acme","title":"Dev","status":"Applied"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create = %d, want 401", w.Code)
	}
}

func TestAuthAndApplicationFlow(t *testing.T) {
	r := newTestRouter(t)

	// Anonymous /me reports a null user instead of failing.
	w := do(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"user":null`) {
		t.Fatalf("anonymous me = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/auth/register", `{"email":"Alex@Example.com","password":"hunter22"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d %s", w.Code, w.Body.String())
	}
	session := w.Result().Cookies()
	if len(session) == 0 {
		t.Fatalf("register set no session cookie")
	}

	// Duplicate email conflicts.
	if w = do(t, r, http.MethodPost, "/api/auth/register", `{"email":"alex@example.com","password":"other"}`, nil); w.Code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", w.Code)
	}

	// Create two applications.
	w = do(t, r, http.MethodPost, "/api/applications",
		`{"company":"Acme","title":"Backend Engineer","status":"Applied","applied_date":"2024-01-05"}`, session)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/api/applications",
		`{"company":"Globex","title":"SRE","status":"Interview"}`, session)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}

	// Validation: missing required fields.
	if w = do(t, r, http.MethodPost, "/api/applications", `{"company":"NoTitle"}`, session); w.Code != http.StatusBadRequest {
		t.Errorf("invalid create = %d, want 400", w.Code)
	}
	// Validation: status outside the enum.
	if w = do(t, r, http.MethodPost, "/api/applications", `{"company":"Acme","title":"Dev","status":"Ghosted"}`, session); w.Code != http.StatusBadRequest {
		t.Errorf("bad status create = %d, want 400", w.Code)
	}

	// Default listing: applied date desc, nulls last.
	w = do(t, r, http.MethodGet, "/api/applications", "", session)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}
	var apps []models.Application
	if err := json.Unmarshal(w.Body.Bytes(), &apps); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(apps) != 2 || apps[0].Company != "Acme" || apps[1].Company != "Globex" {
		t.Fatalf("list order = %+v, want [Acme Globex]", apps)
	}

	// Priority pill floats Interview above the base sort.
	w = do(t, r, http.MethodGet, "/api/applications?priority=Interview", "", session)
	if err := json.Unmarshal(w.Body.Bytes(), &apps); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(apps) != 2 || apps[0].Company != "Globex" {
		t.Fatalf("priority list order = %+v, want Globex first", apps)
	}

	// Update replaces fields wholesale.
	id := apps[0].ID
	w = do(t, r, http.MethodPut, "/api/applications/"+itoa(id),
		`{"company":"Globex","title":"Senior SRE","status":"Offer"}`, session)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"Senior SRE"`) {
		t.Fatalf("update = %d %s", w.Code, w.Body.String())
	}

	// Unknown id is not found, as is a malformed one.
	if w = do(t, r, http.MethodPut, "/api/applications/9999",
		`{"company":"X","title":"Y","status":"Saved"}`, session); w.Code != http.StatusNotFound {
		t.Errorf("update missing = %d, want 404", w.Code)
	}
	if w = do(t, r, http.MethodDelete, "/api/applications/not-a-number", "", session); w.Code != http.StatusNotFound {
		t.Errorf("delete malformed id = %d, want 404", w.Code)
	}

	if w = do(t, r, http.MethodDelete, "/api/applications/"+itoa(id), "", session); w.Code != http.StatusOK {
		t.Fatalf("delete = %d %s", w.Code, w.Body.String())
	}

	// Logout invalidates the session.
	w = do(t, r, http.MethodPost, "/api/auth/logout", "", session)
	if w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}
	cleared := w.Result().Cookies()
	if w = do(t, r, http.MethodGet, "/api/applications", "", cleared); w.Code != http.StatusUnauthorized {
		t.Errorf("list after logout = %d, want 401", w.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := newTestRouter(t)

	if w := do(t, r, http.MethodPost, "/api/auth/register", `{"email":"a@b.c","password":"pw123456"}`, nil); w.Code != http.StatusCreated {
		t.Fatalf("register = %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"wrong"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad password login = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/auth/login", `{"email":"missing@b.c","password":"pw123456"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unknown email login = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"pw123456"}`, nil); w.Code != http.StatusOK {
		t.Errorf("valid login = %d, want 200", w.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
