package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/xaabbigautam/Work-Tracker/internal/config"
	"github.com/xaabbigautam/Work-Tracker/internal/database"
	"github.com/xaabbigautam/Work-Tracker/internal/handlers"
	"github.com/xaabbigautam/Work-Tracker/internal/middleware"
	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"github.com/xaabbigautam/Work-Tracker/internal/routes"
	"github.com/xaabbigautam/Work-Tracker/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	App *fiber.App
	DB  *gorm.DB
}

// newTestApp wires the full HTTP surface against a throwaway sqlite file,
// same route table as production.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tracker.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := config.Load()

	authService := services.NewAuthService(db, cfg)
	activityService := services.NewActivityService(db)
	taskService := services.NewTaskService(db, activityService)
	exportService := services.NewExportService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	taskHandler := handlers.NewTaskHandler(taskService, activityService, exportService)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New()
	routes.Setup(app, cfg, authService, authHandler, taskHandler, healthHandler)

	return &testApp{App: app, DB: db}
}

func (a *testApp) seedUser(t *testing.T, email, name string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Email: email, Name: name, Password: string(hash), Role: role, IsActive: true}
	if err := a.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return &user
}

// login authenticates through the real endpoint and returns the session
// cookie to attach to subsequent requests.
func (a *testApp) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	resp := a.request(t, http.MethodPost, "/api/login",
		map[string]string{"email": email, "password": "secret"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	for _, cookie := range readCookies(resp) {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatalf("login %s: no session cookie set", email)
	return nil
}

func (a *testApp) request(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := a.App.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func readCookies(resp *http.Response) []*http.Cookie {
	return resp.Cookies()
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

func taskPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/tasks/%d%s", id, suffix)
}
