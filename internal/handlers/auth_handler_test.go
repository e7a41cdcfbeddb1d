package handlers_test

import (
	"net/http"
	"testing"

	"github.com/xaabbigautam/Work-Tracker/internal/dto"
	"github.com/xaabbigautam/Work-Tracker/internal/models"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp := app.request(t, http.MethodGet, "/api/health", nil, nil)
	wantStatus(t, resp, http.StatusOK)

	var body dto.HealthResponse
	decodeBody(t, resp, &body)
	if body.Status != "ok" || body.DB != "ok" {
		t.Errorf("health body = %+v", body)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "subash@teamlead.com", "Subash Rai", models.RoleTeam)

	resp := app.request(t, http.MethodPost, "/api/login",
		map[string]string{"email": "subash@teamlead.com", "password": "secret"}, nil)
	wantStatus(t, resp, http.StatusOK)

	var login dto.LoginResponse
	decodeBody(t, resp, &login)
	if !login.Success || login.User.Email != "subash@teamlead.com" || login.User.Role != models.RoleTeam {
		t.Errorf("login body = %+v", login)
	}

	cookie := app.login(t, "subash@teamlead.com")

	resp = app.request(t, http.MethodGet, "/api/session", nil, cookie)
	wantStatus(t, resp, http.StatusOK)
	var session dto.SessionResponse
	decodeBody(t, resp, &session)
	if !session.LoggedIn || session.User == nil || session.User.Email != "subash@teamlead.com" {
		t.Errorf("session body = %+v", session)
	}

	resp = app.request(t, http.MethodPost, "/api/logout", nil, cookie)
	wantStatus(t, resp, http.StatusOK)

	// the old token no longer resolves
	resp = app.request(t, http.MethodGet, "/api/session", nil, cookie)
	decodeBody(t, resp, &session)
	if session.LoggedIn {
		t.Error("session should be destroyed after logout")
	}
}

func TestLoginRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "subash@teamlead.com", "Subash Rai", models.RoleTeam)

	resp := app.request(t, http.MethodPost, "/api/login",
		map[string]string{"email": "subash@teamlead.com"}, nil)
	wantStatus(t, resp, http.StatusBadRequest)

	resp = app.request(t, http.MethodPost, "/api/login",
		map[string]string{"email": "subash@teamlead.com", "password": "wrong"}, nil)
	wantStatus(t, resp, http.StatusUnauthorized)
	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	if body.Error != "Invalid credentials" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestSessionWithoutCookie(t *testing.T) {
	app := newTestApp(t)

	resp := app.request(t, http.MethodGet, "/api/session", nil, nil)
	wantStatus(t, resp, http.StatusOK)

	var session dto.SessionResponse
	decodeBody(t, resp, &session)
	if session.LoggedIn || session.User != nil {
		t.Errorf("session body = %+v", session)
	}
}

func TestListUsers(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "subash@teamlead.com", "Subash Rai", models.RoleTeam)
	app.seedUser(t, "victor@landscape.com", "Victor AM", models.RoleAdmin)
	cookie := app.login(t, "victor@landscape.com")

	resp := app.request(t, http.MethodGet, "/api/tasks/users?role=team", nil, cookie)
	wantStatus(t, resp, http.StatusOK)

	var users []models.User
	decodeBody(t, resp, &users)
	if len(users) != 1 || users[0].Name != "Subash Rai" {
		t.Errorf("users = %+v", users)
	}
}
