package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"github.com/xaabbigautam/Work-Tracker/internal/services"
)

func TestLoginAndResolve(t *testing.T) {
	db := newTestDB(t)
	auth := services.NewAuthService(db, testConfig())
	seedUser(t, db, "subash@teamlead.com", "Subash Rai", models.RoleTeam)

	user, token, err := auth.Login("subash@teamlead.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Name != "Subash Rai" || user.Role != models.RoleTeam {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	resolved, err := auth.Resolve(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Email != "subash@teamlead.com" {
		t.Fatalf("resolved wrong user: %s", resolved.Email)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	auth := services.NewAuthService(db, testConfig())
	seedUser(t, db, "victor@landscape.com", "Victor AM", models.RoleAdmin)

	if _, _, err := auth.Login("victor@landscape.com", "wrong"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, _, err := auth.Login("nobody@landscape.com", "secret"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	db := newTestDB(t)
	auth := services.NewAuthService(db, testConfig())
	user := seedUser(t, db, "gone@teamlead.com", "Gone User", models.RoleTeam)
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, _, err := auth.Login("gone@teamlead.com", "secret"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("inactive user: got %v", err)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	db := newTestDB(t)
	auth := services.NewAuthService(db, testConfig())
	seedUser(t, db, "james@landscape.com", "James Manager", models.RoleAdmin)

	_, token, err := auth.Login("james@landscape.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := auth.Logout(token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.Resolve(token); !errors.Is(err, services.ErrSessionNotFound) {
		t.Fatalf("resolve after logout: got %v", err)
	}

	// logging out an unknown token is not an error
	if err := auth.Logout("bogus"); err != nil {
		t.Fatalf("logout unknown token: %v", err)
	}
}

func TestResolveRejectsExpiredSession(t *testing.T) {
	db := newTestDB(t)
	auth := services.NewAuthService(db, testConfig())
	seedUser(t, db, "mike@landscape.com", "Mike AM", models.RoleAdmin)

	_, token, err := auth.Login("mike@landscape.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := db.Model(&models.Session{}).Where("1 = 1").
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("expire session: %v", err)
	}

	if _, err := auth.Resolve(token); !errors.Is(err, services.ErrSessionNotFound) {
		t.Fatalf("expired session: got %v", err)
	}

	var count int64
	db.Model(&models.Session{}).Count(&count)
	if count != 0 {
		t.Fatalf("expired session should be purged, %d left", count)
	}
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	auth := services.NewAuthService(db, testConfig())
	seedUser(t, db, "subash@teamlead.com", "Subash Rai", models.RoleTeam)
	seedUser(t, db, "victor@landscape.com", "Victor AM", models.RoleAdmin)
	inactive := seedUser(t, db, "gone@teamlead.com", "Gone User", models.RoleTeam)
	db.Model(inactive).Update("is_active", false)

	all, err := auth.ListUsers("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 active users, got %d", len(all))
	}

	team, err := auth.ListUsers(models.RoleTeam)
	if err != nil {
		t.Fatalf("list team: %v", err)
	}
	if len(team) != 1 || team[0].Email != "subash@teamlead.com" {
		t.Fatalf("unexpected team filter result: %+v", team)
	}
	// picker payload excludes credentials
	if team[0].Password != "" {
		t.Fatal("password must not be selected")
	}
}
