package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xaabbigautam/Work-Tracker/internal/config"
	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// AuthService is the credential store and session gate: it verifies
// passwords, issues and resolves session tokens, and lists accounts for
// assignment pickers.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login verifies the credentials against the active account with that email
// and opens a session. It returns the user and the raw session token; only
// the token's hash is stored. Lookup misses and bad passwords are both
// reported as ErrInvalidCredentials so callers cannot probe for accounts.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	session := models.Session{
		UserEmail: user.Email,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}

	return &user, token, nil
}

// Resolve maps a session token back to its user. Expired sessions are
// purged on sight.
func (s *AuthService) Resolve(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session models.Session
	if err := s.db.Where("token_hash = ?", hashToken(token)).First(&session).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		s.db.Delete(&session)
		return nil, ErrSessionNotFound
	}

	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", session.UserEmail, true).First(&user).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	return &user, nil
}

// Logout destroys the session for the given token. Unknown tokens are not
// an error: the caller ends up logged out either way.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.db.Where("token_hash = ?", hashToken(token)).Delete(&models.Session{}).Error
}

// ListUsers returns active accounts, optionally filtered by role. Only the
// fields the assignment picker needs are selected.
func (s *AuthService) ListUsers(role models.Role) ([]models.User, error) {
	q := s.db.Model(&models.User{}).
		Select("email", "name", "role", "department").
		Where("is_active = ?", true)
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
