package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"lodge-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService checks front desk credentials and issues session tokens.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Session is what a successful login returns.
type Session struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

// Login verifies the password against the stored bcrypt hash. A legacy
// plaintext password is upgraded to a hash on first successful login.
func (s *AuthService) Login(username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validation("username", "username and password are required")
	}

	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validation("username", "invalid credentials")
		}
		return nil, err
	}

	valid := false
	if isBcryptHash(admin.Password) {
		valid = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) == nil
	} else if admin.Password != "" && admin.Password == password {
		valid = true
		if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
			s.DB.Model(&admin).Update("password", string(hash))
		}
	}
	if !valid {
		return nil, validation("password", "invalid credentials")
	}

	token, err := sessionToken(32)
	if err != nil {
		return nil, err
	}
	admin.Password = ""
	return &Session{Token: token, Admin: admin}, nil
}

func sessionToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
