package services

import (
	"errors"
	"time"

	"project_manager/internal/apperrors"
	"project_manager/internal/models"
	"project_manager/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordInput struct {
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResult struct {
	TokenPair
	User *models.User `json:"user"`
}

type Claims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	DepartmentID uint   `json:"department_id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(input LoginInput) (*AuthResult, error)
	Refresh(refreshToken string) (*AuthResult, error)
	ChangePassword(input ChangePasswordInput) error
}

type authService struct {
	userRepo   repository.UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Login(input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return s.issue(user)
}

func (s *authService) Refresh(refreshToken string) (*AuthResult, error) {
	claims, err := ParseToken(refreshToken, string(s.secret))
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid token")
	}
	return s.issue(user)
}

// ChangePassword verifies the current password before storing a new hash.
// An unknown email is a bad request rather than unauthorized; only a wrong
// current password is an authentication failure.
func (s *authService) ChangePassword(input ChangePasswordInput) error {
	user, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BadRequest("User not found")
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return apperrors.Unauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(user.ID, map[string]interface{}{"password": string(hash)})
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	access, err := s.sign(user, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		TokenPair: TokenPair{AccessToken: access, RefreshToken: refresh},
		User:      user,
	}, nil
}

func (s *authService) sign(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorized("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("Invalid token")
	}
	return claims, nil
}
