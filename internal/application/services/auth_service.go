package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/pkg/config"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

// Claims is the JWT payload: the user id travels as the subject, the
// role is the sole authorization signal.
type Claims struct {
	Role entities.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and token verification
type AuthService struct {
	repo repositories.UserRepository
	cfg  *config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(repo repositories.UserRepository, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		repo: repo,
		cfg:  cfg,
	}
}

// RegisterInput carries the sign-up fields. AccountType selects the
// starting role: "negocio" registers a business owner, anything else a
// plain client. Premium is never granted at registration.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	AccountType string `json:"account_type"`
}

// Register creates a new account and returns it with a fresh token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperrors.NewValidationError("a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, "", apperrors.NewValidationError("password must be at least 8 characters")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, "", apperrors.NewValidationError("full name is required")
	}

	role := entities.RoleCliente
	if input.AccountType == "negocio" {
		role = entities.RoleNegocioGratis
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: string(hash),
		Role:         role,
		Phone:        input.Phone,
		City:         input.City,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login checks credentials and returns the user with a fresh token.
// Unknown email and wrong password produce the same error so the
// endpoint does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Profile re-derives the account from a token subject. The stored
// record wins over the token claims, so role changes apply on the next
// request without re-login.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entities.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// VerifyToken parses and validates a bearer token
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issueToken(user *entities.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.TokenTTLHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}

	return signed, nil
}
