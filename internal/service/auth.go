package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/roamlog/roamlog/internal/model"
	"github.com/roamlog/roamlog/internal/repository"
	"github.com/roamlog/roamlog/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the httpOnly cookie carrying the bearer token. The
// Authorization header is the second delivery channel and wins when both
// are present.
const CookieName = "auth_token"

type AuthService struct {
	userRepository repository.UserRepository
	jwtSecret      string
	isProduction   bool
	jwtExpiry      time.Duration
}

func NewAuthService(userRepository repository.UserRepository, jwtSecret string, isProduction bool, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtSecret:      jwtSecret,
		isProduction:   isProduction,
		jwtExpiry:      jwtExpiry,
	}
}

// SignUp registers a new account. The password is stored only as a bcrypt
// hash. No token is issued; the caller signs in separately.
func (s *AuthService) SignUp(username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up", "user_id", user.ID, "email", email)
	return user, nil
}

// SignIn verifies the credentials and issues a signed token. An unknown
// email and a wrong password fail differently on purpose: the original
// system reports "user not found" for the former.
func (s *AuthService) SignIn(email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, "", missingFields(missing)
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("user signed in", "user_id", user.ID)
	return user, token, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateJWT signs a token carrying only the user id and an expiry.
func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT checks signature and expiry and returns the caller's user id.
// There is no server-side revocation: a token stays valid until it expires.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrUnauthenticated
	}

	return userID, nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenExpiry returns the expiry for tokens issued now.
func (s *AuthService) TokenExpiry() time.Time {
	return time.Now().Add(s.jwtExpiry)
}
