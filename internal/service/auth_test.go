package service_test

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/roamlog/roamlog/internal/db"
	"github.com/roamlog/roamlog/internal/repository"
	"github.com/roamlog/roamlog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

func newAuthService(t *testing.T, expiry time.Duration) (*service.AuthService, repository.UserRepository) {
	t.Helper()

	users := repository.NewUserRepository(newTestDB(t))
	return service.NewAuthService(users, "test-secret", false, expiry), users
}

func TestAuthService_SignUp(t *testing.T) {
	auth, users := newAuthService(t, time.Hour)

	user, err := auth.SignUp("ana", "ana@example.com", "wanderlust")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)

	// Password is stored only as a hash.
	stored, err := users.ByEmail("ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "wanderlust", stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword("wanderlust", stored.PasswordHash))
}

func TestAuthService_SignUpMissingFields(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)

	_, err := auth.SignUp("", "", "pw")
	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "username")
	assert.Contains(t, validationErr.Message, "email")
}

func TestAuthService_SignUpDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)

	_, err := auth.SignUp("ana", "ana@example.com", "wanderlust")
	require.NoError(t, err)

	_, err = auth.SignUp("other", "ana@example.com", "different")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestAuthService_SignIn(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)

	_, err := auth.SignUp("ana", "ana@example.com", "wanderlust")
	require.NoError(t, err)

	user, token, err := auth.SignIn("ana@example.com", "wanderlust")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_SignInUnknownEmail(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)

	_, _, err := auth.SignIn("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestAuthService_SignInWrongPassword(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)

	_, err := auth.SignUp("ana", "ana@example.com", "wanderlust")
	require.NoError(t, err)

	_, _, err = auth.SignIn("ana@example.com", "not-it")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_VerifyJWTExpired(t *testing.T) {
	auth, _ := newAuthService(t, -time.Minute)

	user, err := auth.SignUp("ana", "ana@example.com", "wanderlust")
	require.NoError(t, err)

	token, err := auth.GenerateJWT(user)
	require.NoError(t, err)

	_, err = auth.VerifyJWT(token)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestAuthService_VerifyJWTWrongSecret(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)
	other := service.NewAuthService(nil, "other-secret", false, time.Hour)

	user, err := auth.SignUp("ana", "ana@example.com", "wanderlust")
	require.NoError(t, err)

	token, err := other.GenerateJWT(user)
	require.NoError(t, err)

	_, err = auth.VerifyJWT(token)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestAuthService_VerifyJWTGarbage(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)

	_, err := auth.VerifyJWT("not-a-token")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestAuthService_CookieLifecycle(t *testing.T) {
	auth, _ := newAuthService(t, time.Hour)

	rec := httptest.NewRecorder()
	auth.SetJWTCookie(rec, "token-value", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, service.CookieName, cookies[0].Name)
	assert.Equal(t, "token-value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	auth.ClearJWTCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}
