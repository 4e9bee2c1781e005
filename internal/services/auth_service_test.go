package services

import (
	"testing"
	"time"

	"project_manager/internal/apperrors"
	"project_manager/internal/models"
	"project_manager/internal/repository"
	"project_manager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (AuthService, *models.User) {
	t.Helper()

	db := testutil.NewTestDB(t, &models.User{})
	userRepo := repository.NewUserRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		Username: "lead",
		FullName: "Team Lead",
		Email:    "lead@example.com",
		Password: string(hash),
		Role:     string(models.RoleTeamLead),
	}
	require.NoError(t, db.Create(&user).Error)

	svc := NewAuthService(userRepo, testSecret, time.Hour, 24*time.Hour)
	return svc, &user
}

func TestLogin(t *testing.T) {
	svc, user := newAuthFixture(t)

	result, err := svc.Login(LoginInput{Email: "lead@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := ParseToken(result.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(models.RoleTeamLead), claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(LoginInput{Email: "lead@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestRefresh(t *testing.T) {
	svc, user := newAuthFixture(t)

	login, err := svc.Login(LoginInput{Email: "lead@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.ChangePassword(ChangePasswordInput{
		Email:           "lead@example.com",
		CurrentPassword: "hunter2hunter2",
		NewPassword:     "correcthorsebattery",
	})
	require.NoError(t, err)

	// The old password no longer works, the new one does.
	_, err = svc.Login(LoginInput{Email: "lead@example.com", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	_, err = svc.Login(LoginInput{Email: "lead@example.com", Password: "correcthorsebattery"})
	require.NoError(t, err)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.ChangePassword(ChangePasswordInput{
		Email:           "lead@example.com",
		CurrentPassword: "wrong",
		NewPassword:     "correcthorsebattery",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	// The stored password is untouched.
	_, err = svc.Login(LoginInput{Email: "lead@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
}

func TestChangePassword_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.ChangePassword(ChangePasswordInput{
		Email:           "nobody@example.com",
		CurrentPassword: "whatever",
		NewPassword:     "correcthorsebattery",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
}

func TestParseToken_WrongSecret(t *testing.T) {
	svc, _ := newAuthFixture(t)

	login, err := svc.Login(LoginInput{Email: "lead@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = ParseToken(login.AccessToken, "other-secret")
	require.Error(t, err)
}
