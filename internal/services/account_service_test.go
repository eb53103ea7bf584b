package services

import (
	"context"
	"testing"
	"time"

	"streaming-backend/internal/apperrors"
	"streaming-backend/internal/models"
	"streaming-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (AccountService, *TokenService, func() int64) {
	db := setupTestDB(t)
	tokens := NewTokenService("test-secret", time.Hour)
	service := NewAccountService(repository.NewUserRepository(db), tokens, testLogger())

	countUsers := func() int64 {
		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		return count
	}
	return service, tokens, countUsers
}

func TestAccountServiceRegister(t *testing.T) {
	service, _, countUsers := newAccountService(t)
	ctx := context.Background()

	valid := RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "hunter22",
		PasswordConfirm: "hunter22",
		FirstName:       "Alice",
	}

	t.Run("password mismatch writes nothing", func(t *testing.T) {
		input := valid
		input.PasswordConfirm = "different"
		_, err := service.Register(ctx, input)
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Passwords do not match", appErr.Message)
		assert.EqualValues(t, 0, countUsers())
	})

	t.Run("success creates user and profile", func(t *testing.T) {
		user, err := service.Register(ctx, valid)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.NotEqual(t, "hunter22", user.PasswordHash)
		assert.EqualValues(t, 1, countUsers())

		profile, err := service.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, profile.UserID)
		assert.Equal(t, "en", profile.PreferredLanguage)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		input := valid
		input.Email = "alice2@example.com"
		_, err := service.Register(ctx, input)
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Username is already taken", appErr.Message)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		input := valid
		input.Username = "alice2"
		_, err := service.Register(ctx, input)
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Email is already registered", appErr.Message)
	})
}

func TestAccountServiceLogin(t *testing.T) {
	service, tokens, _ := newAccountService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "hunter22",
		PasswordConfirm: "hunter22",
	})
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		token, user, err := service.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)

		userID, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("by email", func(t *testing.T) {
		_, user, err := service.Login(ctx, "alice@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password and unknown user share one message", func(t *testing.T) {
		_, _, badPassword := service.Login(ctx, "alice", "wrong")
		_, _, unknownUser := service.Login(ctx, "nobody", "hunter22")

		var appErr *apperrors.Error
		require.ErrorAs(t, badPassword, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, badPassword.Error(), unknownUser.Error())
	})
}

func TestAccountServiceUpdateProfile(t *testing.T) {
	service, _, _ := newAccountService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "hunter22",
		PasswordConfirm: "hunter22",
	})
	require.NoError(t, err)

	profile, err := service.UpdateProfile(ctx, user.ID, ProfileUpdateInput{
		DateOfBirth: strPtr("1994-07-21"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1994-07-21", profile.DateOfBirth)
	// Omitted fields keep their prior values.
	assert.Equal(t, "en", profile.PreferredLanguage)

	profile, err = service.UpdateProfile(ctx, user.ID, ProfileUpdateInput{
		PreferredLanguage: strPtr("fr"),
	})
	require.NoError(t, err)
	assert.Equal(t, "fr", profile.PreferredLanguage)
	assert.Equal(t, "1994-07-21", profile.DateOfBirth)
}

func TestTokenService(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	user := &models.User{Username: "alice"}
	user.ID = 7

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	userID, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, userID)

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		_, err := other.Parse(token)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.Error(t, err)
	})
}
