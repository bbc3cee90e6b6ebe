package handler

import (
	"net/http"
	"testing"

	"blogring/backend/internal/database"
	"blogring/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser(t *testing.T) {
	router := setupTest(t)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "",
		RegisterInput{LoginID: "alice", Password: "password123"})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody[map[string]string](t, recorder)
	assert.NotEmpty(t, body["token"])

	// The profile is created alongside the account, with derived defaults.
	var profile models.Profile
	require.NoError(t, database.DB.
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.login_id = ?", "alice").
		First(&profile).Error)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice's blog", profile.BlogName)
	assert.Equal(t, "alice", profile.URLName)
	assert.Equal(t, models.DefaultBlogPic, profile.BlogPic)
	assert.Equal(t, models.DefaultUserPic, profile.UserPic)
	assert.True(t, profile.NeighborVisibility)
}

func TestRegisterUserDuplicateLoginID(t *testing.T) {
	router := setupTest(t)

	first := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "",
		RegisterInput{LoginID: "alice", Password: "password123"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "",
		RegisterInput{LoginID: "alice", Password: "different456"})
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestLoginUser(t *testing.T) {
	router := setupTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, database.DB.Create(&models.User{LoginID: "alice", PasswordHash: string(hash)}).Error)

	t.Run("valid credentials", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "",
			LoginInput{LoginID: "alice", Password: "password123"})
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "",
			LoginInput{LoginID: "alice", Password: "nope12345"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "",
			LoginInput{LoginID: "nobody", Password: "password123"})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
