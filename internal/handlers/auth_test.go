package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupValidation(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/signup", gin.H{"username": "alice"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/signup", gin.H{
		"username": "alice", "email": "not-an-email", "password": "hunter22",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/signup", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupDuplicate(t *testing.T) {
	r := setupServer(t)
	signup(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/signup", gin.H{
		"username": "alice", "email": "alice2@example.com", "password": "hunter22",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginAndLogout(t *testing.T) {
	r := setupServer(t)
	signup(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "alice@example.com", "password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "alice@example.com", "password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// the session works for protected routes
	w = doJSON(t, r, http.MethodPost, "/api/subs", gin.H{"title": "golang"}, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)

	// logout drops the session
	w = doJSON(t, r, http.MethodGet, "/api/logout", nil, cookies)
	require.Equal(t, http.StatusNoContent, w.Code)
	loggedOut := w.Result().Cookies()

	w = doJSON(t, r, http.MethodPost, "/api/subs", gin.H{"title": "another"}, loggedOut)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPasswordNeverSerialized(t *testing.T) {
	r := setupServer(t)
	signup(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/users/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	_, present := user["password"]
	assert.False(t, present)
}
