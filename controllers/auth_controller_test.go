package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")
	require.NotZero(t, u.ID)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "pass1234!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, w, &data)
	require.NotEmpty(t, data.Token)
	require.Equal(t, "alice", data.User.Username)
	require.Equal(t, "USER", data.User.Role)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name     string
		username string
		password string
		status   int
	}{
		{"username too short", "abc", "pass1234!", http.StatusBadRequest},
		{"username too long", "abcdefghijk", "pass1234!", http.StatusBadRequest},
		{"username with symbol", "ali_ce", "pass1234!", http.StatusBadRequest},
		{"password too short", "bob1", "p1!", http.StatusBadRequest},
		{"password without special", "bob1", "pass1234", http.StatusBadRequest},
		{"password without digit", "bob1", "password!", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
				"username": tc.username,
				"password": tc.password,
			})
			require.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := newTestRouter(t)

	registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"password": "pass1234!",
	})
	requireError(t, w, http.StatusConflict, 40902)
}

func TestRegisterAdminCode(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":   "admin1",
		"password":   "pass1234!",
		"admin_code": testAdminCode,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, w, &data)
	require.Equal(t, "ADMIN", data.User.Role)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":   "admin2",
		"password":   "pass1234!",
		"admin_code": "wrong-code",
	})
	requireError(t, w, http.StatusForbidden, 40310)
}

func TestLoginBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong999!",
	})
	requireError(t, w, http.StatusUnauthorized, 40106)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "pass1234!",
	})
	requireError(t, w, http.StatusUnauthorized, 40106)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", u.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decodeData(t, w, &data)
	require.Equal(t, u.ID, data.ID)
	require.Equal(t, "alice", data.Username)
	require.Equal(t, "USER", data.Role)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := newTestRouter(t)

	u := registerUser(t, r, "alice", "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", u.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", u.Token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/posts", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
}
