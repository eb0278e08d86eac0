package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app, _ := setupTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"full_name": "Test User",
				"email":     "test@example.com",
				"password":  "Password123",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"full_name": "Test User",
				"email":     "test@example.com",
				"password":  "Password123",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Weak password",
			body: map[string]string{
				"full_name": "Test User",
				"email":     "weak@example.com",
				"password":  "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"email": "incomplete@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/user/signup", tt.body, "")
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSignup_DefaultAvatar(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp, body := doJSON(t, app, http.MethodPost, "/user/signup", map[string]string{
		"full_name": "Ada Lovelace",
		"email":     "ada@example.com",
		"password":  "Password123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	user := body["user"].(map[string]any)
	assert.Equal(t, "/default.svg", user["profile_image_url"])
	assert.Equal(t, "USER", user["role"])
}

func TestSignin(t *testing.T) {
	_, app, _ := setupTestServer(t)
	signupUser(t, app, "Test User", "login@example.com")

	t.Run("success", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/user/signin", map[string]string{
			"email":    "login@example.com",
			"password": "Password123",
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
	})

	// Wrong password and unknown email must be indistinguishable.
	for _, tc := range []map[string]string{
		{"email": "login@example.com", "password": "WrongPass1"},
		{"email": "nobody@example.com", "password": "Password123"},
	} {
		resp, body := doJSON(t, app, http.MethodPost, "/user/signin", tc, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Incorrect Email or Password", body["error"])
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	_, app, _ := setupTestServer(t)
	token, _ := signupUser(t, app, "Test User", "logout@example.com")

	resp, _ := doJSON(t, app, http.MethodGet, "/user/profile", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/user/logout", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The same token must no longer authenticate.
	resp, _ = doJSON(t, app, http.MethodGet, "/user/profile", nil, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRevocationInfo_RejectsUnsignedToken(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"jti": "forged",
		"exp": float64(time.Now().Add(time.Hour).Unix()),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, ok := srv.revocationInfo(tokenString)
	assert.False(t, ok, "tokens without an HMAC signature must not yield revocation info")
}

func TestPasswordResetFlow(t *testing.T) {
	_, app, _ := setupTestServer(t)
	signupUser(t, app, "Test User", "reset@example.com")

	// Unknown email gets the same response shape, no token leaked.
	resp, body := doJSON(t, app, http.MethodPost, "/user/forgot-password", map[string]string{
		"email": "unknown@example.com",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "reset_token")

	resp, body = doJSON(t, app, http.MethodPost, "/user/forgot-password", map[string]string{
		"email": "reset@example.com",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resetToken, _ := body["reset_token"].(string)
	require.NotEmpty(t, resetToken)

	// Weak replacement password is rejected and the token survives.
	resp, _ = doJSON(t, app, http.MethodPost, "/user/reset-password/"+resetToken, map[string]string{
		"password": "short",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/user/reset-password/"+resetToken, map[string]string{
		"password": "NewPassword1",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The token is single use.
	resp, _ = doJSON(t, app, http.MethodPost, "/user/reset-password/"+resetToken, map[string]string{
		"password": "AnotherPass1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Old password is dead, new one works.
	resp, _ = doJSON(t, app, http.MethodPost, "/user/signin", map[string]string{
		"email":    "reset@example.com",
		"password": "Password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/user/signin", map[string]string{
		"email":    "reset@example.com",
		"password": "NewPassword1",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCurrentUser_GarbageTokenIsAnonymous(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/", nil, "not-a-jwt")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "a bad cookie never breaks public pages")

	resp, _ = doJSON(t, app, http.MethodGet, "/user/profile", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
