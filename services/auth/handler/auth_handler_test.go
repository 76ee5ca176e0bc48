package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/services/auth/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func performRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch v := body.(type) {
	case string:
		buf.WriteString(v)
	default:
		_ = json.NewEncoder(&buf).Encode(v)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Test SignupHandler
func TestSignupHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuthServiceInterface(ctrl)
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/signup", handler.SignupHandler)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name:        "success",
			requestBody: helpers.SignupRequest{Username: "alice", Password: "s3cret"},
			mockSetup: func() {
				mockService.EXPECT().Signup(gomock.Any(), "alice", "s3cret").Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   map[string]any{"message": "User signed up successfully"},
		},
		{
			name:        "duplicate_username_is_500",
			requestBody: helpers.SignupRequest{Username: "alice", Password: "s3cret"},
			mockSetup: func() {
				mockService.EXPECT().
					Signup(gomock.Any(), "alice", "s3cret").
					Return(auctionerrors.ErrUsernameTaken)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]any{"error": "Signup failed"},
		},
		{
			name:        "store_failure_is_500",
			requestBody: helpers.SignupRequest{Username: "alice", Password: "s3cret"},
			mockSetup: func() {
				mockService.EXPECT().
					Signup(gomock.Any(), "alice", "s3cret").
					Return(errors.New("store write failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]any{"error": "Signup failed"},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "invalid request payload"},
		},
		{
			name:           "missing_password",
			requestBody:    helpers.SignupRequest{Username: "alice"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "invalid request payload"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w := performRequest(router, http.MethodPost, "/signup", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedBody, decodeBody(t, w))
		})
	}
}

// Test SigninHandler
func TestSigninHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuthServiceInterface(ctrl)
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/signin", handler.SigninHandler)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		validate       func(t *testing.T, body map[string]any)
	}{
		{
			name:        "success_returns_token",
			requestBody: helpers.SigninRequest{Username: "alice", Password: "s3cret"},
			mockSetup: func() {
				mockService.EXPECT().
					Signin(gomock.Any(), "alice", "s3cret").
					Return("signed.jwt.token", nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				require.Equal(t, "Signin successful", body["message"])
				require.Equal(t, "signed.jwt.token", body["token"])
			},
		},
		{
			name:        "unknown_user_is_400",
			requestBody: helpers.SigninRequest{Username: "bob", Password: "s3cret"},
			mockSetup: func() {
				mockService.EXPECT().
					Signin(gomock.Any(), "bob", "s3cret").
					Return("", auctionerrors.ErrUserNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]any) {
				require.Equal(t, "User not found", body["error"])
			},
		},
		{
			name:        "wrong_password_is_401",
			requestBody: helpers.SigninRequest{Username: "alice", Password: "wrong"},
			mockSetup: func() {
				mockService.EXPECT().
					Signin(gomock.Any(), "alice", "wrong").
					Return("", auctionerrors.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			validate: func(t *testing.T, body map[string]any) {
				require.Equal(t, "Invalid credentials", body["error"])
			},
		},
		{
			name:        "other_failure_is_500",
			requestBody: helpers.SigninRequest{Username: "alice", Password: "s3cret"},
			mockSetup: func() {
				mockService.EXPECT().
					Signin(gomock.Any(), "alice", "s3cret").
					Return("", errors.New("store read failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, body map[string]any) {
				require.Equal(t, "Signin failed", body["error"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]any) {
				require.Equal(t, "invalid request payload", body["error"])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w := performRequest(router, http.MethodPost, "/signin", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			tc.validate(t, decodeBody(t, w))
		})
	}
}

// Test MeHandler
func TestMeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuthServiceInterface(ctrl)
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)

	t.Run("with_identity_in_context", func(t *testing.T) {
		router := gin.New()
		router.GET("/me", func(c *gin.Context) {
			c.Set("username", "alice")
		}, handler.MeHandler)

		w := performRequest(router, http.MethodGet, "/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "alice", decodeBody(t, w)["username"])
	})

	t.Run("without_identity_in_context", func(t *testing.T) {
		router := gin.New()
		router.GET("/me", handler.MeHandler)

		w := performRequest(router, http.MethodGet, "/me", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
