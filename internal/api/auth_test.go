package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psmolich79/healthy-meal/internal/service"
)

func TestSignUp(t *testing.T) {
	t.Run("returns a token", func(t *testing.T) {
		engine := newTestRouter(newFixtures())
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/signup",
			`{"email": "a@example.com", "password": "password123"}`, false)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "good-token", decodeBody(t, w)["token"])
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		engine := newTestRouter(newFixtures())
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/signup",
			`{"email": "not-an-email", "password": "password123"}`, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		engine := newTestRouter(newFixtures())
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/signup",
			`{"email": "a@example.com", "password": "short"}`, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps taken email to conflict", func(t *testing.T) {
		f := newFixtures()
		f.auth.registerErr = service.ErrEmailTaken
		engine := newTestRouter(f)
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/signup",
			`{"email": "a@example.com", "password": "password123"}`, false)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSignIn(t *testing.T) {
	t.Run("returns a token", func(t *testing.T) {
		engine := newTestRouter(newFixtures())
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/signin",
			`{"email": "a@example.com", "password": "password123"}`, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "good-token", decodeBody(t, w)["token"])
	})

	t.Run("maps bad credentials to unauthorized", func(t *testing.T) {
		f := newFixtures()
		f.auth.loginErr = service.ErrInvalidCredentials
		engine := newTestRouter(f)
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/signin",
			`{"email": "a@example.com", "password": "password123"}`, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthRequired(t *testing.T) {
	engine := newTestRouter(newFixtures())

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/recipes"},
		{http.MethodPost, "/api/v1/recipes/generate"},
		{http.MethodGet, "/api/v1/profiles/me"},
		{http.MethodGet, "/api/v1/ai/usage"},
	}

	for _, route := range protected {
		w := doRequest(t, engine, route.method, route.path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}
