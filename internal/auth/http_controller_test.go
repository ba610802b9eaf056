package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/auth"
	"github.com/rosterhq/roster/internal/logging"
	"github.com/rosterhq/roster/internal/middleware/authware"
)

type authEnv struct {
	app       *fiber.App
	repo      auth.Accounts
	tokens    *auth.TokenService
	rootToken string
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	repo := auth.NewAccountsRepository(setupDB(t))
	tokens := auth.NewTokenService([]byte("test-secret"), 24, nil)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	app := fiber.New()
	protect := authware.Protect(tokens, repo, logger)
	controller := auth.NewAuthController(repo, tokens, logger)
	controller.RegisterRoutes(app, protect, authware.RequireSuperAdmin())

	root, err := repo.EnsureSuperAdmin(context.Background(), "root@example.com", "root-password-1")
	require.NoError(t, err)

	rootToken, err := tokens.Generate(root.ID.String(), root.Role)
	require.NoError(t, err)

	return &authEnv{app: app, repo: repo, tokens: tokens, rootToken: rootToken}
}

func (e *authEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestSignup(t *testing.T) {
	env := newAuthEnv(t)

	t.Run("superAdmin can create an admin account", func(t *testing.T) {
		res := env.do(t, "POST", "/auth/signup", env.rootToken, map[string]any{
			"email":    "new-admin@example.com",
			"password": "admin-password-1",
		})
		assert.Equal(t, fiber.StatusCreated, res.StatusCode)
		assert.Equal(t, "User created successfully", decodeBody(t, res)["message"])

		created, err := env.repo.GetByEmail(context.Background(), "new-admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, created.Role)
	})

	t.Run("client-supplied role is ignored", func(t *testing.T) {
		res := env.do(t, "POST", "/auth/signup", env.rootToken, map[string]any{
			"email":    "sneaky@example.com",
			"password": "admin-password-1",
			"role":     "superAdmin",
		})
		assert.Equal(t, fiber.StatusCreated, res.StatusCode)

		created, err := env.repo.GetByEmail(context.Background(), "sneaky@example.com")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, created.Role)
	})

	t.Run("duplicate email is rejected without touching the account", func(t *testing.T) {
		before, err := env.repo.GetByEmail(context.Background(), "new-admin@example.com")
		require.NoError(t, err)

		res := env.do(t, "POST", "/auth/signup", env.rootToken, map[string]any{
			"email":    "new-admin@example.com",
			"password": "different-password",
		})
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "User already exists", decodeBody(t, res)["message"])

		after, err := env.repo.GetByEmail(context.Background(), "new-admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, before.PasswordHash, after.PasswordHash)
	})

	t.Run("requires a token", func(t *testing.T) {
		res := env.do(t, "POST", "/auth/signup", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "admin-password-1",
		})
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Not authorized, no token", decodeBody(t, res)["message"])
	})

	t.Run("admin rank is not enough", func(t *testing.T) {
		admin, err := env.repo.GetByEmail(context.Background(), "new-admin@example.com")
		require.NoError(t, err)

		adminToken, err := env.tokens.Generate(admin.ID.String(), admin.Role)
		require.NoError(t, err)

		res := env.do(t, "POST", "/auth/signup", adminToken, map[string]any{
			"email":    "nobody@example.com",
			"password": "admin-password-1",
		})
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
		assert.Equal(t, "Not authorized as superAdmin", decodeBody(t, res)["message"])
	})
}

func TestLogin(t *testing.T) {
	env := newAuthEnv(t)

	res := env.do(t, "POST", "/auth/signup", env.rootToken, map[string]any{
		"email":    "admin@example.com",
		"password": "admin-password-1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	t.Run("valid credentials return a token and the role", func(t *testing.T) {
		res := env.do(t, "POST", "/auth/login", "", map[string]any{
			"email":    "admin@example.com",
			"password": "admin-password-1",
		})
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "admin", body["role"])
		require.NotEmpty(t, body["token"])

		claims, err := env.tokens.Validate(body["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, claims.Role())
	})

	t.Run("unknown email and wrong password return the same response", func(t *testing.T) {
		resUnknown := env.do(t, "POST", "/auth/login", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "admin-password-1",
		})
		resWrongPass := env.do(t, "POST", "/auth/login", "", map[string]any{
			"email":    "admin@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, fiber.StatusBadRequest, resUnknown.StatusCode)
		assert.Equal(t, fiber.StatusBadRequest, resWrongPass.StatusCode)

		bodyUnknown := decodeBody(t, resUnknown)
		bodyWrongPass := decodeBody(t, resWrongPass)
		assert.Equal(t, "Invalid email or password", bodyUnknown["message"])
		assert.Equal(t, bodyUnknown, bodyWrongPass)
	})
}

func TestDeleteAdmin(t *testing.T) {
	env := newAuthEnv(t)

	res := env.do(t, "POST", "/auth/signup", env.rootToken, map[string]any{
		"email":    "doomed@example.com",
		"password": "admin-password-1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	t.Run("unknown email is a 404", func(t *testing.T) {
		res := env.do(t, "DELETE", "/auth/nobody@example.com", env.rootToken, nil)
		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
		assert.Equal(t, "User not found", decodeBody(t, res)["message"])
	})

	t.Run("superAdmin account cannot be deleted", func(t *testing.T) {
		res := env.do(t, "DELETE", "/auth/root@example.com", env.rootToken, nil)
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
		assert.Equal(t, "Forbidden", decodeBody(t, res)["message"])

		// Still present afterwards.
		_, err := env.repo.GetByEmail(context.Background(), "root@example.com")
		assert.NoError(t, err)
	})

	t.Run("admin account is removed", func(t *testing.T) {
		res := env.do(t, "DELETE", "/auth/doomed@example.com", env.rootToken, nil)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "User removed", decodeBody(t, res)["message"])

		_, err := env.repo.GetByEmail(context.Background(), "doomed@example.com")
		assert.True(t, auth.IsAccountNotFound(err))
	})
}

func TestListAdmins(t *testing.T) {
	env := newAuthEnv(t)

	for _, email := range []string{"one@example.com", "two@example.com"} {
		res := env.do(t, "POST", "/auth/signup", env.rootToken, map[string]any{
			"email":    email,
			"password": "admin-password-1",
		})
		require.Equal(t, fiber.StatusCreated, res.StatusCode)
	}

	res := env.do(t, "GET", "/auth/admins", env.rootToken, nil)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()

	// Hashes never cross the boundary.
	assert.NotContains(t, string(raw), "password")

	var body struct {
		Data []*auth.Account `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Data, 2)
	for _, account := range body.Data {
		assert.Equal(t, auth.RoleAdmin, account.Role)
		assert.Empty(t, account.PasswordHash)
	}
}
