package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// AuthController exposes the account lifecycle operations over HTTP. Gate
// middleware is injected by the caller at registration time so this package
// never depends on the pipeline stages built on top of it.
type AuthController struct {
	Accounts Accounts
	Verifier *CredentialVerifier
	Tokens   *TokenService
	Logger   Logger
}

// NewAuthController wires the controller's collaborators.
func NewAuthController(accounts Accounts, tokens *TokenService, logger Logger) *AuthController {
	if logger == nil {
		logger = defLogger{}
	}
	return &AuthController{
		Accounts: accounts,
		Verifier: NewCredentialVerifier(accounts).WithLogger(logger),
		Tokens:   tokens,
		Logger:   logger,
	}
}

// RegisterRoutes mounts the /auth surface. protect must run before
// requireSuperAdmin: the gate reads the identity the authentication stage
// attaches.
func (a *AuthController) RegisterRoutes(app fiber.Router, protect, requireSuperAdmin fiber.Handler) {
	grp := app.Group("/auth")

	grp.Post("/signup", protect, requireSuperAdmin, a.Signup)
	grp.Post("/login", a.Login)
	grp.Get("/admins", protect, requireSuperAdmin, a.ListAdmins)
	grp.Delete("/:email", protect, requireSuperAdmin, a.Delete)
}

// SignupRequest is the signup payload. Any client-supplied role field is
// parsed and then ignored: signup can never mint another superAdmin.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Validate will validate the payload.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// Signup creates an admin account. Requires the superAdmin gate.
func (a *AuthController) Signup(c *fiber.Ctx) error {
	payload := new(SignupRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if _, err := a.Accounts.Create(c.UserContext(), payload.Email, payload.Password, RoleAdmin); err != nil {
		if IsDuplicateEmail(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
		}
		a.Logger.Error("signup failed to create account", "error", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
}

// LoginRequest is the login payload. Validation stays minimal on purpose: a
// malformed email must fall through to the uniform invalid-credentials
// response, not a distinguishable validation message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login verifies credentials and issues a token. Public route.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := payload.Validate(); err != nil {
		return invalidCredentials(c)
	}

	account, err := a.Verifier.VerifyCredentials(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if IsInvalidCredentials(err) {
			return invalidCredentials(c)
		}
		a.Logger.Error("login verification failed", "error", err)
		return serverError(c)
	}

	token, err := a.Tokens.Generate(account.ID.String(), account.Role)
	if err != nil {
		a.Logger.Error("login failed to issue token", "error", err)
		return serverError(c)
	}

	return c.JSON(fiber.Map{"token": token, "role": account.Role})
}

// Delete removes an admin account by email. The root identity is protected:
// a superAdmin account is never deletable through this path.
func (a *AuthController) Delete(c *fiber.Ctx) error {
	email := c.Params("email")

	account, err := a.Accounts.GetByEmail(c.UserContext(), email)
	if err != nil {
		if IsAccountNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		a.Logger.Error("delete failed to look up account", "error", err)
		return serverError(c)
	}

	if account.Role == RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}

	removed, err := a.Accounts.DeleteByEmail(c.UserContext(), email)
	if err != nil {
		a.Logger.Error("delete failed to remove account", "error", err)
		return serverError(c)
	}
	if !removed {
		// Raced with another delete between lookup and removal.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "User removed"})
}

// ListAdmins returns every admin-role account with hashes stripped.
func (a *AuthController) ListAdmins(c *fiber.Ctx) error {
	admins, err := a.Accounts.ListByRole(c.UserContext(), RoleAdmin)
	if err != nil {
		a.Logger.Error("failed to list admin accounts", "error", err)
		return serverError(c)
	}

	data := make([]*Account, 0, len(admins))
	for _, admin := range admins {
		data = append(data, admin.Sanitized())
	}

	return c.JSON(fiber.Map{"data": data})
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email or password"})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
}
