package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by the structured errors below. Controllers and
// middleware branch on these instead of matching message strings.
const (
	TextCodeNoToken             = "NO_TOKEN"
	TextCodeTokenExpired        = "TOKEN_EXPIRED"
	TextCodeTokenMalformed      = "TOKEN_MALFORMED"
	TextCodeInvalidCreds        = "INVALID_CREDENTIALS"
	TextCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	TextCodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	TextCodeSuperAdminImmutable = "SUPER_ADMIN_IMMUTABLE"
	TextCodeEmptyPassword       = "EMPTY_PASSWORD"
)

// ErrNoToken is returned when a request carries no bearer token at all, or
// the Authorization header does not use the Bearer scheme.
var ErrNoToken = goerrors.New(goerrors.CategoryAuth, "authorization header missing or not bearer").
	WithTextCode(TextCodeNoToken)

// ErrTokenExpired is a token whose signature verified but whose expiry has
// elapsed. Kept distinct from ErrTokenMalformed so callers can tell the two
// verification failures apart.
var ErrTokenExpired = goerrors.New(goerrors.CategoryAuth, "token is expired").
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers every non-expiry verification failure: bad
// signature, wrong algorithm, garbage input.
var ErrTokenMalformed = goerrors.New(goerrors.CategoryAuth, "token is malformed or has an invalid signature").
	WithTextCode(TextCodeTokenMalformed)

// ErrInvalidCredentials is returned for both an unknown email and a failed
// password comparison, so login never leaks which check failed.
var ErrInvalidCredentials = goerrors.New(goerrors.CategoryAuth, "the credentials provided are invalid").
	WithTextCode(TextCodeInvalidCreds)

// ErrDuplicateEmail signals a signup for an email that already has an account.
var ErrDuplicateEmail = goerrors.New(goerrors.CategoryConflict, "an account with this email already exists").
	WithTextCode(TextCodeDuplicateEmail)

// ErrAccountNotFound is the store's miss result for lookups and deletes.
var ErrAccountNotFound = goerrors.New(goerrors.CategoryNotFound, "account not found").
	WithTextCode(TextCodeAccountNotFound)

// ErrSuperAdminImmutable protects the root identity: superAdmin accounts can
// never be deleted through the HTTP surface.
var ErrSuperAdminImmutable = goerrors.New(goerrors.CategoryAuthz, "superAdmin accounts cannot be deleted").
	WithTextCode(TextCodeSuperAdminImmutable)

// ErrNoEmptyString rejects empty plaintext passwords before hashing.
var ErrNoEmptyString = goerrors.New(goerrors.CategoryValidation, "password must not be empty").
	WithTextCode(TextCodeEmptyPassword)

func hasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

// IsTokenExpired reports whether err is the expired-token verification failure.
func IsTokenExpired(err error) bool { return hasTextCode(err, TextCodeTokenExpired) }

// IsTokenMalformed reports whether err is any non-expiry verification failure.
func IsTokenMalformed(err error) bool { return hasTextCode(err, TextCodeTokenMalformed) }

// IsInvalidCredentials reports whether err is a login verification failure.
func IsInvalidCredentials(err error) bool { return hasTextCode(err, TextCodeInvalidCreds) }

// IsDuplicateEmail reports whether err is a unique-email violation.
func IsDuplicateEmail(err error) bool { return hasTextCode(err, TextCodeDuplicateEmail) }

// IsAccountNotFound reports whether err is a store miss.
func IsAccountNotFound(err error) bool { return hasTextCode(err, TextCodeAccountNotFound) }

// IsSuperAdminImmutable reports whether err is the protected-deletion failure.
func IsSuperAdminImmutable(err error) bool { return hasTextCode(err, TextCodeSuperAdminImmutable) }
