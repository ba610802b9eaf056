package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// CredentialVerifier resolves an email/password pair to an account. Both an
// unknown email and a failed comparison collapse into ErrInvalidCredentials
// so callers cannot tell which check failed.
type CredentialVerifier struct {
	store  Accounts
	logger Logger
}

// NewCredentialVerifier will create a new CredentialVerifier.
func NewCredentialVerifier(store Accounts) *CredentialVerifier {
	return &CredentialVerifier{
		store:  store,
		logger: defLogger{},
	}
}

// WithLogger overrides the verifier's logger.
func (v *CredentialVerifier) WithLogger(l Logger) *CredentialVerifier {
	if l != nil {
		v.logger = l
	}
	return v
}

// VerifyCredentials finds the account by email and compares the password
// against the stored hash.
func (v *CredentialVerifier) VerifyCredentials(ctx context.Context, email, password string) (*Account, error) {
	account, err := v.store.GetByEmail(ctx, email)
	if err != nil {
		if IsAccountNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during verification")
	}

	if err := ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		if IsInvalidCredentials(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return account, nil
}
