// Package auth owns the administrative account layer of the roster service:
// credential storage with hash-on-write, stateless JWT issuance and
// verification, and the account lifecycle operations (signup, login, delete,
// list) exposed over HTTP.
//
// Role escalation:
//   - Accounts carry a Role drawn from a closed, totally ordered enumeration
//     (superAdmin > admin). Gate middleware in middleware/authware compares
//     ranks through Role.IsAtLeast so the escalation check stays exhaustive.
//   - Signup always mints admin accounts. The only superAdmin is seeded at
//     startup through EnsureSuperAdmin and can never be deleted over HTTP.
//
// Tokens:
//   - TokenService signs HS256 tokens with a process-wide secret and a fixed
//     TTL, both injected at construction. No token is persisted; validity is
//     a function of signature and expiry alone, so rotating the secret
//     invalidates every outstanding token.
package auth
