// Package token inspects the bearer tokens issued by the library backend.
//
// The backend signs JWTs server-side; the client never holds the signing key,
// so this package performs an unverified decode of the payload segment only.
// It exists to answer two questions without a network round-trip: who does the
// stored token claim to be, and is it already expired.
//
// Expiry checks fail closed: a token that cannot be decoded, or whose payload
// carries no `exp` claim, is treated as expired.
//
// Example:
//
//	claims, err := token.Decode(raw)
//	if err != nil {
//	    // errors.Is(err, token.ErrMalformedToken)
//	}
//	if token.IsExpired(raw) {
//	    // force re-authentication
//	}
package token
