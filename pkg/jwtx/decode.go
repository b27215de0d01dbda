package jwtx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

var parser = jwt.NewParser()

// Decode reads the claims segment of a bearer token without checking its
// signature. The signing key lives on the server, so the result is only good
// for display and expiry decisions; the server stays the authority on every
// request.
//
// Decode does not check expiry; call ValidateExpiryAt on the result.
func Decode(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrMalformed
	}

	var claims Claims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidClaim)
	}

	return claims, nil
}

// IsDecodeError reports whether err came from Decode or expiry validation.
// Callers treat all of these as "no valid session".
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrNotYetValid) ||
		errors.Is(err, ErrInvalidClaim)
}
