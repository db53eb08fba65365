package api

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

// Auth verifies dashboard bearer tokens and resolves the owner they
// belong to. Tokens are HS256 with the owner id in the "sub" claim.
type Auth struct {
	tokenAuth *jwtauth.JWTAuth
}

// NewAuth creates an Auth verifying tokens signed with the given secret
func NewAuth(secret []byte) *Auth {
	return &Auth{tokenAuth: jwtauth.New("HS256", secret, nil)}
}

// Verifier returns middleware that extracts and verifies the token
func (a *Auth) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(a.tokenAuth)
}

// Authenticator returns middleware that rejects requests without a valid token
func (a *Auth) Authenticator() func(http.Handler) http.Handler {
	return jwtauth.Authenticator
}

// IssueToken signs a token for the given owner, for tooling and tests
func (a *Auth) IssueToken(ownerID uuid.UUID, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"sub": ownerID.String(),
		"iat": time.Now().Unix(),
	}
	if ttl > 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}
	_, tokenString, err := a.tokenAuth.Encode(claims)
	return tokenString, err
}

// ownerFromRequest extracts the authenticated owner id from the verified
// token claims. Returns uuid.Nil when the token is missing or malformed.
func ownerFromRequest(r *http.Request) (uuid.UUID, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.Nil, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}
	ownerID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return ownerID, true
}
