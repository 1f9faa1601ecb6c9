// Package auth provides password hashing, bearer-token issuance and
// validation, and the middleware that turns a token into a request identity.
//
// Tokens are stateless HS256 JWTs: the signature plus expiry make them
// self-contained, so validating one never touches the database. The flip
// side is that revocation before expiry is not supported — rotating the
// signing secret is the only way to invalidate outstanding tokens.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const issuer = "student-expense-tracker"

// Identity is the verified (user id, email) pair attached to a request
// after token validation. Downstream services treat it as the
// authenticated caller and scope every query to Identity.UserID.
type Identity struct {
	UserID int64
	Email  string
}

// TokenService signs and verifies bearer tokens. It holds the HMAC secret
// and the token lifetime; both are process-wide configuration, injected
// once at startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret should be at least
// 32 bytes of random data in production; anything under 16 is rejected.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload: the standard registered claims plus the
// user's email. The user ID travels in "sub".
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Generate issues a signed token for the given user. The token carries
// the user id (sub), email, a unique jti, and expires after the
// configured TTL (7 days by default).
func (s *TokenService) Generate(userID int64, email string) (string, error) {
	now := time.Now()

	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// generateWithExpiry issues a token with an explicit expiry time.
// Unexported helper used by the tests in this package to mint already
// expired tokens.
func (s *TokenService) generateWithExpiry(userID int64, email string, exp time.Time) (string, error) {
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a token string and returns the Identity it
// encodes. A token is valid only if its signature verifies against the
// current secret, it has not expired, the issuer matches, and it was
// signed with HS256 (jwt.WithValidMethods closes the algorithm-confusion
// hole where a "none"-signed token would otherwise slip through).
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, errors.New("auth: token expired")
		}
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, errors.New("auth: token has no valid subject")
	}

	return Identity{UserID: userID, Email: c.Email}, nil
}
