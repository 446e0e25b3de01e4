package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
)

const (
	TokenTypeAccess  = "access"
	DefaultAccessTTL = 30 * time.Minute

	accessTokenLabel = "access token"
)

// Claims carries the user's email as the standard subject claim.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed access token and its absolute expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

type JWTService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

type JWTOption func(*JWTService)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) JWTOption {
	return func(s *JWTService) {
		s.now = now
	}
}

func WithIssuer(issuer string) JWTOption {
	return func(s *JWTService) {
		s.issuer = issuer
	}
}

func NewJWTService(secret string, accessExpMinutes int, opts ...JWTOption) *JWTService {
	ttl := time.Duration(accessExpMinutes) * time.Minute
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	s := &JWTService{
		secret:    []byte(secret),
		accessTTL: ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AccessTTL returns the lifetime of issued access tokens
func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

// Issue signs an HS256 access token for subject.
func (s *JWTService) Issue(subject string) (*IssuedToken, error) {
	if subject == "" {
		return nil, fmt.Errorf("token subject is required")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.accessTTL)
	claims := &Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate verifies signature and expiry and returns the subject claim.
// Failures are AuthErrors of kind token_invalid, token_expired or
// token_missing_subject.
func (s *JWTService) Validate(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.NewTokenExpiredError(accessTokenLabel)
		}
		return "", apperrors.NewTokenInvalidError(accessTokenLabel)
	}

	if !token.Valid || claims.TokenType != TokenTypeAccess {
		return "", apperrors.NewTokenInvalidError(accessTokenLabel)
	}
	if claims.Subject == "" {
		return "", apperrors.NewMissingSubjectError()
	}

	return claims.Subject, nil
}
