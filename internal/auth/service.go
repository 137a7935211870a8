package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/typeid"
)

var (
	ErrInvalidOrigin = errors.New("invalid origin")
	ErrInvalidToken  = errors.New("invalid token")
)

const tokenTTL = 24 * time.Hour

// Service issues tokens that let one display context read and write the
// scene of one origin.
type Service struct {
	jwtSecret []byte
	now       func() time.Time
}

func NewService(jwtSecret string) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// Claims identify a display context and the origin it may access.
type Claims struct {
	Origin    string `json:"origin"`
	ContextID string `json:"contextId"`
}

// Allows reports whether the token was issued for origin. A nil Claims
// allows nothing.
func (c *Claims) Allows(origin string) bool {
	return c != nil && c.Origin == origin
}

type ContextResult struct {
	Token     string `json:"token"`
	ContextID string `json:"contextId"`
}

// IssueContextToken creates a new display context id for origin and a token
// for it.
func (s *Service) IssueContextToken(origin string) (*ContextResult, error) {
	if !document.ValidOrigin(origin) {
		return nil, ErrInvalidOrigin
	}

	contextID := typeid.NewContextID()
	now := s.now()
	claims := jwt.MapClaims{
		"sub": origin,
		"ctx": contextID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ContextResult{Token: signed, ContextID: contextID}, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	origin, _ := claims["sub"].(string)
	contextID, _ := claims["ctx"].(string)
	if !document.ValidOrigin(origin) {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	if err := typeid.Validate(contextID, typeid.PrefixContext); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return &Claims{Origin: origin, ContextID: contextID}, nil
}
