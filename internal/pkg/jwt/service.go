package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	issuer = "intern-match"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrWrongType    = errors.New("wrong token type")
)

// Subject is who a token pair is issued to.
type Subject struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type Pair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// Claims only carry Email and Role on access tokens; refresh tokens identify
// the user and are re-checked against the store on use.
type Claims struct {
	UserID    uuid.UUID `json:"uid"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"typ"`

	jwtlib.RegisteredClaims
}

type Service interface {
	Issue(sub Subject) (Pair, error)
	ParseAccess(token string) (Claims, error)
	ParseRefresh(token string) (Claims, error)
}

type HMACService struct {
	accessSecret  []byte
	refreshSecret []byte

	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *HMACService {
	return &HMACService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (s *HMACService) Issue(sub Subject) (Pair, error) {
	if sub.UserID == uuid.Nil {
		return Pair{}, ErrTokenInvalid
	}
	if len(s.accessSecret) == 0 || len(s.refreshSecret) == 0 || s.accessTTL <= 0 || s.refreshTTL <= 0 {
		return Pair{}, errors.New("jwt: secrets and lifetimes must be configured")
	}

	now := s.now().UTC()
	accessExp := now.Add(s.accessTTL)

	access, err := s.sign(s.accessSecret, Claims{
		UserID:           sub.UserID,
		Email:            sub.Email,
		Role:             sub.Role,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: registered(sub.UserID, now, accessExp),
	})
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.sign(s.refreshSecret, Claims{
		UserID:           sub.UserID,
		TokenType:        TokenTypeRefresh,
		RegisteredClaims: registered(sub.UserID, now, now.Add(s.refreshTTL)),
	})
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh, AccessExpiresAt: accessExp}, nil
}

func (s *HMACService) ParseAccess(token string) (Claims, error) {
	return s.parse(token, s.accessSecret, TokenTypeAccess)
}

func (s *HMACService) ParseRefresh(token string) (Claims, error) {
	return s.parse(token, s.refreshSecret, TokenTypeRefresh)
}

func registered(userID uuid.UUID, now, exp time.Time) jwtlib.RegisteredClaims {
	return jwtlib.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID.String(),
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(exp),
		ID:        uuid.NewString(),
	}
}

func (s *HMACService) sign(secret []byte, c Claims) (string, error) {
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
}

func (s *HMACService) parse(token string, secret []byte, want string) (Claims, error) {
	if token == "" || len(secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	if c.TokenType != want {
		return Claims{}, ErrWrongType
	}
	return c, nil
}
