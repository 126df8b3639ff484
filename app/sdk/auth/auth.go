// Package auth provides authentication and role based authorization
// support for the service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

var (
	ErrForbidden    = errors.New("attempted action is not allowed")
	ErrKIDMissing   = errors.New("kid missing from token header")
	ErrKIDMalformed = errors.New("kid in token header is malformed")
	ErrUserDisabled = errors.New("user is disabled")
)

// Token kinds carried by the kind claim.
const (
	KindUser   = "user"
	KindPortal = "portal"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Kind string `json:"kind"`
}

// UserID returns the subject as a parsed user id.
func (c Claims) UserID() (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing subject %q: %w", c.Subject, err)
	}

	return userID, nil
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log       *logger.Logger
	UserBus   *userbus.Core
	KeyLookup KeyLookup
	Issuer    string
}

// Auth is used to authenticate clients and evaluate role permissions.
type Auth struct {
	log       *logger.Logger
	keyLookup KeyLookup
	userBus   *userbus.Core
	policy    *policy
	method    jwt.SigningMethod
	parser    *jwt.Parser
	issuer    string
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) (*Auth, error) {
	policy, err := newPolicy()
	if err != nil {
		return nil, fmt.Errorf("building role policy: %w", err)
	}

	a := Auth{
		log:       cfg.Log,
		keyLookup: cfg.KeyLookup,
		userBus:   cfg.UserBus,
		policy:    policy,
		method:    jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
		issuer:    cfg.Issuer,
	}

	return &a, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string for the user.
func (a *Auth) GenerateToken(kid string, userID uuid.UUID, kind string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Kind: kind,
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = kid

	privateKeyPEM, err := a.keyLookup.PrivateKey(kid)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	jwtUnverified := bearerToken[7:]

	var claims Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &claims)
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", err)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Claims{}, ErrKIDMissing
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Claims{}, ErrKIDMalformed
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching public key for kid %q: %w", kid, err)
	}

	if err := a.verifySignatureAndClaims(jwtUnverified, pem); err != nil {
		a.log.Info(ctx, "authenticate failed", "userID", claims.Subject, "err", err)
		return Claims{}, fmt.Errorf("authentication failed: %w", err)
	}

	if err := a.isUserEnabled(ctx, claims); err != nil {
		return Claims{}, fmt.Errorf("user not enabled: %w", err)
	}

	return claims, nil
}

// Authorize checks whether the specified workspace role grants the action
// on the object. Routes with no rule configured deny by default.
func (a *Auth) Authorize(ctx context.Context, rl role.Role, obj string, act string) error {
	if err := a.policy.check(rl, obj, act); err != nil {
		return fmt.Errorf("%w: role %q cannot %s %s", ErrForbidden, rl, act, obj)
	}

	return nil
}

// Login validates the credentials against the user store.
func (a *Auth) Login(ctx context.Context, email mail.Address, password string) (userbus.User, error) {
	usr, err := a.userBus.Authenticate(ctx, email, password)
	if err != nil {
		return userbus.User{}, fmt.Errorf("invalid credentials: %w", err)
	}

	return usr, nil
}

func (a *Auth) isUserEnabled(ctx context.Context, claims Claims) error {
	if a.userBus == nil {
		return nil
	}

	userID, err := claims.UserID()
	if err != nil {
		return err
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	if !usr.Enabled {
		return ErrUserDisabled
	}

	return nil
}

func (a *Auth) verifySignatureAndClaims(tokenStr, pemStr string) error {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return fmt.Errorf("validating token signature: %w", err)
	}

	if !token.Valid {
		return errors.New("token is invalid")
	}

	if claims.Issuer != a.issuer {
		return fmt.Errorf("invalid issuer: expected %q, got %q", a.issuer, claims.Issuer)
	}

	return nil
}
