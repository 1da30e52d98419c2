package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	tokenSession = "session"
	tokenReset   = "password_reset"
)

// Claims is the verified content of a session token.
type Claims struct {
	UID   string
	Email string
	Role  models.Role
}

type TokenIssuer struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret string, ttl, resetTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		ttl:      ttl,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// --------- Session ---------

func (t *TokenIssuer) Issue(uid, email string, role models.Role) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)

	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"role":  string(role),
		"typ":   tokenSession,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}

	signed, err := t.sign(claims)
	return signed, exp, err
}

func (t *TokenIssuer) Parse(token string) (Claims, error) {
	claims, err := t.parse(token, tokenSession)
	if err != nil {
		return Claims{}, err
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	parsed, err := models.ParseRole(role)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := claims.GetSubject()
	return Claims{UID: sub, Email: email, Role: parsed}, nil
}

// --------- Password reset ---------

// ResetClaims is the verified content of a password reset token.
type ResetClaims struct {
	UID         string
	Fingerprint string
}

// IssueReset signs a reset token for uid. stamp is the credential's current
// PasswordStamp; the token is only redeemable while it still matches.
func (t *TokenIssuer) IssueReset(uid, stamp string) (string, error) {
	now := t.now()
	return t.sign(jwt.MapClaims{
		"sub": uid,
		"pwd": t.fingerprint(stamp),
		"typ": tokenReset,
		"exp": now.Add(t.resetTTL).Unix(),
		"iat": now.Unix(),
	})
}

func (t *TokenIssuer) ParseReset(token string) (ResetClaims, error) {
	claims, err := t.parse(token, tokenReset)
	if err != nil {
		return ResetClaims{}, err
	}
	fp, _ := claims["pwd"].(string)
	if fp == "" {
		return ResetClaims{}, ErrInvalidToken
	}
	sub, _ := claims.GetSubject()
	return ResetClaims{UID: sub, Fingerprint: fp}, nil
}

// CheckResetStamp fails with ErrInvalidToken once the password the token was
// issued against has changed.
func (t *TokenIssuer) CheckResetStamp(c ResetClaims, stamp string) error {
	if !hmac.Equal([]byte(c.Fingerprint), []byte(t.fingerprint(stamp))) {
		return ErrInvalidToken
	}
	return nil
}

func (t *TokenIssuer) fingerprint(stamp string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(stamp))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// --------- JWT ---------

func (t *TokenIssuer) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) parse(token, typ string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != typ {
		return nil, ErrInvalidToken
	}
	if sub, _ := claims.GetSubject(); sub == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
