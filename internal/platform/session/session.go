// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package session signs and verifies the interaction state of quizzes, spelling
// games and reading sessions.
//
// # Architecture
//
// Interaction state is ephemeral and scoped to one page view, so it is never
// stored on the server. Each state change returns a new HS256 token that carries
// the full engine state; the client sends it back with the next action. The
// signature prevents tampering (e.g. raising a score) and the expiry discards
// abandoned sessions without any cleanup job.
//
// Tokens are signed, not encrypted: anyone holding one can base64-decode the
// state, including quiz answers and spelling words. Nothing secret belongs in it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/storytime/internal/platform/apperr"
)

// ErrKindMismatch is returned when a token of one session kind is presented to another.
var ErrKindMismatch = errors.New("session: token kind mismatch")

// Claims is the payload embedded inside a session token.
//
// Custom claims are abbreviated to keep the token small enough for a form field.
type Claims struct {
	jwt.RegisteredClaims

	// Kind names the engine the state belongs to (quiz, spelling, reading).
	Kind string `json:"knd"`

	// State is the JSON-encoded engine state.
	State json.RawMessage `json:"st"`
}

// Sealer turns engine state into tokens and back. [*Codec] implements it;
// services depend on this interface so tests can swap the clock or secret.
type Sealer interface {
	Encode(kind string, state any) (string, error)
	Decode(tokenString, kind string, target any) error
}

// Codec handles generation and verification of session tokens.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec signing with secret. Tokens expire ttl after their last update.
func NewCodec(secret, issuer string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("session: secret must not be empty")
	}
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Encode serialises state into a signed token of the given kind.
func (codec *Codec) Encode(kind string, state any) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("session: failed to encode state: %w", err)
	}

	currentTime := codec.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(codec.ttl)),
		},
		Kind:  kind,
		State: payload,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("session: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Decode verifies tokenString and unmarshals its state into target.
//
// Every failure is returned as an [apperr.InvalidSession] so handlers can pass
// it straight to the responder.
func (codec *Codec) Decode(tokenString, kind string, target any) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("session: unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	},
		jwt.WithIssuer(codec.issuer),
		jwt.WithTimeFunc(codec.now),
	)
	if err != nil {
		return apperr.InvalidSession(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return apperr.InvalidSession(fmt.Errorf("session: invalid token claims"))
	}

	if claims.Kind != kind {
		return apperr.InvalidSession(ErrKindMismatch)
	}

	if err := json.Unmarshal(claims.State, target); err != nil {
		return apperr.InvalidSession(fmt.Errorf("session: failed to decode state: %w", err))
	}

	return nil
}
