// Package session carries the authenticated representative through a
// request. Every data operation takes its owner from here explicitly.
package session

import (
	"context"
	"errors"
)

// ErrIdentityMissing means no authenticated owner is available. Operations
// abort silently on it (logged, never shown as a field error).
var ErrIdentityMissing = errors.New("no authenticated identity")

// Session is the identity supplied by the identity collaborator.
type Session struct {
	OwnerID      string `json:"owner_id"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	Headquarters string `json:"headquarters,omitempty"`
}

func (s Session) Valid() bool { return s.OwnerID != "" }

// Provider resolves the current identity.
type Provider interface {
	Current(ctx context.Context) (Session, error)
}

type ctxKey struct{}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx.
func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || !s.Valid() {
		return Session{}, ErrIdentityMissing
	}
	return s, nil
}

// ContextProvider reads the session that middleware put on the context.
type ContextProvider struct{}

func (ContextProvider) Current(ctx context.Context) (Session, error) {
	return FromContext(ctx)
}

// Static always returns the same session; a zero Session yields
// ErrIdentityMissing.
type Static Session

func (s Static) Current(context.Context) (Session, error) {
	if !Session(s).Valid() {
		return Session{}, ErrIdentityMissing
	}
	return Session(s), nil
}
