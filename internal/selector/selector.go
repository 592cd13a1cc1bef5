// Package selector implements the anchored single-choice picker protocol:
// the anchor is measured, then the overlay is shown at those bounds.
package selector

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrNotVisible    = errors.New("selector is not open")
	ErrUnknownOption = errors.New("value is not one of the options")
	ErrEmptyBounds   = errors.New("anchor has no size")
)

// Bounds is an anchor's on-screen position and size.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer reports the anchor's current bounds.
type Measurer interface {
	Measure(ctx context.Context) (Bounds, error)
}

type MeasureFunc func(ctx context.Context) (Bounds, error)

func (f MeasureFunc) Measure(ctx context.Context) (Bounds, error) { return f(ctx) }

// Selector is one picker bound to one form field.
type Selector struct {
	mu       sync.Mutex
	options  []string
	measurer Measurer
	onSelect func(value string) error

	visible bool
	bounds  Bounds
}

// New returns a closed selector. onSelect receives the chosen value and
// is usually a form's SetField bound to a field name.
func New(options []string, measurer Measurer, onSelect func(value string) error) *Selector {
	return &Selector{
		options:  slices.Clone(options),
		measurer: measurer,
		onSelect: onSelect,
	}
}

// Open measures the anchor and shows the overlay at the fresh bounds.
// Layout may shift between opens, so the anchor is measured every time.
func (s *Selector) Open(ctx context.Context) error {
	b, err := s.measurer.Measure(ctx)
	if err != nil {
		return fmt.Errorf("measure anchor: %w", err)
	}
	return s.Show(b)
}

// Show makes the overlay visible at b. Bounds are fixed until the next open.
func (s *Selector) Show(b Bounds) error {
	if b.Width <= 0 || b.Height <= 0 {
		return ErrEmptyBounds
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = b
	s.visible = true
	return nil
}

// Select hands value to the field callback, then closes. On a callback
// error the overlay stays open.
func (s *Selector) Select(value string) error {
	s.mu.Lock()
	if !s.visible {
		s.mu.Unlock()
		return ErrNotVisible
	}
	if !slices.Contains(s.options, value) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownOption, value)
	}
	cb := s.onSelect
	s.mu.Unlock()

	if cb != nil {
		if err := cb(value); err != nil {
			return err
		}
	}
	s.Dismiss()
	return nil
}

// Dismiss closes without selecting.
func (s *Selector) Dismiss() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}

func (s *Selector) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Bounds returns the bounds the overlay was positioned at and whether it
// is visible.
func (s *Selector) Bounds() (Bounds, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds, s.visible
}

func (s *Selector) Options() []string { return slices.Clone(s.options) }
