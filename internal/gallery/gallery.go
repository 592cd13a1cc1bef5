// Package gallery is the visual aid viewer: a paginated image sequence
// driven by drag gestures through an Idle -> Dragging -> Settling state
// machine. Rendering is not done here; the settle animation is injected.
package gallery

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
)

// SwipeThreshold is the fraction of the viewport width a drag must exceed
// to change page.
const SwipeThreshold = 0.2

var ErrEmpty = errors.New("gallery has no images")

type State int

const (
	Idle State = iota
	Dragging
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	}
	return "unknown"
}

// Animator runs the settle animation from an offset back to zero and
// calls done once it has finished.
type Animator interface {
	Settle(from float64, done func())
}

// ImageLoader fetches an image; it returns once the image has loaded or
// failed.
type ImageLoader interface {
	Load(ctx context.Context, uri string) error
}

type LoaderFunc func(ctx context.Context, uri string) error

func (f LoaderFunc) Load(ctx context.Context, uri string) error { return f(ctx, uri) }

// immediate completes every settle synchronously.
type immediate struct{}

func (immediate) Settle(_ float64, done func()) { done() }

type Option func(*Gallery)

func WithAnimator(a Animator) Option { return func(g *Gallery) { g.animator = a } }

func WithLoader(l ImageLoader) Option { return func(g *Gallery) { g.loader = l } }

type Gallery struct {
	mu       sync.Mutex
	images   []string
	viewport float64
	animator Animator
	loader   ImageLoader

	index  int
	state  State
	offset float64
	settle uint64 // bumps on every release; stale completions are ignored

	loading   bool
	loadSeq   uint64
	displayed string
}

// New builds a gallery over images, keeping their order (and duplicates).
func New(images []string, viewportWidth float64, opts ...Option) *Gallery {
	g := &Gallery{
		images:   slices.Clone(images),
		viewport: viewportWidth,
		animator: immediate{},
		loader:   LoaderFunc(func(context.Context, string) error { return nil }),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enabled is false for an empty sequence; such a gallery renders nothing
// and ignores every event.
func (g *Gallery) Enabled() bool { return len(g.images) > 0 }

func (g *Gallery) Len() int { return len(g.images) }

func (g *Gallery) Index() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.index
}

func (g *Gallery) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gallery) Offset() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.offset
}

func (g *Gallery) SetViewportWidth(w float64) {
	g.mu.Lock()
	g.viewport = w
	g.mu.Unlock()
}

// DragStart moves Idle to Dragging with offset 0. It reports whether the
// event was accepted.
func (g *Gallery) DragStart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.Enabled() || g.state != Idle {
		return false
	}
	g.state = Dragging
	g.offset = 0
	return true
}

// DragMove sets the offset to the displacement since drag start.
func (g *Gallery) DragMove(dx float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Dragging {
		return false
	}
	g.offset = dx
	return true
}

// DragRelease ends the drag with total displacement dx. Past the swipe
// threshold a right drag (dx > 0) goes back one page and a left drag goes
// forward one, clamped to the sequence. The gallery then settles back to
// offset 0 and returns to Idle when the animator reports completion.
// It reports whether the index changed.
func (g *Gallery) DragRelease(dx float64) bool {
	g.mu.Lock()
	if g.state != Dragging {
		g.mu.Unlock()
		return false
	}

	prev := g.index
	if math.Abs(dx) > SwipeThreshold*g.viewport {
		if dx > 0 {
			g.index = max(g.index-1, 0)
		} else {
			g.index = min(g.index+1, len(g.images)-1)
		}
	}
	g.offset = dx
	g.state = Settling
	g.settle++
	token := g.settle
	changed := g.index != prev
	animator := g.animator
	g.mu.Unlock()

	animator.Settle(dx, func() { g.settled(token) })
	return changed
}

func (g *Gallery) settled(token uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Settling || token != g.settle {
		return
	}
	g.offset = 0
	g.state = Idle
}

func (g *Gallery) CanPrevious() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Enabled() && g.index > 0
}

func (g *Gallery) CanNext() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Enabled() && g.index < len(g.images)-1
}

// Previous and Next are the button analogues of a swipe. They only act
// while Idle and are no-ops at the bounds.
func (g *Gallery) Previous() bool { return g.step(-1) }

func (g *Gallery) Next() bool { return g.step(1) }

func (g *Gallery) step(delta int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.Enabled() || g.state != Idle {
		return false
	}
	next := g.index + delta
	if next < 0 || next >= len(g.images) {
		return false
	}
	g.index = next
	return true
}

// Current returns the max-quality reference for the current index.
func (g *Gallery) Current() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.Enabled() {
		return "", false
	}
	return MaxQuality(g.images[g.index]), true
}

// Load fetches the image at the current index. While it runs Loading is
// true and Displayed keeps returning the previous image. A failure only
// clears the loading flag. A load superseded by a newer one does not touch
// the state.
func (g *Gallery) Load(ctx context.Context) error {
	g.mu.Lock()
	if !g.Enabled() {
		g.mu.Unlock()
		return ErrEmpty
	}
	uri := MaxQuality(g.images[g.index])
	g.loadSeq++
	seq := g.loadSeq
	g.loading = true
	loader := g.loader
	g.mu.Unlock()

	err := loader.Load(ctx, uri)

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.loadSeq {
		return err
	}
	g.loading = false
	if err == nil {
		g.displayed = uri
	}
	return err
}

func (g *Gallery) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// Displayed is the last successfully loaded image, empty before the first.
func (g *Gallery) Displayed() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.displayed
}
