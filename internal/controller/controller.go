// Package controller holds the one piece of mutable state in stacks: the
// number currently being visualized. Every accepted write re-runs the whole
// pipeline synchronously and hands the fresh layout to subscribers.
package controller

import (
	"math"
	"strconv"
	"strings"
	"sync"

	stackserr "github.com/amterp/stacks/internal/errors"
	"github.com/amterp/stacks/internal/layout"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/policy"
)

// Limits bounds the values the controller accepts. Max of 0 means no ceiling.
// Min is never allowed below model.HardMinNumber.
type Limits struct {
	Min int
	Max int
}

// DefaultLimits matches the range of the reference input control.
func DefaultLimits() Limits {
	return Limits{Min: model.DefaultMinNumber, Max: model.DefaultMaxNumber}
}

// LimitsFromConfig derives limits from the user's config.
func LimitsFromConfig(cfg *model.Config) Limits {
	if cfg == nil {
		return DefaultLimits()
	}
	return Limits{Min: cfg.MinNumber, Max: cfg.MaxNumber}
}

func (l Limits) floor() int {
	if l.Min < model.HardMinNumber {
		return model.HardMinNumber
	}
	return l.Min
}

// Subscriber receives every layout produced by an accepted write.
type Subscriber func(*model.Layout)

// Controller owns the current number and its most recent layout.
// All methods are safe for concurrent use.
type Controller struct {
	mu          sync.Mutex
	renderer    *layout.Renderer
	limits      Limits
	number      int
	current     *model.Layout
	subscribers []Subscriber
}

// New creates a controller showing initial. An out-of-range initial value is
// an error so misconfiguration surfaces at startup.
func New(renderer *layout.Renderer, limits Limits, initial int) (*Controller, error) {
	c := &Controller{
		renderer: renderer,
		limits:   limits,
	}
	if err := c.Validate(initial); err != nil {
		return nil, err
	}
	c.number = initial
	c.current = renderer.Render(initial)
	return c, nil
}

// Subscribe registers fn to be called, in registration order, after every
// accepted write.
func (c *Controller) Subscribe(fn Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Number returns the current value.
func (c *Controller) Number() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.number
}

// Layout returns the layout for the current value.
func (c *Controller) Layout() *model.Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// State returns the current value and its layout as one consistent pair.
func (c *Controller) State() (int, *model.Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.number, c.current
}

// Limits returns the accepted range.
func (c *Controller) Limits() Limits {
	return c.limits
}

// Renderer returns the renderer used for every recompute.
func (c *Controller) Renderer() *layout.Renderer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderer
}

// Validate checks n against the controller's limits without changing state.
func (c *Controller) Validate(n int) error {
	if min := c.limits.floor(); n < min {
		return stackserr.NumberTooSmall(n, min)
	}
	if c.limits.Max > 0 && n > c.limits.Max {
		return stackserr.NumberTooLarge(n, c.limits.Max)
	}
	return nil
}

// SetRaw coerces raw text into a number and applies it. Empty, non-numeric
// and fractional input is rejected and leaves the current value untouched.
func (c *Controller) SetRaw(raw string) error {
	n, err := Parse(raw)
	if err != nil {
		return err
	}
	return c.Set(n)
}

// Set replaces the current value with n and recomputes the layout.
func (c *Controller) Set(n int) error {
	if err := c.Validate(n); err != nil {
		return err
	}

	c.mu.Lock()
	c.number = n
	c.current = c.renderer.Render(n)
	lay, subs := c.snapshot()
	c.mu.Unlock()

	notify(subs, lay)
	return nil
}

// SetPolicy swaps the sizing policy and re-renders the current value.
func (c *Controller) SetPolicy(p policy.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.renderer = layout.NewRenderer(p)
	c.current = c.renderer.Render(c.number)
	lay, subs := c.snapshot()
	c.mu.Unlock()

	notify(subs, lay)
	return nil
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() (*model.Layout, []Subscriber) {
	subs := make([]Subscriber, len(c.subscribers))
	copy(subs, c.subscribers)
	return c.current, subs
}

func notify(subs []Subscriber, lay *model.Layout) {
	for _, fn := range subs {
		fn(lay)
	}
}

// Parse converts user text into an integer. Surrounding whitespace is
// ignored, and values like "16.0" or "1e2" are accepted when they are whole.
func Parse(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, stackserr.NotANumber("")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, stackserr.NotANumber(s)
	}
	// float64(math.MaxInt) rounds up to 2^63, which int cannot hold
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, stackserr.NumberOutOfRange(s)
	}
	return int(f), nil
}
