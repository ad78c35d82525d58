package domain

import (
	"fmt"
	"strings"
)

// Generator enumerates candidates lazily and deterministically: lengths
// ascending, lexicographic in Alphabet order within each length. Raw products
// that break the dot placement rules are skipped, never emitted.
//
// A Generator is not safe for concurrent use; callers feed one generator into
// a shared channel instead.
type Generator struct {
	minLen int
	maxLen int

	// idx is an odometer of positions into Alphabet for the current raw
	// product; nil until the first advance.
	idx  []int
	done bool
}

// NewGenerator builds a generator for the [minLen, maxLen] length window.
func NewGenerator(minLen, maxLen int) (*Generator, error) {
	if minLen < MinUsernameLen || maxLen > MaxUsernameLen || minLen > maxLen {
		return nil, &OpError{
			Op:   "generator.new",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("length window [%d,%d] outside [%d,%d]: %w", minLen, maxLen, MinUsernameLen, MaxUsernameLen, ErrInvalidConfig),
		}
	}
	return &Generator{minLen: minLen, maxLen: maxLen}, nil
}

// StartAfter positions the generator so that the next call to Next returns
// the candidate immediately following last in enumeration order. last must
// consist of Alphabet characters and fit the length window; it does not have
// to satisfy the dot rules.
func (g *Generator) StartAfter(last string) error {
	if len(last) < g.minLen || len(last) > g.maxLen {
		return &OpError{
			Op:   "generator.start_after",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("%q does not fit length window [%d,%d]: %w", last, g.minLen, g.maxLen, ErrInvalidCandidate),
		}
	}

	idx := make([]int, len(last))
	for i := 0; i < len(last); i++ {
		p := strings.IndexByte(Alphabet, last[i])
		if p < 0 {
			return &OpError{
				Op:   "generator.start_after",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("%q contains %q: %w", last, last[i], ErrInvalidCandidate),
			}
		}
		idx[i] = p
	}

	g.idx = idx
	g.done = false
	return nil
}

// Next returns the next valid candidate. ok is false once the window is
// exhausted.
func (g *Generator) Next() (candidate string, ok bool) {
	for {
		if !g.advance() {
			return "", false
		}
		s := g.current()
		if IsValidCandidate(s, g.minLen, g.maxLen) {
			return s, true
		}
	}
}

// advance moves the odometer to the next raw product, growing the length when
// the current one overflows. Returns false when the window is exhausted.
func (g *Generator) advance() bool {
	if g.done {
		return false
	}
	if g.idx == nil {
		g.idx = make([]int, g.minLen)
		return true
	}

	for i := len(g.idx) - 1; i >= 0; i-- {
		g.idx[i]++
		if g.idx[i] < len(Alphabet) {
			return true
		}
		g.idx[i] = 0
	}

	// Overflowed every position: move to the next length.
	if len(g.idx)+1 > g.maxLen {
		g.done = true
		return false
	}
	g.idx = make([]int, len(g.idx)+1)
	return true
}

func (g *Generator) current() string {
	var b strings.Builder
	b.Grow(len(g.idx))
	for _, p := range g.idx {
		b.WriteByte(Alphabet[p])
	}
	return b.String()
}
