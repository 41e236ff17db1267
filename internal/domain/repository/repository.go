package repository

import "errors"

var (
	// ErrNotFound is returned by FindBy* lookups when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by Save when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}
