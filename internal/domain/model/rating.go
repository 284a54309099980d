// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel kinds for rating input errors.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidRating   = errors.New("invalid rating")
	ErrEmptyName       = errors.New("empty name")
)

// Position is a field position a player can be rated for.
type Position string

// Supported positions.
const (
	GK  Position = "GK"
	DEF Position = "DEF"
	MID Position = "MID"
	FWD Position = "FWD"
)

// Positions returns all positions in display order.
func Positions() []Position {
	return []Position{GK, DEF, MID, FWD}
}

// Valid reports whether p is one of the supported positions.
func (p Position) Valid() bool {
	switch p {
	case GK, DEF, MID, FWD:
		return true
	}
	return false
}

// ParsePosition parses a position name, ignoring case and surrounding space.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return p, nil
}

// Rating bounds.
const (
	MinRating Rating = 1
	MaxRating Rating = 10
)

// Rating is a score one user gives a player for one position.
type Rating int

// Valid reports whether r lies in [MinRating, MaxRating].
func (r Rating) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

// NewRating converts n to a Rating, rejecting out-of-range values.
func NewRating(n int) (Rating, error) {
	r := Rating(n)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidRating, n, MinRating, MaxRating)
	}
	return r, nil
}

// ParseRating parses a decimal integer rating. Non-integers are rejected.
func ParseRating(s string) (Rating, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidRating, s)
	}
	return NewRating(n)
}

// Ratings maps a user name to the rating that user submitted.
type Ratings map[string]Rating

// PlayerRecord maps each rated position to its user ratings.
type PlayerRecord map[Position]Ratings

// Table is the full rating table keyed by player name.
type Table map[string]PlayerRecord

// Upsert sets the rating user gave player at pos, overwriting any previous one.
func (t Table) Upsert(player string, pos Position, user string, r Rating) {
	rec, ok := t[player]
	if !ok {
		rec = make(PlayerRecord)
		t[player] = rec
	}
	byUser, ok := rec[pos]
	if !ok {
		byUser = make(Ratings)
		rec[pos] = byUser
	}
	byUser[user] = r
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for player, rec := range t {
		cp := make(PlayerRecord, len(rec))
		for pos, byUser := range rec {
			users := make(Ratings, len(byUser))
			for u, r := range byUser {
				users[u] = r
			}
			cp[pos] = users
		}
		out[player] = cp
	}
	return out
}

// Count returns the number of individual ratings stored in t.
func (t Table) Count() int {
	n := 0
	for _, rec := range t {
		for _, byUser := range rec {
			n += len(byUser)
		}
	}
	return n
}

// Submission is a single rating cell to be written to the store.
type Submission struct {
	Player   string
	Position Position
	User     string
	Rating   Rating
}

// Validate checks that the submission is well formed.
func (s Submission) Validate() error {
	switch {
	case strings.TrimSpace(s.Player) == "":
		return fmt.Errorf("%w: player", ErrEmptyName)
	case strings.TrimSpace(s.User) == "":
		return fmt.Errorf("%w: user", ErrEmptyName)
	case !s.Position.Valid():
		return fmt.Errorf("%w: %q", ErrInvalidPosition, string(s.Position))
	case !s.Rating.Valid():
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidRating, int(s.Rating), MinRating, MaxRating)
	}
	return nil
}
