// Package aggregate turns raw user ratings into per-position and overall
// averages.
//
// All functions are pure. Per-position averages are rounded to two decimals
// for display; the overall average is computed from unrounded means.
package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/pickup/internal/domain/balance"
	"github.com/okian/pickup/internal/domain/model"
)

const displayPrecision = 100 // two decimal places

// PositionAverage summarizes the ratings of one position.
type PositionAverage struct {
	Position model.Position
	Average  float64 // rounded to two decimals
	Count    int
	Tooltip  string
}

// PlayerAverage is the derived, display-ready summary of one player.
type PlayerAverage struct {
	Player    string
	Positions map[model.Position]PositionAverage // only rated positions
	Overall   float64
	Ratings   int
}

// Rated reports whether the player has at least one rating.
func (p PlayerAverage) Rated() bool { return p.Ratings > 0 }

// PerPositionAverage returns the mean of ratings rounded to two decimals.
// ok is false when ratings is empty.
func PerPositionAverage(ratings model.Ratings) (avg float64, ok bool) {
	m, ok := mean(ratings)
	if !ok {
		return 0, false
	}
	return Round2(m), true
}

// OverallAverage averages the per-position means of every position that has
// at least one rating. Unrated positions are skipped, not counted as zero.
// A record with no ratings at all yields 0.
func OverallAverage(record model.PlayerRecord) float64 {
	var (
		sum float64
		n   int
	)
	for _, ratings := range record {
		m, ok := mean(ratings)
		if !ok {
			continue
		}
		sum += m
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Tooltip lists each contributing user with their rating, sorted by user,
// e.g. "alice: 8, bob: 6".
func Tooltip(ratings model.Ratings) string {
	users := make([]string, 0, len(ratings))
	for u := range ratings {
		users = append(users, u)
	}
	sort.Strings(users)

	var b strings.Builder
	for i, u := range users {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(u)
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(int(ratings[u])))
	}
	return b.String()
}

// Summarize builds the display summary for one player.
func Summarize(player string, record model.PlayerRecord) PlayerAverage {
	out := PlayerAverage{
		Player:    player,
		Positions: make(map[model.Position]PositionAverage, len(record)),
		Overall:   OverallAverage(record),
	}
	for _, pos := range model.Positions() {
		ratings := record[pos]
		avg, ok := PerPositionAverage(ratings)
		if !ok {
			continue
		}
		out.Positions[pos] = PositionAverage{
			Position: pos,
			Average:  avg,
			Count:    len(ratings),
			Tooltip:  Tooltip(ratings),
		}
		out.Ratings += len(ratings)
	}
	return out
}

// Board summarizes every player in table, ordered by player name.
func Board(table model.Table) []PlayerAverage {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	board := make([]PlayerAverage, len(names))
	for i, name := range names {
		board[i] = Summarize(name, table[name])
	}
	return board
}

// Entries converts a board into balancer input.
func Entries(board []PlayerAverage) []balance.Entry {
	out := make([]balance.Entry, len(board))
	for i, p := range board {
		out[i] = balance.Entry{Player: p.Player, Average: p.Overall}
	}
	return out
}

func mean(ratings model.Ratings) (float64, bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	var sum int
	for _, r := range ratings {
		sum += int(r)
	}
	return float64(sum) / float64(len(ratings)), true
}

// Round2 rounds x to two decimal places for display.
func Round2(x float64) float64 {
	return math.Round(x*displayPrecision) / displayPrecision
}
