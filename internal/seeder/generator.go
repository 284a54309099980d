package seeder

import (
	"fmt"
	"math/rand"

	"github.com/okian/pickup/internal/domain/model"
	"github.com/okian/pickup/internal/domain/types"
)

// Generate returns one submission per (user, player) pair, rating every
// position. The same seed always yields the same submissions.
func Generate(players, users int, seed int64) []types.SubmitRequest {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // generated test data
	positions := model.Positions()

	out := make([]types.SubmitRequest, 0, players*users)
	for p := 0; p < players; p++ {
		// Each player gets a base skill so the board has some spread.
		base := minRating + rng.Intn(maxRating-minRating+1)
		for u := 0; u < users; u++ {
			ratings := make(map[string]int, len(positions))
			for _, pos := range positions {
				ratings[string(pos)] = clamp(base + rng.Intn(5) - 2)
			}
			out = append(out, types.SubmitRequest{
				User:    UserName(u),
				Player:  PlayerName(p),
				Ratings: ratings,
			})
		}
	}
	return out
}

// PlayerName is the generated name of the i-th player.
func PlayerName(i int) string { return fmt.Sprintf("player-%03d", i+1) }

// UserName is the generated name of the i-th rater.
func UserName(i int) string { return fmt.Sprintf("user-%02d", i+1) }

// Expected folds submissions into the table the server should hold.
func Expected(subs []types.SubmitRequest) (model.Table, error) {
	table := model.Table{}
	for _, s := range subs {
		for name, v := range s.Ratings {
			pos, err := model.ParsePosition(name)
			if err != nil {
				return nil, err
			}
			r, err := model.NewRating(v)
			if err != nil {
				return nil, err
			}
			table.Upsert(s.Player, pos, s.User, r)
		}
	}
	return table, nil
}

const (
	minRating = int(model.MinRating)
	maxRating = int(model.MaxRating)
)

func clamp(n int) int {
	switch {
	case n < minRating:
		return minRating
	case n > maxRating:
		return maxRating
	default:
		return n
	}
}
