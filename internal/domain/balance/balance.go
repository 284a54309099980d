// Package balance splits rated players into two teams of similar strength.
package balance

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"
)

// ErrInsufficientPlayers is returned when fewer than two players are supplied.
var ErrInsufficientPlayers = errors.New("need at least 2 players to form teams")

// MinPlayers is the smallest roster that can be split.
const MinPlayers = 2

// Entry is a player with the overall average used for balancing.
type Entry struct {
	Player  string
	Average float64
}

// Team is one side of a split together with its running total.
type Team struct {
	Players []Entry
	Total   float64
}

func (t *Team) add(e Entry) {
	t.Players = append(t.Players, e)
	t.Total += e.Average
}

// Imbalance returns the absolute difference between the two team totals.
func Imbalance(a, b Team) float64 {
	return math.Abs(a.Total - b.Total)
}

// Option applies a configuration option to the Balancer.
type Option func(*Balancer)

// WithSeed makes the shuffle order reproducible.
func WithSeed(seed int64) Option {
	return func(b *Balancer) {
		b.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // team shuffling is not security sensitive
	}
}

// WithSource sets the random source used for shuffling.
func WithSource(src rand.Source) Option {
	return func(b *Balancer) {
		if src != nil {
			b.rng = rand.New(src) //nolint:gosec // team shuffling is not security sensitive
		}
	}
}

// Balancer performs greedy randomized team balancing.
//
// Players are shuffled and then each one joins whichever team currently has
// the lower total, Team A on ties. The totals end up at most one player's
// average apart, but the split is not an optimal partition, and repeated calls
// with the same input give different teams unless a seed is set.
type Balancer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Balancer. Without options the shuffle is seeded from the clock.
func New(opts ...Option) *Balancer {
	b := &Balancer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // team shuffling is not security sensitive
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Balance partitions players into two teams. The input slice is not modified.
func (b *Balancer) Balance(players []Entry) (Team, Team, error) {
	if len(players) < MinPlayers {
		return Team{}, Team{}, ErrInsufficientPlayers
	}

	order := make([]Entry, len(players))
	copy(order, players)

	b.mu.Lock()
	b.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	b.mu.Unlock()

	var teamA, teamB Team
	for _, e := range order {
		if teamA.Total <= teamB.Total {
			teamA.add(e)
		} else {
			teamB.add(e)
		}
	}
	return teamA, teamB, nil
}
