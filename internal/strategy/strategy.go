package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
)

const (
	GreedyName = "greedy"
	RandomName = "random"
)

var errNoMoves = errors.New("no moves to choose from")

// Greedy picks the landing square that flips the most discs. Ties go to the first landing in move
// order.
type Greedy struct{}

// Name returns "greedy".
func (Greedy) Name() string {
	return GreedyName
}

// ChooseMove returns a move on the landing with the most flips.
func (Greedy) ChooseMove(_ models.Board, moves []models.Move) (models.Move, error) {
	if len(moves) == 0 {
		return models.Move{}, errNoMoves
	}

	best := moves[0]
	bestFlips := -1

	for _, landing := range models.Landings(moves) {
		atLanding := models.MovesAt(moves, landing)
		if flips := models.TotalFlips(atLanding); flips > bestFlips {
			best = atLanding[0]
			bestFlips = flips
		}
	}

	return best, nil
}

// Random picks a uniformly random landing square.
type Random struct {
	rng      *rand.Rand
	rngMutex sync.Mutex
}

// NewRandom creates a Random strategy with a fixed seed.
func NewRandom(seed int64) *Random {
	return &Random{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec
	}
}

// Name returns "random".
func (r *Random) Name() string {
	return RandomName
}

// ChooseMove returns a move on a random landing square.
func (r *Random) ChooseMove(_ models.Board, moves []models.Move) (models.Move, error) {
	if len(moves) == 0 {
		return models.Move{}, errNoMoves
	}

	landings := models.Landings(moves)

	r.rngMutex.Lock()
	index := r.rng.Intn(len(landings))
	r.rngMutex.Unlock()

	return models.MovesAt(moves, landings[index])[0], nil
}

// Registry holds strategies by name.
type Registry struct {
	strategies map[string]player.Strategy
}

// NewRegistry creates a registry with the given strategies.
func NewRegistry(strategies ...player.Strategy) *Registry {
	r := &Registry{strategies: make(map[string]player.Strategy, len(strategies))}
	for _, s := range strategies {
		r.strategies[s.Name()] = s
	}
	return r
}

// NewDefaultRegistry creates a registry with the greedy and random strategies.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Greedy{}, NewRandom(time.Now().UnixNano()))
}

// Lookup finds a strategy by name. It can be used as a player.StrategyLookup.
func (r *Registry) Lookup(name string) (player.Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
	return s, nil
}
