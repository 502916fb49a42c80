package player

import (
	"encoding/json"
	"fmt"

	"github.com/lk16/reversi/internal/models"
)

// Snapshot is the serializable form of a Player. Strategies are stored by name.
type Snapshot struct {
	Color     models.Color     `json:"color"`
	Kind      Kind             `json:"kind"`
	Strategy  string           `json:"strategy,omitempty"`
	Moves     []models.Move    `json:"moves"`
	Passed    bool             `json:"passed"`
	Selection *models.Position `json:"selection,omitempty"`
}

// StrategyLookup finds a strategy by name.
type StrategyLookup func(name string) (Strategy, error)

// Snapshot returns the serializable form of p.
func (p Player) Snapshot() Snapshot {
	snapshot := Snapshot{
		Color:  p.color,
		Kind:   p.kind,
		Moves:  p.LegalMoves(),
		Passed: p.passed,
	}

	if p.strategy != nil {
		snapshot.Strategy = p.strategy.Name()
	}

	if p.selection != nil {
		selection := *p.selection
		snapshot.Selection = &selection
	}

	return snapshot
}

// Restore creates a Player from a snapshot.
func Restore(snapshot Snapshot, lookup StrategyLookup) (Player, error) {
	if !snapshot.Color.IsValid() {
		return Player{}, fmt.Errorf("invalid player color: %d", snapshot.Color)
	}

	p := Player{
		color:  snapshot.Color,
		kind:   snapshot.Kind,
		moves:  append([]models.Move(nil), snapshot.Moves...),
		passed: snapshot.Passed,
	}

	if snapshot.Selection != nil {
		selection := *snapshot.Selection
		p.selection = &selection
	}

	if snapshot.Kind == Computer {
		strategy, err := lookup(snapshot.Strategy)
		if err != nil {
			return Player{}, fmt.Errorf("failed to restore strategy: %w", err)
		}
		p.strategy = strategy
	}

	return p, nil
}

// MarshalJSON marshals a kind as "HUMAN" or "AI".
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON unmarshals a kind from "HUMAN" or "AI".
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("kind must be a string: %w", err)
	}

	kind, err := ParseKind(s)
	if err != nil {
		return err
	}

	*k = kind
	return nil
}
