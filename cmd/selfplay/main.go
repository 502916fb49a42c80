package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/strategy"
)

// maxTicks bounds a game: every tick places a disc or passes, and passes never come more than twice in a row.
const maxTicks = 3 * models.MaxBoardLength * models.MaxBoardLength

func main() {
	length := flag.Int("length", models.DefaultBoardLength, "board length, even and between 6 and 10")
	black := flag.String("black", strategy.GreedyName, "strategy for black")
	white := flag.String("white", strategy.RandomName, "strategy for white")
	seed := flag.Int64("seed", 1, "seed for the random strategy")
	quiet := flag.Bool("quiet", false, "only print the final board")
	flag.Parse()

	config.SetLogLevel()

	registry := strategy.NewRegistry(strategy.Greedy{}, strategy.NewRandom(*seed))

	blackPlayer, err := newComputer(registry, models.BLACK, *black)
	if err != nil {
		slog.Error("Invalid black strategy", "error", err)
		os.Exit(1)
	}

	whitePlayer, err := newComputer(registry, models.WHITE, *white)
	if err != nil {
		slog.Error("Invalid white strategy", "error", err)
		os.Exit(1)
	}

	g, err := game.NewStart(config.NormalizeBoardLength(*length), blackPlayer, whitePlayer)
	if err != nil {
		slog.Error("Failed to start game", "error", err)
		os.Exit(1)
	}

	for range maxTicks {
		if !*quiet {
			printBoard(g)
		}

		if g.IsOver() {
			break
		}

		g, err = g.Tick()
		if err != nil {
			slog.Error("Game stopped", "error", err)
			os.Exit(1)
		}
	}

	if *quiet {
		printBoard(g)
	}

	outcome, ok := g.Outcome()
	if !ok {
		slog.Error("Game did not finish", "ticks", maxTicks)
		os.Exit(1)
	}

	fmt.Println(outcome.String())
	fmt.Println(g.Board().String())
}

func newComputer(registry *strategy.Registry, color models.Color, name string) (player.Player, error) {
	s, err := registry.Lookup(name)
	if err != nil {
		return player.Player{}, err
	}
	return player.NewComputer(color, s), nil
}

func printBoard(g game.Game) {
	fmt.Printf("%s to move (%s)\n", g.Current().Color(), g.State())
	for _, line := range g.Board().ASCIIArtLines(models.Landings(g.Current().LegalMoves())...) {
		fmt.Println(line)
	}
	fmt.Println()
}
