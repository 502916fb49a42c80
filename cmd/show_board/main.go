package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/models"
)

func main() {
	boardString := flag.String("board", "", "the board to show, as printed by the selfplay tool")
	color := flag.String("moves", "", "mark the legal moves of this color: black or white")
	flag.Parse()

	board, err := models.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var marked []models.Position
	if *color != "" {
		c, err := models.ParseColor(*color)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		marked = models.Landings(models.LegalMoves(board, c))
	}

	for _, line := range board.ASCIIArtLines(marked...) {
		fmt.Println(line)
	}

	score := board.Score()
	fmt.Printf("black %d : %d white\n", score.Black, score.White)
}
