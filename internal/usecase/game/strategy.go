package game

import (
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/dependencies/random"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/pkg/errors"
)

const (
	reasonWin    = "win"
	reasonBlock  = "block"
	reasonRandom = "random"
)

// strategy picks one of the empty cells. empty is never empty.
type strategy func(board domain.Board, empty []int, rnd random.Random) (index int, reason string)

func strategyFor(level domain.DifficultyLevel) (strategy, error) {
	switch level {
	case domain.Easy:
		return easyStrategy, nil
	case domain.Harder:
		return harderStrategy, nil
	case domain.Expert:
		return expertStrategy, nil
	default:
		return nil, errors.WithMessagef(errUnexpectedDifficulty, "level %d", byte(level))
	}
}

func easyStrategy(_ domain.Board, empty []int, rnd random.Random) (int, string) {
	return randomCell(empty, rnd), reasonRandom
}

func harderStrategy(board domain.Board, empty []int, rnd random.Random) (int, string) {
	if index, ok := winningCell(board, empty, domain.Opponent); ok {
		return index, reasonWin
	}
	return randomCell(empty, rnd), reasonRandom
}

func expertStrategy(board domain.Board, empty []int, rnd random.Random) (int, string) {
	if index, ok := winningCell(board, empty, domain.Opponent); ok {
		return index, reasonWin
	}
	if index, ok := winningCell(board, empty, domain.Human); ok {
		return index, reasonBlock
	}
	return randomCell(empty, rnd), reasonRandom
}

// winningCell returns the lowest empty index that completes a line for player.
// board is a copy, so hypothetical marks never reach the engine.
func winningCell(board domain.Board, empty []int, player domain.Cell) (int, bool) {
	want := winnerOutcome(player)
	for _, index := range empty {
		board[index] = player
		if evaluateOutcome(board) == want {
			return index, true
		}
		board[index] = domain.Empty
	}
	return 0, false
}

func randomCell(empty []int, rnd random.Random) int {
	n := rnd.Intn(len(empty))
	if n < 0 || n >= len(empty) {
		n = 0
	}
	return empty[n]
}
