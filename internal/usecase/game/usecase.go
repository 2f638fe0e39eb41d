package game

import (
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/dependencies/random"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// useCase owns one board. It is not safe for concurrent use.
type useCase struct {
	board      domain.Board
	difficulty domain.DifficultyLevel
	random     random.Random
	logger     *zap.Logger
}

func New(rnd random.Random, logger *zap.Logger) *useCase {
	return &useCase{
		board:      domain.NewBoard(),
		difficulty: domain.Expert,
		random:     rnd,
		logger:     logger,
	}
}

func (u *useCase) Clear() {
	u.board = domain.NewBoard()
}

func (u *useCase) SetMove(player domain.Cell, index int) (bool, error) {
	if !player.IsPlayer() {
		return false, errors.WithMessagef(domain.ErrInvalidPlayer, "player %q", byte(player))
	}
	if !domain.ValidIndex(index) {
		return false, errors.WithMessagef(domain.ErrInvalidIndex, "index %d", index)
	}
	if u.board[index] != domain.Empty {
		return false, nil
	}
	u.board[index] = player
	return true, nil
}

func (u *useCase) Occupant(index int) (domain.Cell, error) {
	if !domain.ValidIndex(index) {
		return domain.Empty, errors.WithMessagef(domain.ErrInvalidIndex, "index %d", index)
	}
	return u.board[index], nil
}

func (u *useCase) Board() domain.Board {
	return u.board
}

func (u *useCase) EvaluateOutcome() domain.Outcome {
	return evaluateOutcome(u.board)
}

func (u *useCase) Difficulty() domain.DifficultyLevel {
	return u.difficulty
}

func (u *useCase) SetDifficulty(level domain.DifficultyLevel) error {
	if !level.IsValid() {
		return errors.WithMessagef(domain.ErrInvalidDifficulty, "level %d", byte(level))
	}
	u.difficulty = level
	return nil
}

func (u *useCase) Restore(board domain.Board, level domain.DifficultyLevel) error {
	for i, cell := range board {
		if !cell.IsValid() {
			return errors.WithMessagef(domain.ErrInvalidCell, "cell %d holds %q", i, byte(cell))
		}
	}
	if err := u.SetDifficulty(level); err != nil {
		return errors.WithMessage(err, "restore difficulty")
	}
	u.board = board
	return nil
}

// ComputeOpponentMove only selects a cell; the caller applies it with SetMove.
func (u *useCase) ComputeOpponentMove() (int, error) {
	empty := u.board.EmptyCells()
	if len(empty) == 0 {
		return 0, domain.ErrBoardFull
	}
	pick, err := strategyFor(u.difficulty)
	if err != nil {
		return 0, errors.WithMessage(err, "select strategy")
	}
	index, reason := pick(u.board, empty, u.random)
	u.logger.Debug("opponent move selected",
		zap.Stringer("difficulty", u.difficulty),
		zap.Int("index", index),
		zap.String("reason", reason),
	)
	return index, nil
}

var winConditions = [8][3]uint8{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// evaluateOutcome scans rows, then columns, then diagonals and reports the
// owner of the first complete line.
func evaluateOutcome(board domain.Board) domain.Outcome {
	for _, condition := range winConditions {
		first := board[condition[0]]
		if first == domain.Empty {
			continue
		}
		if board[condition[1]] == first && board[condition[2]] == first {
			return winnerOutcome(first)
		}
	}
	for _, cell := range board {
		if cell == domain.Empty {
			return domain.InProgress
		}
	}
	return domain.Draw
}

func winnerOutcome(cell domain.Cell) domain.Outcome {
	if cell == domain.Human {
		return domain.HumanWins
	}
	return domain.OpponentWins
}
