package domain

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidIndex      = errors.New("cell index out of range")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidCell       = errors.New("invalid cell value")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
	ErrBoardFull         = errors.New("board is full")
	ErrRoundOver         = errors.New("round is over")
)

const BoardSize = 9

type Cell byte

const (
	Empty    = Cell(' ')
	Human    = Cell('X')
	Opponent = Cell('O')
)

func (c Cell) IsValid() bool {
	switch c {
	case Empty, Human, Opponent:
		return true
	default:
		return false
	}
}

// IsPlayer reports whether c is a mark a player can put on the board.
func (c Cell) IsPlayer() bool {
	return c == Human || c == Opponent
}

func (c Cell) String() string {
	return string(c)
}

// Board is row-major: index = row*3 + col.
type Board [BoardSize]Cell

func NewBoard() Board {
	var board Board
	for i := range board {
		board[i] = Empty
	}
	return board
}

func ValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

func (b Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range b {
		if cell == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

func (b Board) MarshalText() ([]byte, error) {
	text := make([]byte, BoardSize)
	for i, cell := range b {
		if !cell.IsValid() {
			return nil, errors.WithMessagef(ErrInvalidCell, "cell %d holds %q", i, byte(cell))
		}
		text[i] = byte(cell)
	}
	return text, nil
}

func (b *Board) UnmarshalText(text []byte) error {
	if len(text) != BoardSize {
		return errors.Errorf("board must have %d cells, got %d", BoardSize, len(text))
	}
	var board Board
	for i, ch := range text {
		cell := Cell(ch)
		if !cell.IsValid() {
			return errors.WithMessagef(ErrInvalidCell, "cell %d holds %q", i, ch)
		}
		board[i] = cell
	}
	*b = board
	return nil
}

// Outcome is derived from the board on every call and never stored.
type Outcome byte

const (
	InProgress = Outcome(iota)
	Draw
	HumanWins
	OpponentWins
)

func (o Outcome) IsTerminal() bool {
	return o != InProgress
}

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case Draw:
		return "draw"
	case HumanWins:
		return "human wins"
	case OpponentWins:
		return "opponent wins"
	default:
		return "unknown"
	}
}

// DifficultyLevel is ordered by how much lookahead the opponent uses.
type DifficultyLevel byte

const (
	Easy = DifficultyLevel(iota)
	Harder
	Expert
)

var difficultyNames = [...]string{
	Easy:   "easy",
	Harder: "harder",
	Expert: "expert",
}

func DifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{Easy, Harder, Expert}
}

func ParseDifficulty(s string) (DifficultyLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for level, levelName := range difficultyNames {
		if levelName == name {
			return DifficultyLevel(level), nil
		}
	}
	return Easy, errors.WithMessagef(ErrInvalidDifficulty, "unknown difficulty '%s'", s)
}

func (d DifficultyLevel) IsValid() bool {
	return int(d) < len(difficultyNames)
}

func (d DifficultyLevel) String() string {
	if !d.IsValid() {
		return "unknown"
	}
	return difficultyNames[d]
}

func (d DifficultyLevel) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, errors.WithMessagef(ErrInvalidDifficulty, "level %d", byte(d))
	}
	return []byte(difficultyNames[d]), nil
}

func (d *DifficultyLevel) UnmarshalText(text []byte) error {
	level, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = level
	return nil
}

type GameUseCase interface {
	Clear()
	SetMove(player Cell, index int) (bool, error)
	Occupant(index int) (Cell, error)
	Board() Board
	EvaluateOutcome() Outcome
	ComputeOpponentMove() (int, error)
	Difficulty() DifficultyLevel
	SetDifficulty(level DifficultyLevel) error
	Restore(board Board, level DifficultyLevel) error
}
