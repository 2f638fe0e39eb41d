package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/dependencies/mocks"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/transport/console"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/game"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/session"
)

func run(t *testing.T, input string, opts console.Options, rnd *mocks.MockRandom) (string, domain.SessionUseCase) {
	t.Helper()
	engine := game.New(rnd, zap.NewNop())
	s := session.New(engine, zap.NewNop())
	var out bytes.Buffer
	c := console.New(s, strings.NewReader(input), &out, opts, zap.NewNop())
	require.NoError(t, c.Run(context.Background()))
	return out.String(), s
}

func TestRun_PrintsBoardAndQuits(t *testing.T) {
	out, _ := run(t, "q\n", console.Options{}, mocks.NewMockRandom())
	assert.Contains(t, out, "1 | 2 | 3\n--+---+--\n4 | 5 | 6\n--+---+--\n7 | 8 | 9\n")
	assert.Contains(t, out, "You go first.")
	assert.Contains(t, out, "Human: 0  Computer: 0  Ties: 0")
}

func TestRun_HumanThenComputer(t *testing.T) {
	rnd := mocks.NewMockRandom()
	// empty cells after the centre: 1,2,3,4,6,7,8,9 -> index 0 is cell 1
	rnd.QueueIntn(0)
	out, s := run(t, "5\n", console.Options{}, rnd)

	assert.Contains(t, out, "O | 2 | 3\n--+---+--\n4 | X | 6\n")
	assert.Contains(t, out, "The computer took cell 1.")
	assert.Contains(t, out, "It's your turn.")
	assert.Equal(t, domain.Human, s.Board()[4])
	assert.Equal(t, domain.Opponent, s.Board()[0])
}

func TestRun_TakenCellAndUnknownInput(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(0)
	out, _ := run(t, "5\n5\n1\n0\nfoo\n", console.Options{}, rnd)

	assert.Contains(t, out, "Cell 5 is taken, pick another one.")
	assert.Contains(t, out, "Cell 1 is taken, pick another one.")
	assert.Contains(t, out, `Unknown command "0".`)
	assert.Contains(t, out, `Unknown command "foo".`)
}

func TestRun_ComputerWinsAndRoundLocks(t *testing.T) {
	// X O X
	// X O X
	// O O _
	// the computer plays 2 at random, blocks 7, plays 5 at random, then wins on 8
	out, s := run(t, "1\n4\n3\n6\n9\n", console.Options{}, mocks.NewMockRandom())

	assert.Contains(t, out, "The computer took cell 7.")
	assert.Contains(t, out, "The computer took cell 8.")
	assert.Contains(t, out, "The computer won!")
	assert.Contains(t, out, "Human: 0  Computer: 1  Ties: 0")
	assert.Contains(t, out, "The game is over. Type n to start a new one.")
	assert.True(t, s.IsOver())
	assert.Equal(t, domain.OpponentWins, s.Outcome())
}

func TestRun_NewRoundAndSnapshot(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(0)
	out, s := run(t, "5\nn\ns\n", console.Options{}, rnd)
	assert.Contains(t, out, `"board":"         "`)
	assert.Contains(t, out, `"difficulty":"expert"`)
	assert.Equal(t, domain.NewBoard(), s.Board())
}

func TestRun_OpponentFirst(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(4)
	out, s := run(t, "", console.Options{OpponentFirst: true}, rnd)
	assert.Contains(t, out, "The computer goes first.")
	assert.Contains(t, out, "The computer took cell 5.")
	assert.Equal(t, domain.Opponent, s.Board()[4])
}

func TestRun_DifficultyUsage(t *testing.T) {
	out, s := run(t, "d\nd nightmare\nd easy\n", console.Options{}, mocks.NewMockRandom())
	assert.Contains(t, out, "Difficulty is expert.")
	assert.Contains(t, out, `Unknown difficulty "nightmare".`)
	assert.Contains(t, out, "Difficulty set to easy.")
	assert.Equal(t, domain.Easy, s.Difficulty())
}

func TestRun_CancelledWhileThinking(t *testing.T) {
	engine := game.New(mocks.NewMockRandom(), zap.NewNop())
	s := session.New(engine, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	c := console.New(s, strings.NewReader("5\n"), &out, console.Options{ThinkingDelay: time.Hour}, zap.NewNop())
	require.NoError(t, c.Run(ctx))
	assert.Contains(t, out.String(), "The computer is thinking...")
	assert.Equal(t, domain.Human, s.Board()[4])
	assert.Len(t, s.Board().EmptyCells(), 8)
}
