package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	prompt   = "> "
	helpText = `Commands:
  1-9         put your mark on a cell
  n           start a new game
  d <level>   set difficulty: easy, harder, expert
  s           print the current state as JSON
  q           quit
`
)

type Options struct {
	ThinkingDelay time.Duration
	OpponentFirst bool
}

type console struct {
	session domain.SessionUseCase
	scanner *bufio.Scanner
	out     io.Writer
	opts    Options
	logger  *zap.Logger
}

func New(session domain.SessionUseCase, in io.Reader, out io.Writer, opts Options, logger *zap.Logger) *console {
	return &console{
		session: session,
		scanner: bufio.NewScanner(in),
		out:     out,
		opts:    opts,
		logger:  logger,
	}
}

// Run reads commands until quit, end of input or ctx cancellation.
func (c *console) Run(ctx context.Context) error {
	c.printf("Tic-tac-toe against the computer. Type h for help.\n")
	if err := c.newRound(ctx); err != nil {
		return errors.WithMessage(err, "start round")
	}
	for {
		c.printf(prompt)
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return errors.WithMessage(err, "read command")
			}
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		quit, err := c.handle(ctx, strings.TrimSpace(c.scanner.Text()))
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case err != nil:
			return err
		case quit:
			return nil
		}
	}
}

func (c *console) handle(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "q", "quit":
		c.printScores()
		return true, nil
	case "h", "help", "?":
		c.printf(helpText)
	case "n", "new":
		if err := c.newRound(ctx); err != nil {
			return false, errors.WithMessage(err, "start round")
		}
	case "s", "state":
		c.printSnapshot()
	case "d", "difficulty":
		c.changeDifficulty(fields[1:])
	default:
		cell, err := strconv.Atoi(fields[0])
		if err != nil || cell < 1 || cell > domain.BoardSize {
			c.printf("Unknown command %q. Type h for help.\n", fields[0])
			return false, nil
		}
		if err := c.humanTurn(ctx, cell-1); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (c *console) newRound(ctx context.Context) error {
	c.session.NewRound()
	if c.opts.OpponentFirst {
		c.printf("The computer goes first.\n")
		return c.opponentTurn(ctx)
	}
	c.printBoard()
	c.printf("You go first.\n")
	return nil
}

func (c *console) humanTurn(ctx context.Context, index int) error {
	result, err := c.session.PlayHuman(index)
	switch {
	case errors.Is(err, domain.ErrRoundOver):
		c.printf("The game is over. Type n to start a new one.\n")
		return nil
	case err != nil:
		return errors.WithMessage(err, "play human move")
	}
	if !result.Accepted {
		c.printf("Cell %d is taken, pick another one.\n", index+1)
		return nil
	}
	c.printBoard()
	if result.Outcome.IsTerminal() {
		c.printOutcome(result.Outcome)
		return nil
	}
	return c.opponentTurn(ctx)
}

func (c *console) opponentTurn(ctx context.Context) error {
	if c.opts.ThinkingDelay > 0 {
		c.printf("The computer is thinking...\n")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.ThinkingDelay):
		}
	}
	result, err := c.session.PlayOpponent()
	if err != nil {
		return errors.WithMessage(err, "play opponent move")
	}
	c.printBoard()
	c.printf("The computer took cell %d.\n", result.Index+1)
	if result.Outcome.IsTerminal() {
		c.printOutcome(result.Outcome)
		return nil
	}
	c.printf("It's your turn.\n")
	return nil
}

func (c *console) changeDifficulty(args []string) {
	if len(args) != 1 {
		c.printf("Difficulty is %s. Usage: d <easy|harder|expert>\n", c.session.Difficulty())
		return
	}
	level, err := domain.ParseDifficulty(args[0])
	if err != nil {
		c.printf("Unknown difficulty %q.\n", args[0])
		return
	}
	if err := c.session.SetDifficulty(level); err != nil {
		c.logger.Warn("set difficulty", zap.Error(err))
		return
	}
	c.printf("Difficulty set to %s.\n", level)
}

func (c *console) printSnapshot() {
	data, err := session.EncodeSnapshot(c.session.Snapshot())
	if err != nil {
		c.logger.Warn("encode snapshot", zap.Error(err))
		return
	}
	c.printf("%s\n", data)
}

func (c *console) printOutcome(outcome domain.Outcome) {
	switch outcome {
	case domain.Draw:
		c.printf("It's a tie!\n")
	case domain.HumanWins:
		c.printf("You won!\n")
	case domain.OpponentWins:
		c.printf("The computer won!\n")
	}
	c.printScores()
	c.printf("Type n to play again.\n")
}

func (c *console) printScores() {
	scores := c.session.Scores()
	c.printf("Human: %d  Computer: %d  Ties: %d\n", scores.HumanWins, scores.OpponentWins, scores.Ties)
}

// printBoard shows the cell number in place of empty cells.
func (c *console) printBoard() {
	var sb strings.Builder
	for i, cell := range c.session.Board() {
		mark := string(cell)
		if cell == domain.Empty {
			mark = strconv.Itoa(i + 1)
		}
		if (i+1)%3 == 0 {
			sb.WriteString(mark)
			sb.WriteString("\n")
			if i < 6 {
				sb.WriteString("--+---+--\n")
			}
		} else {
			sb.WriteString(mark)
			sb.WriteString(" | ")
		}
	}
	c.printf("%s", sb.String())
}

func (c *console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.logger.Debug("write to console", zap.Error(err))
	}
}
