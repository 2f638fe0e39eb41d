package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/config"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/dependencies/random"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/transport/console"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/game"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newRootCmd() *cobra.Command {
	var cfgPath string
	rootCmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Play tic-tac-toe against the computer",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config")
	rootCmd.AddCommand(newPlayCmd(&cfgPath))
	rootCmd.AddCommand(newMoveCmd(&cfgPath))
	return rootCmd
}

func newPlayCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start an interactive game in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*cfgPath)
			if err != nil {
				return errors.WithMessage(err, "load config")
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return errors.WithMessage(err, "create logger")
			}
			defer func() {
				_ = logger.Sync()
			}()
			return play(cmd, cfg, logger)
		},
	}
}

func play(cmd *cobra.Command, cfg config.Config, logger *zap.Logger) error {
	engine := game.New(random.New(), logger)
	if err := engine.SetDifficulty(cfg.Difficulty); err != nil {
		return errors.WithMessage(err, "set difficulty")
	}
	sess := session.New(engine, logger)
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	finished := make(chan error, 1)
	go func() {
		c := console.New(sess, cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
			ThinkingDelay: cfg.ThinkingDelay,
			OpponentFirst: cfg.OpponentFirst,
		}, logger)
		finished <- c.Run(ctx)
	}()

	errGroup := new(errgroup.Group)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			logger.Info("captured signal", zap.Stringer("signal", s))
			cancel()
			return nil
		case err := <-finished:
			return errors.WithMessage(err, "run console")
		}
	})
	err := errGroup.Wait()
	// the console goroutine may still be blocked reading stdin; scores are atomic
	logger.Info("final scores", zap.Any("scores", sess.Scores()))
	return err
}

func newMoveCmd(cfgPath *string) *cobra.Command {
	var (
		board      string
		difficulty string
	)
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Print the cell the computer would play on a board",
		Long: `Board is 9 cells in row-major order: X for the human, O for the computer,
and '.', '_' or ' ' for an empty cell. The printed cell is numbered 1-9.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*cfgPath)
			if err != nil {
				return errors.WithMessage(err, "load config")
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return errors.WithMessage(err, "create logger")
			}
			defer func() {
				_ = logger.Sync()
			}()
			level := cfg.Difficulty
			if difficulty != "" {
				if level, err = domain.ParseDifficulty(difficulty); err != nil {
					return err
				}
			}
			index, err := adviseMove(random.New(), logger, board, level)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", index+1)
			return err
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "board cells, e.g. \"XX.O.....\"")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, harder or expert (default from config)")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

var emptyCellReplacer = strings.NewReplacer(".", " ", "_", " ")

func adviseMove(rnd random.Random, logger *zap.Logger, boardText string, level domain.DifficultyLevel) (int, error) {
	var board domain.Board
	if err := board.UnmarshalText([]byte(emptyCellReplacer.Replace(strings.ToUpper(boardText)))); err != nil {
		return 0, errors.WithMessage(err, "parse board")
	}
	engine := game.New(rnd, logger)
	if err := engine.Restore(board, level); err != nil {
		return 0, errors.WithMessage(err, "restore board")
	}
	if outcome := engine.EvaluateOutcome(); outcome.IsTerminal() {
		return 0, errors.WithMessagef(domain.ErrRoundOver, "board is already decided (%s)", outcome)
	}
	index, err := engine.ComputeOpponentMove()
	if err != nil {
		return 0, errors.WithMessage(err, "compute move")
	}
	return index, nil
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.WithMessagef(err, "parse log level '%s'", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	return cfg.Build()
}
