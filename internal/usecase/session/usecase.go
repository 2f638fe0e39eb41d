package session

import (
	"github.com/google/uuid"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type scoreboard struct {
	humanWins    *atomic.Uint32
	opponentWins *atomic.Uint32
	ties         *atomic.Uint32
}

func newScoreboard() scoreboard {
	return scoreboard{
		humanWins:    atomic.NewUint32(0),
		opponentWins: atomic.NewUint32(0),
		ties:         atomic.NewUint32(0),
	}
}

func (s scoreboard) load() domain.Scores {
	return domain.Scores{
		HumanWins:    s.humanWins.Load(),
		OpponentWins: s.opponentWins.Load(),
		Ties:         s.ties.Load(),
	}
}

func (s scoreboard) store(scores domain.Scores) {
	s.humanWins.Store(scores.HumanWins)
	s.opponentWins.Store(scores.OpponentWins)
	s.ties.Store(scores.Ties)
}

// useCase sequences the turns of one engine. Only Scores may be called
// concurrently with the other methods.
type useCase struct {
	engine  domain.GameUseCase
	roundID string
	over    bool
	scores  scoreboard
	newID   func() string
	logger  *zap.Logger
}

type Option func(u *useCase)

func WithRoundIDs(gen func() string) Option {
	return func(u *useCase) {
		u.newID = gen
	}
}

func WithScores(scores domain.Scores) Option {
	return func(u *useCase) {
		u.scores.store(scores)
	}
}

func New(engine domain.GameUseCase, logger *zap.Logger, opts ...Option) *useCase {
	u := &useCase{
		engine: engine,
		scores: newScoreboard(),
		newID:  uuid.NewString,
		logger: logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.NewRound()
	return u
}

func (u *useCase) NewRound() {
	u.engine.Clear()
	u.over = false
	u.roundID = u.newID()
	u.logger.Info("round started",
		zap.String("round", u.roundID),
		zap.Stringer("difficulty", u.engine.Difficulty()),
	)
}

func (u *useCase) RoundID() string {
	return u.roundID
}

func (u *useCase) PlayHuman(index int) (domain.TurnResult, error) {
	if u.over {
		return domain.TurnResult{}, errors.WithMessage(domain.ErrRoundOver, "human move")
	}
	ok, err := u.engine.SetMove(domain.Human, index)
	if err != nil {
		return domain.TurnResult{}, errors.WithMessage(err, "set human move")
	}
	return u.afterMove(domain.Human, index, ok), nil
}

func (u *useCase) PlayOpponent() (domain.TurnResult, error) {
	if u.over {
		return domain.TurnResult{}, errors.WithMessage(domain.ErrRoundOver, "opponent move")
	}
	index, err := u.engine.ComputeOpponentMove()
	if err != nil {
		return domain.TurnResult{}, errors.WithMessage(err, "compute opponent move")
	}
	ok, err := u.engine.SetMove(domain.Opponent, index)
	if err != nil {
		return domain.TurnResult{}, errors.WithMessage(err, "set opponent move")
	}
	if !ok {
		return domain.TurnResult{}, errors.Errorf("opponent selected occupied cell %d", index)
	}
	return u.afterMove(domain.Opponent, index, ok), nil
}

func (u *useCase) afterMove(player domain.Cell, index int, accepted bool) domain.TurnResult {
	outcome := u.engine.EvaluateOutcome()
	if accepted && outcome.IsTerminal() {
		u.finish(outcome)
	}
	return domain.TurnResult{
		Player:   player,
		Index:    index,
		Accepted: accepted,
		Outcome:  outcome,
	}
}

func (u *useCase) finish(outcome domain.Outcome) {
	u.over = true
	switch outcome {
	case domain.HumanWins:
		u.scores.humanWins.Inc()
	case domain.OpponentWins:
		u.scores.opponentWins.Inc()
	case domain.Draw:
		u.scores.ties.Inc()
	}
	u.logger.Info("round finished",
		zap.String("round", u.roundID),
		zap.Stringer("outcome", outcome),
		zap.Any("scores", u.scores.load()),
	)
}

func (u *useCase) IsOver() bool {
	return u.over
}

func (u *useCase) Board() domain.Board {
	return u.engine.Board()
}

func (u *useCase) Outcome() domain.Outcome {
	return u.engine.EvaluateOutcome()
}

func (u *useCase) Difficulty() domain.DifficultyLevel {
	return u.engine.Difficulty()
}

func (u *useCase) SetDifficulty(level domain.DifficultyLevel) error {
	if err := u.engine.SetDifficulty(level); err != nil {
		return errors.WithMessage(err, "set difficulty")
	}
	u.logger.Info("difficulty changed",
		zap.String("round", u.roundID),
		zap.Stringer("difficulty", level),
	)
	return nil
}

func (u *useCase) Scores() domain.Scores {
	return u.scores.load()
}

func (u *useCase) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Board:      u.engine.Board(),
		Difficulty: u.engine.Difficulty(),
		GameOver:   u.over,
		Scores:     u.scores.load(),
	}
}

// Restore continues the saved round under a new round id.
func (u *useCase) Restore(snapshot domain.Snapshot) error {
	if err := u.engine.Restore(snapshot.Board, snapshot.Difficulty); err != nil {
		return errors.WithMessage(err, "restore engine")
	}
	u.over = snapshot.GameOver || u.engine.EvaluateOutcome().IsTerminal()
	u.scores.store(snapshot.Scores)
	u.roundID = u.newID()
	u.logger.Info("round restored",
		zap.String("round", u.roundID),
		zap.Bool("game over", u.over),
	)
	return nil
}
