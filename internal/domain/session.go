package domain

type Scores struct {
	HumanWins    uint32 `json:"human_wins"`
	OpponentWins uint32 `json:"opponent_wins"`
	Ties         uint32 `json:"ties"`
}

// Snapshot is everything a front end needs to survive a process restart.
type Snapshot struct {
	Board      Board           `json:"board"`
	Difficulty DifficultyLevel `json:"difficulty"`
	GameOver   bool            `json:"game_over"`
	Scores     Scores          `json:"scores"`
}

type TurnResult struct {
	Player   Cell
	Index    int
	Accepted bool
	Outcome  Outcome
}

type SessionUseCase interface {
	NewRound()
	RoundID() string
	PlayHuman(index int) (TurnResult, error)
	PlayOpponent() (TurnResult, error)
	IsOver() bool
	Board() Board
	Outcome() Outcome
	Difficulty() DifficultyLevel
	SetDifficulty(level DifficultyLevel) error
	Scores() Scores
	Snapshot() Snapshot
	Restore(snapshot Snapshot) error
}
