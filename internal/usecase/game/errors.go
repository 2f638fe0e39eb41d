package game

import (
	"github.com/pkg/errors"
)

var errUnexpectedDifficulty = errors.New("unexpected difficulty level")
