package session

import (
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/kiryu-dev/tic-tac-toe-bot/pkg/utils"
	"github.com/pkg/errors"
)

func EncodeSnapshot(snapshot domain.Snapshot) ([]byte, error) {
	data, err := utils.MarshalJson(snapshot)
	if err != nil {
		return nil, errors.WithMessage(err, "encode snapshot")
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (domain.Snapshot, error) {
	snapshot, err := utils.UnmarshalJson[domain.Snapshot](data)
	if err != nil {
		return domain.Snapshot{}, errors.WithMessage(err, "decode snapshot")
	}
	return snapshot, nil
}
