package session

import (
	"encoding/json"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

func encode(s *model.MatchSession) ([]byte, error) {
	if s == nil || s.ID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*model.MatchSession, error) {
	var s model.MatchSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
