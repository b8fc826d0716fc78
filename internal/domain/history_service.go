package domain

import (
	"context"
	"fmt"
)

// historyListLimit caps how many entries a session can page back through.
const historyListLimit = 100

type historyService struct {
	history HistoryRepository
}

func NewHistoryService(history HistoryRepository) HistoryService {
	return &historyService{history: history}
}

func (s *historyService) Record(ctx context.Context, sessionID SessionID, input RecordInput) (HistoryEntry, error) {
	if sessionID == "" {
		return HistoryEntry{}, fmt.Errorf("%w: missing session", ErrUnauthorized)
	}
	if input.Kind != HistoryKindIPInfo && input.Kind != HistoryKindSubnetting {
		return HistoryEntry{}, fmt.Errorf("%w: unknown history kind %q", ErrInvalidInput, input.Kind)
	}

	return s.history.Insert(ctx, sessionID, input)
}

func (s *historyService) List(ctx context.Context, sessionID SessionID) ([]HistoryEntry, int64, error) {
	if sessionID == "" {
		return nil, 0, fmt.Errorf("%w: missing session", ErrUnauthorized)
	}

	entries, err := s.history.ListBySession(ctx, sessionID, historyListLimit)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.history.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	return entries, count, nil
}

func (s *historyService) Purge(ctx context.Context, sessionID SessionID) error {
	if sessionID == "" {
		return fmt.Errorf("%w: missing session", ErrUnauthorized)
	}

	_, err := s.history.DeleteBySession(ctx, sessionID)
	return err
}
