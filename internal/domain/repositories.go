package domain

import "context"

type HistoryRepository interface {
	Insert(ctx context.Context, sessionID SessionID, input RecordInput) (HistoryEntry, error)
	ListBySession(ctx context.Context, sessionID SessionID, limit int) ([]HistoryEntry, error)
	CountBySession(ctx context.Context, sessionID SessionID) (int64, error)
	DeleteBySession(ctx context.Context, sessionID SessionID) (int64, error)
}
