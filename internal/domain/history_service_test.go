package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type stubHistoryRepository struct {
	insertFn func(context.Context, SessionID, RecordInput) (HistoryEntry, error)
	listFn   func(context.Context, SessionID, int) ([]HistoryEntry, error)
	countFn  func(context.Context, SessionID) (int64, error)
	deleteFn func(context.Context, SessionID) (int64, error)
}

func (s stubHistoryRepository) Insert(ctx context.Context, id SessionID, input RecordInput) (HistoryEntry, error) {
	if s.insertFn == nil {
		return HistoryEntry{}, nil
	}
	return s.insertFn(ctx, id, input)
}

func (s stubHistoryRepository) ListBySession(ctx context.Context, id SessionID, limit int) ([]HistoryEntry, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, id, limit)
}

func (s stubHistoryRepository) CountBySession(ctx context.Context, id SessionID) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx, id)
}

func (s stubHistoryRepository) DeleteBySession(ctx context.Context, id SessionID) (int64, error) {
	if s.deleteFn == nil {
		return 0, nil
	}
	return s.deleteFn(ctx, id)
}

func TestHistoryServiceRejectsMissingSession(t *testing.T) {
	svc := NewHistoryService(stubHistoryRepository{})
	input := RecordInput{Kind: HistoryKindIPInfo, Input: "10.0.0.1/24", Result: json.RawMessage(`{}`)}

	if _, err := svc.Record(context.Background(), "", input); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Record: expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := svc.List(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("List: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.Purge(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Purge: expected ErrUnauthorized, got %v", err)
	}
}

func TestHistoryServiceRejectsUnknownKind(t *testing.T) {
	svc := NewHistoryService(stubHistoryRepository{})

	input := RecordInput{Kind: "dns-lookup", Input: "x", Result: json.RawMessage(`{}`)}
	if _, err := svc.Record(context.Background(), "s1", input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHistoryServiceListAppliesLimit(t *testing.T) {
	var gotLimit int
	svc := NewHistoryService(stubHistoryRepository{
		listFn: func(_ context.Context, _ SessionID, limit int) ([]HistoryEntry, error) {
			gotLimit = limit
			return []HistoryEntry{{ID: "e1"}}, nil
		},
		countFn: func(context.Context, SessionID) (int64, error) {
			return 250, nil
		},
	})

	entries, count, err := svc.List(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != historyListLimit {
		t.Fatalf("limit = %d, want %d", gotLimit, historyListLimit)
	}
	if len(entries) != 1 || count != 250 {
		t.Fatalf("entries = %d, count = %d", len(entries), count)
	}
}
