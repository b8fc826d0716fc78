package domain

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	clone := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clone.AddAttrs(attr)
		return true
	})
	h.records = append(h.records, clone)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(string) slog.Handler {
	return h
}

type stubCalculator struct {
	describeFn func(context.Context, DescribeInput) (Calculation, error)
	splitFn    func(context.Context, SplitInput) (SubnetPlan, error)
}

func (s stubCalculator) Describe(ctx context.Context, input DescribeInput) (Calculation, error) {
	if s.describeFn == nil {
		return Calculation{}, nil
	}
	return s.describeFn(ctx, input)
}

func (s stubCalculator) Split(ctx context.Context, input SplitInput) (SubnetPlan, error) {
	if s.splitFn == nil {
		return SubnetPlan{}, nil
	}
	return s.splitFn(ctx, input)
}

type stubHistory struct {
	recordFn func(context.Context, SessionID, RecordInput) (HistoryEntry, error)
	listFn   func(context.Context, SessionID) ([]HistoryEntry, int64, error)
	purgeFn  func(context.Context, SessionID) error
}

func (s stubHistory) Record(ctx context.Context, id SessionID, input RecordInput) (HistoryEntry, error) {
	if s.recordFn == nil {
		return HistoryEntry{}, nil
	}
	return s.recordFn(ctx, id, input)
}

func (s stubHistory) List(ctx context.Context, id SessionID) ([]HistoryEntry, int64, error) {
	if s.listFn == nil {
		return nil, 0, nil
	}
	return s.listFn(ctx, id)
}

func (s stubHistory) Purge(ctx context.Context, id SessionID) error {
	if s.purgeFn == nil {
		return nil
	}
	return s.purgeFn(ctx, id)
}

func TestLoggingCalculatorPassesThroughResult(t *testing.T) {
	handler := &captureHandler{}
	inner := NewCalculatorService()
	svc := NewLoggingCalculatorService(slog.New(handler), inner)

	calc, err := svc.Describe(context.Background(), DescribeInput{IP: "10.0.0.1", Prefix: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calc.Network.String() != "10.0.0.0/8" {
		t.Fatalf("network = %s", calc.Network)
	}
	if len(handler.records) != 1 || handler.records[0].Message != "address described" {
		t.Fatalf("expected one 'address described' record, got %+v", handler.records)
	}
}

func TestLoggingHistoryLogsFailures(t *testing.T) {
	handler := &captureHandler{}
	boom := errors.New("boom")
	svc := NewLoggingHistoryService(slog.New(handler), stubHistory{
		purgeFn: func(context.Context, SessionID) error { return boom },
	})

	if err := svc.Purge(context.Background(), SessionID("s1")); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if len(handler.records) != 1 || handler.records[0].Level != slog.LevelError {
		t.Fatalf("expected one error record, got %+v", handler.records)
	}
}

func TestLoggingDecoratorsTolerateNilLogger(t *testing.T) {
	inner := stubCalculator{}
	if got := NewLoggingCalculatorService(nil, inner); got == nil {
		t.Fatal("expected inner service back")
	}
	if got := NewLoggingHistoryService(nil, stubHistory{}); got == nil {
		t.Fatal("expected inner service back")
	}
}
