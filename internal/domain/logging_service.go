package domain

import (
	"context"
	"log/slog"
)

type loggingCalculatorService struct {
	logger *slog.Logger
	next   CalculatorService
}

func NewLoggingCalculatorService(logger *slog.Logger, next CalculatorService) CalculatorService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingCalculatorService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingCalculatorService) Describe(ctx context.Context, input DescribeInput) (Calculation, error) {
	calc, err := s.next.Describe(ctx, input)
	if err != nil {
		s.logger.DebugContext(ctx, "describe rejected", "ip", input.IP, "prefix", input.Prefix, "err", err.Error())
		return Calculation{}, err
	}

	s.logger.InfoContext(ctx, "address described", "ip", calc.Addr.String(), "network", calc.Network.String())
	return calc, nil
}

func (s *loggingCalculatorService) Split(ctx context.Context, input SplitInput) (SubnetPlan, error) {
	plan, err := s.next.Split(ctx, input)
	if err != nil {
		s.logger.DebugContext(ctx, "split rejected", "network", input.Network, "subnets", input.Subnets, "err", err.Error())
		return SubnetPlan{}, err
	}

	s.logger.InfoContext(ctx, "network split", "network", plan.Parent.String(), "count", plan.Count, "child_bits", plan.ChildBits)
	return plan, nil
}

type loggingHistoryService struct {
	logger *slog.Logger
	next   HistoryService
}

func NewLoggingHistoryService(logger *slog.Logger, next HistoryService) HistoryService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingHistoryService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingHistoryService) Record(ctx context.Context, sessionID SessionID, input RecordInput) (HistoryEntry, error) {
	entry, err := s.next.Record(ctx, sessionID, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "record history failed", "session_id", string(sessionID), "kind", input.Kind, "err", err.Error())
		return HistoryEntry{}, err
	}

	s.logger.DebugContext(ctx, "history recorded", "session_id", string(sessionID), "kind", entry.Kind, "id", string(entry.ID))
	return entry, nil
}

func (s *loggingHistoryService) List(ctx context.Context, sessionID SessionID) ([]HistoryEntry, int64, error) {
	entries, count, err := s.next.List(ctx, sessionID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list history failed", "session_id", string(sessionID), "err", err.Error())
	}
	return entries, count, err
}

func (s *loggingHistoryService) Purge(ctx context.Context, sessionID SessionID) error {
	err := s.next.Purge(ctx, sessionID)
	if err != nil {
		s.logger.ErrorContext(ctx, "purge history failed", "session_id", string(sessionID), "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "history purged", "session_id", string(sessionID))
	return nil
}
