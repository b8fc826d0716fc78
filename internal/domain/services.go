package domain

import "context"

type CalculatorService interface {
	Describe(ctx context.Context, input DescribeInput) (Calculation, error)
	Split(ctx context.Context, input SplitInput) (SubnetPlan, error)
}

type HistoryService interface {
	Record(ctx context.Context, sessionID SessionID, input RecordInput) (HistoryEntry, error)
	List(ctx context.Context, sessionID SessionID) ([]HistoryEntry, int64, error)
	Purge(ctx context.Context, sessionID SessionID) error
}
