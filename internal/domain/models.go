package domain

import (
	"encoding/json"
	"net/netip"
	"time"
)

type SessionID string

type HistoryEntryID string

const (
	HistoryKindIPInfo     = "ip-info"
	HistoryKindSubnetting = "subnetting"
)

// Calculation is the full description of one address inside one prefix.
// HostMin and HostMax are the zero Addr when the range has no usable hosts
// (/31 and /32).
type Calculation struct {
	Addr        netip.Addr
	Prefix      int
	Class       string
	NetworkType string
	Mask        netip.Addr
	Wildcard    netip.Addr
	Network     netip.Prefix
	Broadcast   netip.Addr
	HostMin     netip.Addr
	HostMax     netip.Addr
	TotalHosts  uint64
	UsableHosts uint64
}

// SubnetPlan is the result of splitting a network into equal children.
type SubnetPlan struct {
	Parent    netip.Prefix
	Requested int
	Count     int
	ChildBits int
	Subnets   []Calculation
}

type HistoryEntry struct {
	ID        HistoryEntryID
	SessionID SessionID
	Kind      string
	Input     string
	Result    json.RawMessage
	CreatedAt time.Time
}
