package http

import (
	"encoding/json"
	"time"

	"github.com/Flarenzy/subnetcalc/internal/domain"
	"github.com/Flarenzy/subnetcalc/internal/ipv4"
)

// IPInfoRequest is the payload accepted when describing an address.
// Prefix defaults to 24 when omitted.
type IPInfoRequest struct {
	IP     string `json:"ip" example:"192.168.1.10"`
	Prefix *int   `json:"prefix" example:"24"`
}

// SubnettingRequest asks for a network split into equal subnets.
type SubnettingRequest struct {
	Network string `json:"network" example:"10.0.0.0/24" validate:"required"`
	Subnets int    `json:"subnets" example:"4" validate:"required"`
}

// CalculationResponse mirrors the wire contract of the calculator: host_min
// and host_max are null when the prefix has no usable host range.
type CalculationResponse struct {
	IP           string  `json:"ip" example:"192.168.1.10"`
	Prefix       int     `json:"prefix" example:"24"`
	Octets       [4]int  `json:"octets"`
	IPClass      string  `json:"ip_class" example:"Class C"`
	NetworkType  string  `json:"network_type" example:"Private (192.168.0.0/16)"`
	SubnetMask   string  `json:"subnet_mask" example:"255.255.255.0"`
	WildcardMask string  `json:"wildcard_mask" example:"0.0.0.255"`
	NetworkID    string  `json:"network_id" example:"192.168.1.0/24"`
	Broadcast    string  `json:"broadcast" example:"192.168.1.255"`
	HostMin      *string `json:"host_min" example:"192.168.1.1"`
	HostMax      *string `json:"host_max" example:"192.168.1.254"`
	TotalHosts   uint64  `json:"total_hosts" example:"256"`
	UsableHosts  uint64  `json:"usable_hosts" example:"254"`
}

// SubnettingResponse is the breakdown of one split request.
type SubnettingResponse struct {
	Network     string                `json:"network" example:"10.0.0.0/24"`
	Requested   int                   `json:"requested" example:"3"`
	Count       int                   `json:"count" example:"4"`
	ChildPrefix int                   `json:"child_prefix" example:"26"`
	Subnets     []CalculationResponse `json:"subnets"`
}

type HistoryEntryResponse struct {
	ID        string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Kind      string          `json:"kind" example:"ip-info"`
	Input     string          `json:"input" example:"192.168.1.10/24"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at" example:"2024-05-10T15:04:05Z"`
}

type HistoryResponse struct {
	History []HistoryEntryResponse `json:"history"`
	Count   int64                  `json:"count" example:"7"`
}

// UserResponse describes the caller's session.
type UserResponse struct {
	SessionID     string    `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt     time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
	Lookups       int64     `json:"lookups" example:"7"`
	Authenticated bool      `json:"authenticated" example:"false"`
	Subject       string    `json:"subject,omitempty" example:"user@example.com"`
}

// ExportResponse is the full session dump offered as a download.
type ExportResponse struct {
	Session    UserResponse           `json:"session"`
	History    []HistoryEntryResponse `json:"history"`
	ExportedAt time.Time              `json:"exported_at"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"octet 4 must be between 0 and 255"`
}

func calculationToResponse(calc domain.Calculation) CalculationResponse {
	octets := ipv4.FromAddr(calc.Addr)

	resp := CalculationResponse{
		IP:           calc.Addr.String(),
		Prefix:       calc.Prefix,
		Octets:       [4]int(octets),
		IPClass:      calc.Class,
		NetworkType:  calc.NetworkType,
		SubnetMask:   calc.Mask.String(),
		WildcardMask: calc.Wildcard.String(),
		NetworkID:    calc.Network.String(),
		Broadcast:    calc.Broadcast.String(),
		TotalHosts:   calc.TotalHosts,
		UsableHosts:  calc.UsableHosts,
	}

	if calc.HostMin.IsValid() {
		hostMin := calc.HostMin.String()
		resp.HostMin = &hostMin
	}
	if calc.HostMax.IsValid() {
		hostMax := calc.HostMax.String()
		resp.HostMax = &hostMax
	}

	return resp
}

func planToResponse(plan domain.SubnetPlan) SubnettingResponse {
	subnets := make([]CalculationResponse, 0, len(plan.Subnets))
	for _, s := range plan.Subnets {
		subnets = append(subnets, calculationToResponse(s))
	}

	return SubnettingResponse{
		Network:     plan.Parent.String(),
		Requested:   plan.Requested,
		Count:       plan.Count,
		ChildPrefix: plan.ChildBits,
		Subnets:     subnets,
	}
}

func historyToResponse(entries []domain.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			ID:        string(e.ID),
			Kind:      e.Kind,
			Input:     e.Input,
			Result:    e.Result,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
