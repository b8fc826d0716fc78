// Terminal rendering for subnetctl: panels, notices, and subnet grids.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Flarenzy/subnetcalc/pkg/client"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(15)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	gridStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func Success(msg string) string {
	return successStyle.Render("✓ " + msg)
}

func Failure(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

func row(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value)
}

func orDash(s *string) string {
	if s == nil {
		return "—"
	}
	return *s
}

// Calculation renders one address description as a panel.
func Calculation(info *client.IPInfo) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s/%d", info.IP, info.Prefix)),
		row("Class", info.Class),
		row("Type", info.NetworkType),
		row("Network", info.NetworkID),
		row("Broadcast", info.Broadcast),
		row("Subnet mask", info.SubnetMask),
		row("Wildcard mask", info.WildcardMask),
		row("Host range", fmt.Sprintf("%s – %s", orDash(info.HostMin), orDash(info.HostMax))),
		row("Hosts", fmt.Sprintf("%d total, %d usable", info.TotalHosts, info.UsableHosts)),
		row("Binary", strings.Join(info.BinaryOctets[:], ".")),
	}
	return gridStyle.Render(strings.Join(lines, "\n"))
}

// Subnets renders a split plan as a grid of child networks.
func Subnets(plan *client.SubnetPlan) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s split into %d x /%d", plan.Network, plan.Count, plan.ChildPrefix)))
	if plan.Requested != plan.Count {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (requested %d, rounded up)", plan.Requested)))
	}
	b.WriteString("\n")

	for i, s := range plan.Subnets {
		line := fmt.Sprintf("%3d  %-18s  broadcast %-15s  hosts %s – %s",
			i+1, s.NetworkID, s.Broadcast, orDash(s.HostMin), orDash(s.HostMax))
		b.WriteString(valueStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// HistoryList renders the session history, newest first.
func HistoryList(h *client.History) string {
	if len(h.History) == 0 {
		return dimStyle.Render("history is empty")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("History (%d total)", h.Count)))
	b.WriteString("\n")
	for _, e := range h.History {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			dimStyle.Render(e.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			labelStyle.Render(e.Kind),
			valueStyle.Render(e.Input)))
	}
	return b.String()
}

// SessionInfo renders the /api/user payload.
func SessionInfo(s *client.Session) string {
	who := "anonymous"
	if s.Authenticated {
		who = s.Subject
	}
	lines := []string{
		row("Session", s.SessionID),
		row("Started", s.CreatedAt.Local().Format("2006-01-02 15:04:05")),
		row("Lookups", fmt.Sprintf("%d", s.Lookups)),
		row("User", who),
	}
	return gridStyle.Render(strings.Join(lines, "\n"))
}
