package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExportToJSON writes a report to disk, creating parent directories as
// needed.
func ExportToJSON(report *Report, path string) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ConsoleSummary renders a compact plain-text view of the report for
// command output.
func ConsoleSummary(report *Report) string {
	var b strings.Builder
	s := report.Summary
	fmt.Fprintf(&b, "Backtest %s (policy=%s)\n", report.RunID, report.Policy)
	fmt.Fprintf(&b, "  signals=%d verified=%d unverified=%d\n", s.Signals, s.Verified, s.Unverified)
	fmt.Fprintf(&b, "  wins=%d win_rate=%.1f%% pnl=%.2f roi=%.2f%% (stake %.0f)\n",
		s.Wins, s.WinRate, s.TotalPnL, s.ROI, s.Stake)

	if len(report.ByOddsBucket) > 0 {
		fmt.Fprintf(&b, "  by odds bucket:\n")
		for _, key := range sortedKeys(report.ByOddsBucket) {
			g := report.ByOddsBucket[key]
			fmt.Fprintf(&b, "    %-8s bets=%d wins=%d pnl=%.2f\n", key, g.Bets, g.Wins, g.PnL)
		}
	}
	if len(report.ByLeague) > 0 {
		fmt.Fprintf(&b, "  by league:\n")
		for _, key := range topLeagues(report.ByLeague, 15) {
			g := report.ByLeague[key]
			fmt.Fprintf(&b, "    %-24s bets=%d wins=%d pnl=%.2f\n", key, g.Bets, g.Wins, g.PnL)
		}
	}
	return b.String()
}

func sortedKeys(groups map[string]GroupStats) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// topLeagues orders leagues by PnL descending and caps the list, the way
// the original surfaced its most profitable competitions.
func topLeagues(groups map[string]GroupStats, limit int) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return groups[keys[i]].PnL > groups[keys[j]].PnL
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
