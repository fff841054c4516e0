// Package banner provides colored banner display functions for the
// skynet-loop CLI.
//
// All banner functions write formatted output to stdout with color-coded
// headers and separators. These are used by display-state and
// display-auto-compact to show the loop status and recovery guidance.
package banner

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/Cyonx818/skynet-loop/internal/logging"
	"github.com/Cyonx818/skynet-loop/internal/report"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	activeColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	idleColor   = color.New(color.FgYellow).SprintFunc()
	warnColor   = color.New(color.FgYellow, color.Bold).SprintFunc()
	dimColor    = color.New(color.Faint).SprintFunc()
)

const separator = "═══════════════════════════════════════════════════"

// StaleAfter is the execution age past which display-state flags the
// loop as stale.
const StaleAfter = time.Hour

// PrintStateBanner displays the loop state summary and the trailing
// history entries.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  skynet-loop - Autonomous Workflow Loop State
//	═══════════════════════════════════════════════════
//	  Status:       ACTIVE
//	  Position:     quality_check_complete
//	  Sprint:       3
//	  Iteration:    7
//	  Next command: /skynet:phase2-sprint-setup
//	  Updated:      2026-08-31T12:03:00Z
//	  Last run:     12m 30s ago
//	═══════════════════════════════════════════════════
func PrintStateBanner(v report.View, now time.Time) {
	sep := headerColor(separator)
	fmt.Println(sep)
	fmt.Println(headerColor("  skynet-loop - Autonomous Workflow Loop State"))
	fmt.Println(sep)

	if v.Active {
		fmt.Printf("  Status:       %s\n", activeColor("ACTIVE"))
	} else {
		fmt.Printf("  Status:       %s\n", idleColor("INACTIVE"))
	}
	fmt.Printf("  Position:     %s\n", valueOrDash(v.Position))
	fmt.Printf("  Sprint:       %d\n", v.CurrentSprint)
	fmt.Printf("  Iteration:    %d\n", v.LoopIteration)
	fmt.Printf("  Next command: %s\n", valueOrDash(v.NextCommand))
	fmt.Printf("  Updated:      %s\n", valueOrDash(v.LastUpdated))

	if age, ok := v.ExecutionAge(now); ok {
		fmt.Printf("  Last run:     %s ago\n", logging.FormatDuration(int(age.Seconds())))
		if age > StaleAfter {
			fmt.Printf("  %s\n", warnColor("⚠ no transition recorded for over an hour"))
		}
	} else {
		fmt.Printf("  Last run:     %s\n", dimColor("never"))
	}

	fmt.Println(sep)
	printHistory(v)
}

// PrintInterruptionBanner displays the auto-compact warning with the
// recovery suggestions.
func PrintInterruptionBanner(iv report.InterruptionView) {
	sep := warnColor(separator)
	fmt.Println(sep)
	fmt.Println(warnColor("  ⚠ AUTO-COMPACT DETECTED"))
	fmt.Println(warnColor("  The loop was active but its live signal is gone."))
	fmt.Println(sep)
	fmt.Printf("  Position:     %s\n", valueOrDash(iv.Position))
	fmt.Printf("  Sprint:       %d\n", iv.CurrentSprint)
	fmt.Printf("  Next command: %s\n", valueOrDash(iv.NextCommand))
	fmt.Println(sep)

	fmt.Println("  Recovery options:")
	for _, s := range iv.Suggestions {
		fmt.Printf("    %-8s %s\n", s.Label+":", s.Command)
	}
	fmt.Println(sep)
	printHistory(iv.View)
}

// printHistory renders the trailing history entries, oldest first.
func printHistory(v report.View) {
	if len(v.History) == 0 {
		return
	}
	fmt.Println("  Recent history:")
	for _, e := range v.History {
		fmt.Printf("    %s  %s%s\n", e.Timestamp, e.Action, dimColor(formatDetail(e.Detail)))
	}
}

// formatDetail renders detail fields as " (k=v, k=v)" in sorted key order.
func formatDetail(detail map[string]string) string {
	if len(detail) == 0 {
		return ""
	}
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := " ("
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k + "=" + detail[k]
	}
	return out + ")"
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
