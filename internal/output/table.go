package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/uvprune/internal/evaluator"
	"github.com/blackwell-systems/uvprune/internal/rules"
	"github.com/blackwell-systems/uvprune/internal/store"
)

// RenderEnvTable renders evaluated environments in their incoming order
// (callers sort first).
func RenderEnvTable(records []*evaluator.Record) string {
	if len(records) == 0 {
		return "No environments found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-28s %-9s %-9s %-12s %-7s %s\n",
		"Name", "Size", "Age", "Last Used", "Status", "Reason"))
	sb.WriteString(strings.Repeat("─", 100))
	sb.WriteString("\n")

	for _, rec := range records {
		age := "-"
		size := "-"
		lastUsed := "-"
		if rec.Status != evaluator.StatusError {
			age = fmt.Sprintf("%.1fd", rec.AgeDays)
			size = FormatSize(rec.SizeBytes)
			lastUsed = FormatRelativeTime(rec.LastAccessed)
		}

		sb.WriteString(fmt.Sprintf("%-28s %-9s %-9s %-12s %-7s %s\n",
			truncate(rec.Name, 28),
			size,
			age,
			lastUsed,
			formatStatus(rec.Status),
			truncate(rec.Reason, 60),
		))
	}

	return sb.String()
}

func formatStatus(status evaluator.Status) string {
	switch status {
	case evaluator.StatusRemove:
		return colorize(colorRed, string(status))
	case evaluator.StatusKeep:
		return colorize(colorGreen, string(status))
	default:
		return colorize(colorYellow, string(status))
	}
}

// RenderSummary renders the aggregate view of one evaluation pass.
func RenderSummary(s rules.Summary) string {
	var sb strings.Builder

	sb.WriteString("Summary:\n")
	sb.WriteString(fmt.Sprintf("  Environments found: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("  To remove: %d\n", s.ToRemove))
	sb.WriteString(fmt.Sprintf("  To keep: %d\n", s.ToKeep))
	if s.Errors > 0 {
		sb.WriteString(fmt.Sprintf("  Errors: %d\n", s.Errors))
	}
	sb.WriteString(fmt.Sprintf("  Reclaimable: %s\n", FormatSize(s.BytesToRemove)))

	if s.Oldest != nil && s.Newest != nil {
		sb.WriteString(fmt.Sprintf("  Oldest candidate: %s (created %s)\n",
			s.Oldest.Name, FormatRelativeTime(s.Oldest.Created)))
		sb.WriteString(fmt.Sprintf("  Newest candidate: %s (created %s)\n",
			s.Newest.Name, FormatRelativeTime(s.Newest.Created)))
	}

	return sb.String()
}

// RenderRunTable renders past cleanup runs, most recent first.
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No recorded runs.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-20s %-8s %-8s %-8s %-8s %-10s %s\n",
		"ID", "Started", "Scanned", "Removed", "Kept", "Errors", "Freed", "Mode"))
	sb.WriteString(strings.Repeat("─", 88))
	sb.WriteString("\n")

	for _, run := range runs {
		mode := "apply"
		if run.DryRun {
			mode = colorize(colorGray, "dry-run")
		}
		sb.WriteString(fmt.Sprintf("%-5d %-20s %-8d %-8d %-8d %-8d %-10s %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Scanned,
			run.Removed,
			run.Kept,
			run.Errors,
			FormatSize(run.BytesFreed),
			mode,
		))
	}

	return sb.String()
}

// RenderRemovalTable renders the per-path outcomes of one run.
func RenderRemovalTable(removals []*store.Removal) string {
	if len(removals) == 0 {
		return "No removals recorded for this run.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-50s %-9s %-8s %s\n", "Path", "Size", "Result", "Reason"))
	sb.WriteString(strings.Repeat("─", 100))
	sb.WriteString("\n")

	for _, r := range removals {
		result := colorize(colorGreen, "ok")
		if !r.Success {
			result = colorize(colorRed, "failed")
		}
		sb.WriteString(fmt.Sprintf("%-50s %-9s %-8s %s\n",
			truncate(r.Path, 50),
			FormatSize(r.SizeBytes),
			result,
			truncate(r.Reason, 40),
		))
	}

	return sb.String()
}
