package harness

import (
	"fmt"
	"strings"
	"time"
)

const reportRule = "========================================"

// Report は最終統計をフォーマットして返す
func (r *Result) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", reportRule)
	fmt.Fprintf(&b, "           FINAL STATISTICS\n")
	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "Scenario: %s\n", r.Name)
	fmt.Fprintf(&b, "Shutdown Reason: %s\n", r.Reason)
	fmt.Fprintf(&b, "Total Execution Time: %.4f seconds\n", r.Duration.Seconds())
	fmt.Fprintf(&b, "Total Tasks Completed: %d\n", r.TotalCompleted)
	fmt.Fprintf(&b, "Total Tasks Failed: %d\n", r.TotalFailed)
	fmt.Fprintf(&b, "Tasks Generated: %d\n", r.Generated)
	if r.Injected > 0 {
		fmt.Fprintf(&b, "Tasks Injected (stress): %d\n", r.Injected)
	}
	fmt.Fprintf(&b, "Overall Throughput: %.2f tasks/second\n", r.Throughput)

	fmt.Fprintf(&b, "\nPer-Worker Statistics:\n")
	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "%-8s %-12s %-12s %-14s %-14s %-14s\n",
		"Worker", "Completed", "Failed", "Total Time", "Avg Time", "Max Time")
	fmt.Fprintf(&b, "%s\n", reportRule)

	for _, w := range r.Workers {
		fmt.Fprintf(&b, "%-8d %-12d %-12d %-14s %-14s %-14s\n",
			w.ID,
			w.Completed,
			w.Failed,
			formatSeconds(w.TotalTime),
			formatSeconds(w.AvgTime()),
			formatSeconds(w.MaxTime),
		)
	}

	fmt.Fprintf(&b, "%s\n", reportRule)
	return b.String()
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}
