package scenario

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatText renders run results for a terminal.
func FormatText(results []*RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Checking %d scenario file", len(results))
	if len(results) != 1 {
		b.WriteString("s")
	}
	b.WriteString("...\n\n")

	totalCases, totalPassed, failedScenarios := 0, 0, 0
	for _, r := range results {
		totalCases += r.Total
		totalPassed += r.Passed

		if r.Failed == 0 {
			fmt.Fprintf(&b, "  PASS  %s (%d/%d)\n", r.Name, r.Passed, r.Total)
			continue
		}
		failedScenarios++
		fmt.Fprintf(&b, "  FAIL  %s (%d/%d)\n", r.Name, r.Passed, r.Total)
		for _, c := range r.Cases {
			if c.Passed {
				continue
			}
			fmt.Fprintf(&b, "    FAIL  case %d: %-40s expected %s, got %s", c.Index, c.Name, c.Expected, c.Actual)
			if c.Reason != "" {
				fmt.Fprintf(&b, " (%s)", c.Reason)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n%d of %d cases passed.", totalPassed, totalCases)
	if failedScenarios > 0 {
		fmt.Fprintf(&b, " %d of %d scenarios failed.", failedScenarios, len(results))
	}
	b.WriteString("\n")
	return b.String()
}

func FormatJSON(results []*RunResult) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	return string(data), nil
}
