package metrics

import (
	"fmt"
	"strings"

	"github.com/SaiNageswarS/report-core/schema"
)

var displayNames = map[string]string{
	"revenue":      "Revenue",
	"net_profit":   "Net Profit",
	"eps":          "EPS",
	"ebitda":       "EBITDA",
	"total_assets": "Total Assets",
	"dividend":     "Dividend",
}

// FormatSummary renders the first occurrence of each metric as a short digest
// for prompt context. Empty input yields an empty string.
func FormatSummary(extracted []schema.FinancialMetric) string {
	var lines []string
	seen := map[string]bool{}

	for _, m := range metricLabels { // fixed order, independent of match order
		for _, hit := range extracted {
			if hit.Name != m.name || seen[hit.Name] {
				continue
			}
			seen[hit.Name] = true

			display := displayNames[hit.Name]
			if display == "" {
				display = hit.Name
			}
			switch hit.Unit {
			case "%":
				lines = append(lines, fmt.Sprintf("%s: %s%%", display, hit.RawValue))
			case "", "₹":
				lines = append(lines, fmt.Sprintf("%s: ₹%s", display, hit.RawValue))
			default:
				lines = append(lines, fmt.Sprintf("%s: ₹%s %s", display, hit.RawValue, hit.Unit))
			}
		}
	}

	return strings.Join(lines, "\n")
}
