package metrics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SaiNageswarS/report-core/schema"
)

// searchWindow bounds how far after a label a numeric token may appear and
// still be attributed to it.
const searchWindow = 120

// metricLabels maps canonical metric names to the label variants seen in
// Indian annual reports. All occurrences of every label are scanned; the
// extractor keeps each hit and makes no materiality judgment.
var metricLabels = []struct {
	name   string
	labels []string
}{
	{"revenue", []string{"revenue from operations", "total revenue", "revenue", "total income", "sales"}},
	{"net_profit", []string{"net profit", "profit after tax", "pat"}},
	{"eps", []string{"earnings per share", "eps"}},
	{"ebitda", []string{"ebitda", "operating profit"}},
	{"total_assets", []string{"total assets"}},
	{"dividend", []string{"dividend per share", "dividend"}},
}

// unitScale resolves recognized unit suffixes to rupees. A bare currency
// symbol is already in the base unit; percentages are canonical as-is.
var unitScale = map[string]float64{
	"cr":       1e7,
	"crore":    1e7,
	"crores":   1e7,
	"lakh":     1e5,
	"lakhs":    1e5,
	"mn":       1e6,
	"million":  1e6,
	"bn":       1e9,
	"billion":  1e9,
	"%":        1,
	"₹":        1,
	"rs":       1,
	"rs.":      1,
	"inr":      1,
}

var numberRe = regexp.MustCompile(`(₹|rs\.?\s|inr\s)?\s*([-+]?\d[\d,]*(?:\.\d+)?)\s*(%|cr(?:ore)?s?\b|lakhs?\b|mn\b|million\b|bn\b|billion\b)?`)

// Extract scans text for recognizable financial line items. Labels with no
// nearby numeric token are silently omitted; extraction never fails.
func Extract(text string) []schema.FinancialMetric {
	lower := strings.ToLower(text)

	var out []schema.FinancialMetric
	for _, m := range metricLabels {
		seen := map[int]bool{} // numeric offsets already claimed for this metric
		for _, label := range m.labels {
			for _, labelEnd := range labelOccurrences(lower, label) {
				windowEnd := labelEnd + searchWindow
				if windowEnd > len(text) {
					windowEnd = len(text)
				}

				loc := numberRe.FindStringSubmatchIndex(lower[labelEnd:windowEnd])
				if loc == nil || loc[4] < 0 {
					continue
				}
				numStart := labelEnd + loc[4]
				if seen[numStart] {
					continue
				}
				seen[numStart] = true

				metric := schema.FinancialMetric{
					Name:     m.name,
					RawValue: text[numStart : labelEnd+loc[5]],
					Offset:   numStart,
				}

				unit := ""
				if loc[6] >= 0 {
					unit = text[labelEnd+loc[6] : labelEnd+loc[7]]
				} else if loc[2] >= 0 {
					unit = strings.TrimSpace(text[labelEnd+loc[2] : labelEnd+loc[3]])
				}
				metric.Unit = unit
				metric.Normalized = normalize(metric.RawValue, unit)

				out = append(out, metric)
			}
		}
	}
	return out
}

// normalize resolves the raw numeric string and unit suffix to rupees (or the
// raw value for percentages). Returns nil when the unit is unrecognized so a
// partial metric is reported instead of a wrong one.
func normalize(rawValue, unit string) *float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(rawValue, ",", ""), 64)
	if err != nil {
		return nil
	}

	scale, ok := unitScale[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return nil
	}

	normalized := value * scale
	return &normalized
}

// labelOccurrences returns the end offset of every whole-word occurrence of
// label in lower.
func labelOccurrences(lower, label string) []int {
	var ends []int
	from := 0
	for {
		idx := strings.Index(lower[from:], label)
		if idx < 0 {
			return ends
		}
		idx += from
		end := idx + len(label)
		if boundaryBefore(lower, idx) && boundaryAfter(lower, end) {
			ends = append(ends, end)
		}
		from = idx + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	return idx == 0 || !isAlnum(s[idx-1])
}

func boundaryAfter(s string, idx int) bool {
	return idx >= len(s) || !isAlnum(s[idx])
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
