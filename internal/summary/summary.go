// Package summary computes the dataset-level view of a scored batch:
// sentiment distribution plus descriptive statistics over the polarity
// and subjectivity columns, rendered as a fixed-format text report.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"SentimentScanner/internal/domain"
)

// LabelCount is one distribution entry.
type LabelCount struct {
	Label domain.Label
	Count int
}

// Stats holds descriptive statistics for one numeric column.
type Stats struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Report is the read-only summary of a scored dataset. Sections are nil
// when the underlying column is absent.
type Report struct {
	Total        int
	Distribution []LabelCount
	Polarity     *Stats
	Subjectivity *Stats
}

// Aggregate computes the report without touching the dataset.
func Aggregate(dataset domain.Dataset) Report {
	report := Report{Total: dataset.Len()}

	if dataset.HasColumn(domain.FieldSentiment) {
		report.Distribution = distribution(dataset)
	}
	if dataset.HasColumn(domain.FieldPolarity) {
		report.Polarity = describe(columnFloats(dataset, domain.FieldPolarity))
	}
	if dataset.HasColumn(domain.FieldSubjectivity) {
		report.Subjectivity = describe(columnFloats(dataset, domain.FieldSubjectivity))
	}

	return report
}

// Percent returns the share of rows carrying the label, in percent.
// Labels absent from the dataset report 0.
func (r Report) Percent(label domain.Label) float64 {
	if r.Total == 0 {
		return 0
	}
	for _, entry := range r.Distribution {
		if entry.Label == label {
			return float64(entry.Count) / float64(r.Total) * 100
		}
	}
	return 0
}

// Render produces the plain-text report.
func (r Report) Render() string {
	var b strings.Builder
	b.WriteString("Sentiment Analysis Summary\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if r.Distribution != nil {
		b.WriteString("Sentiment Distribution:\n")
		for _, entry := range r.Distribution {
			b.WriteString(fmt.Sprintf("  %s: %d (%.1f%%)\n", capitalize(string(entry.Label)), entry.Count, r.Percent(entry.Label)))
		}
		b.WriteString("\n")
	}

	writeStats(&b, "Polarity Statistics:", r.Polarity)
	writeStats(&b, "Subjectivity Statistics:", r.Subjectivity)

	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString(fmt.Sprintf("Total Records Processed: %d\n", r.Total))
	return b.String()
}

func writeStats(b *strings.Builder, title string, stats *Stats) {
	if stats == nil {
		return
	}
	b.WriteString(title + "\n")
	b.WriteString(fmt.Sprintf("  Mean: %.4f\n", stats.Mean))
	b.WriteString(fmt.Sprintf("  Median: %.4f\n", stats.Median))
	b.WriteString(fmt.Sprintf("  Std Dev: %.4f\n", stats.StdDev))
	b.WriteString(fmt.Sprintf("  Min: %.4f\n", stats.Min))
	b.WriteString(fmt.Sprintf("  Max: %.4f\n", stats.Max))
	b.WriteString("\n")
}

// distribution counts labels present in the dataset, ordered by
// descending count with label name as the tie breaker.
func distribution(dataset domain.Dataset) []LabelCount {
	counts := map[domain.Label]int{}
	for i := 0; i < dataset.Len(); i++ {
		if label, ok := labelOf(dataset.Value(i, domain.FieldSentiment)); ok {
			counts[label]++
		}
	}

	entries := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, LabelCount{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})

	return entries
}

func labelOf(value any) (domain.Label, bool) {
	switch v := value.(type) {
	case domain.Label:
		return v, true
	case string:
		return domain.Label(v), true
	default:
		return "", false
	}
}

// describe computes mean, median, sample standard deviation, min and
// max. With fewer than two values the deviation is reported as zero.
func describe(values []float64) *Stats {
	if len(values) == 0 {
		return &Stats{}
	}

	var sum float64
	min, max := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))

	var variance float64
	if len(values) > 1 {
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(values) - 1)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}

	return &Stats{
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(variance),
		Min:    min,
		Max:    max,
	}
}

func columnFloats(dataset domain.Dataset, column string) []float64 {
	values := make([]float64, 0, dataset.Len())
	for i := 0; i < dataset.Len(); i++ {
		switch v := dataset.Value(i, column).(type) {
		case float64:
			values = append(values, v)
		case float32:
			values = append(values, float64(v))
		case int:
			values = append(values, float64(v))
		case int64:
			values = append(values, float64(v))
		}
	}
	return values
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
