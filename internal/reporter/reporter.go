package reporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/focuskeeper/focuskeeper/internal/models"
)

// SummarySource is the part of the repository reports are built from.
type SummarySource interface {
	GetWindowSummarySince(since time.Time) ([]models.WindowSummary, error)
	CountErrorsSince(since time.Time) (int64, error)
}

// Reporter handles report generation
type Reporter struct {
	repo SummarySource
	now  func() time.Time
}

// New creates a new reporter
func New(repo SummarySource) *Reporter {
	return &Reporter{
		repo: repo,
		now:  time.Now,
	}
}

// GenerateReport generates a report for the specified period
func (r *Reporter) GenerateReport(periodType string) (*models.Report, error) {
	period, err := GetPeriod(periodType, r.now())
	if err != nil {
		return nil, err
	}

	summaries, err := r.repo.GetWindowSummarySince(period.Start)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get window summary")
	}

	errCount, err := r.repo.CountErrorsSince(period.Start)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count monitor errors")
	}

	var minimized, failed int64
	for _, s := range summaries {
		minimized += s.Minimized
		failed += s.Failed
	}

	if minimized > 0 {
		for i := range summaries {
			summaries[i].Percentage = (float64(summaries[i].Minimized) / float64(minimized)) * 100.0
		}
	}

	return &models.Report{
		Period:         *period,
		Windows:        summaries,
		TotalMinimized: minimized,
		TotalFailed:    failed,
		MonitorErrors:  errCount,
		GeneratedAt:    r.now(),
	}, nil
}

// GetPeriod calculates the time range for a report ending in the period containing now
func GetPeriod(periodType string, now time.Time) (*models.ReportPeriod, error) {
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 1)

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, errors.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// FormatReportText formats the report as human-readable text
func (r *Reporter) FormatReportText(report *models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Minimize Report - %s\n", report.Period.Type)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Windows minimized: %d (failed: %d)\n", report.TotalMinimized, report.TotalFailed)
	if report.MonitorErrors > 0 {
		fmt.Fprintf(&b, "Monitor errors: %d\n", report.MonitorErrors)
	}
	b.WriteString("\n")

	if len(report.Windows) == 0 {
		b.WriteString("No windows were minimized in this period.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-30s %10s %10s %10s\n", "Window Class", "Minimized", "Failed", "Percent")
	b.WriteString(strings.Repeat("-", 63) + "\n")

	for _, w := range report.Windows {
		fmt.Fprintf(&b, "%-30s %10d %10d %9.1f%%\n",
			truncate(w.ClassName, 30),
			w.Minimized,
			w.Failed,
			w.Percentage)
	}

	return b.String()
}

// FormatReportJSON formats the report as JSON
func (r *Reporter) FormatReportJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal JSON")
	}
	return string(data), nil
}

// truncate truncates a string to the specified number of runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
