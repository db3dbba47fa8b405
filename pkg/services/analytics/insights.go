package analytics

import (
	"math"

	"github.com/de-tools/rankboard/pkg/models/domain"
)

// ComputeInsights derives the performance summary of a student's ordered test log.
// It returns nil when no record yields a valid percentage.
//
// The average counts every valid test once, repeats of a subject included.
// Strong and weak subjects come from a separate pass where the last test of a
// subject wins, so reordering input can move a subject but never the average.
func ComputeInsights(tests []domain.TestRecord, settings Settings) *domain.Insights {
	var (
		total float64
		count int
	)
	for _, test := range tests {
		pct, ok := Percentage(test)
		if !ok {
			continue
		}
		total += pct
		count++
	}
	if count == 0 {
		return nil
	}
	avg := total / float64(count)

	strong := make([]string, 0)
	weak := make([]string, 0)
	for _, subject := range SubjectBreakdown(tests) {
		if subject.Percentage >= settings.StrongThreshold {
			strong = append(strong, subject.Subject)
		} else {
			weak = append(weak, subject.Subject)
		}
	}

	return &domain.Insights{
		AveragePercentage: avg,
		Category:          Categorize(avg, settings),
		StrongSubjects:    strong,
		WeakSubjects:      weak,
		PredictedRange:    PredictRange(avg, settings),
	}
}

// Categorize places an average into its band. Each band includes its lower bound.
func Categorize(avg float64, settings Settings) domain.Category {
	switch {
	case avg >= settings.TopperThreshold:
		return domain.CategoryTopper
	case avg >= settings.AverageThreshold:
		return domain.CategoryAverage
	default:
		return domain.CategoryNeedsImprovement
	}
}

// PredictRange returns the band around an average. The low bound is floored
// at zero, the high bound is left uncapped.
func PredictRange(avg float64, settings Settings) domain.ScoreRange {
	return domain.ScoreRange{
		Low:  math.Max(avg-settings.PredictionSpread, 0),
		High: avg + settings.PredictionSpread,
	}
}
