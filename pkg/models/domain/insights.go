package domain

type Category string

const (
	CategoryTopper           Category = "Topper"
	CategoryAverage          Category = "Average"
	CategoryNeedsImprovement Category = "Needs Improvement"
)

type ScoreRange struct {
	Low  float64
	High float64
}

type Insights struct {
	AveragePercentage float64
	Category          Category
	StrongSubjects    []string
	WeakSubjects      []string
	PredictedRange    ScoreRange
}
