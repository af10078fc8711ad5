package kpi

import (
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/noah-isme/studydash/internal/models"
)

// GradePoint compares actual and target grade for one module.
type GradePoint struct {
	Label       string       `json:"label"`
	ActualGrade null.Float64 `json:"actual_grade"`
	TargetGrade null.Float64 `json:"target_grade"`
}

// OffsetPoint is the completion offset in days for one module.
type OffsetPoint struct {
	Label      string `json:"label"`
	OffsetDays int    `json:"offset_days"`
}

// CreditPoint is the cumulative credit total at a date.
type CreditPoint struct {
	Date    models.Date `json:"date"`
	Credits int         `json:"credits"`
}

// AveragePoint is the cumulative weighted grade at a date.
type AveragePoint struct {
	Date  models.Date `json:"date"`
	Grade float64     `json:"grade"`
}

// GradeSeries labels each module as "#<module id> <title>".
func GradeSeries(latest []models.ModuleProgress) []GradePoint {
	points := make([]GradePoint, 0, len(latest))
	for _, row := range latest {
		points = append(points, GradePoint{
			Label:       fmt.Sprintf("#%d %s", row.ModuleID, row.Title),
			ActualGrade: row.ActualGrade,
			TargetGrade: row.TargetGrade,
		})
	}
	return points
}

// OffsetSeries keeps only modules with both a target and an actual date.
func OffsetSeries(latest []models.ModuleProgress) []OffsetPoint {
	points := make([]OffsetPoint, 0, len(latest))
	for _, row := range latest {
		if !row.OffsetDays.Valid {
			continue
		}
		points = append(points, OffsetPoint{Label: row.Title, OffsetDays: row.OffsetDays.Int})
	}
	return points
}

// CumulativeCredits expects completions ordered by date and emits one point per date.
func CumulativeCredits(completions []models.Completion) []CreditPoint {
	points := make([]CreditPoint, 0, len(completions))
	running := 0
	for _, c := range completions {
		running += c.Credits
		if n := len(points); n > 0 && points[n-1].Date == c.ActualDate {
			points[n-1].Credits = running
			continue
		}
		points = append(points, CreditPoint{Date: c.ActualDate, Credits: running})
	}
	return points
}

// CumulativeGrade emits the running credit-weighted grade per date over graded
// completions. Dates before the first graded completion produce no point.
func CumulativeGrade(completions []models.Completion) []AveragePoint {
	points := make([]AveragePoint, 0, len(completions))
	var credits, weighted float64
	for _, c := range completions {
		if !c.ActualGrade.Valid {
			continue
		}
		credits += float64(c.Credits)
		weighted += float64(c.Credits) * c.ActualGrade.Float64
		if credits <= 0 {
			continue
		}
		grade := weighted / credits
		if n := len(points); n > 0 && points[n-1].Date == c.ActualDate {
			points[n-1].Grade = grade
			continue
		}
		points = append(points, AveragePoint{Date: c.ActualDate, Grade: grade})
	}
	return points
}

// OffsetDays is actual minus target completion, absent unless both dates exist.
func OffsetDays(target, actual models.NullDate) null.Int {
	if !target.Valid || !actual.Valid {
		return null.Int{}
	}
	return null.IntFrom(actual.Date.DaysSince(target.Date))
}
