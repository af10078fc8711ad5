// Package kpi derives dashboard figures from a program definition and the
// aggregates of its enrollments. Everything here is pure: no storage access,
// no clock, no logging.
package kpi

import (
	"math"

	"github.com/volatiletech/null/v8"

	"github.com/noah-isme/studydash/internal/models"
)

const (
	// DefaultCreditsPerSemester is the credit load assumed per semester.
	DefaultCreditsPerSemester = 30
	// DaysPerYear converts between day counts and study years.
	DaysPerYear = 365.25
	// SemestersPerYear converts a semester target into a duration in years.
	SemestersPerYear = 2.0
)

// ProgramContext is the part of a program definition the engine needs.
type ProgramContext struct {
	StartDate models.Date
	// TargetDurationYears <= 0 means unknown; it is derived from TargetSemesters when possible.
	TargetDurationYears float64
	TargetSemesters     null.Int
	// CreditsPerSemester <= 0 falls back to DefaultCreditsPerSemester.
	CreditsPerSemester int
}

// ContextFor builds the engine input for a stored program.
func ContextFor(program models.Program, creditsPerSemester int) ProgramContext {
	ctx := ProgramContext{
		StartDate:          program.StartDate,
		TargetSemesters:    program.TargetSemesters,
		CreditsPerSemester: creditsPerSemester,
	}
	if program.TargetDurationYears.Valid {
		ctx.TargetDurationYears = program.TargetDurationYears.Float64
	}
	return ctx
}

// DashboardKPIs is the full set of derived figures for one program.
type DashboardKPIs struct {
	TargetCredits        int          `json:"target_credits"`
	CompletedCredits     int          `json:"completed_credits"`
	CompletionFraction   float64      `json:"completion_fraction"`
	WeightedAverageGrade null.Float64 `json:"weighted_average_grade"`

	TargetDurationYears float64         `json:"target_duration_years"`
	TargetEndDate       models.NullDate `json:"target_end_date"`
	ReferenceDate       models.Date     `json:"reference_date"`
	ElapsedDays         int             `json:"elapsed_days"`
	ActualDurationYears float64         `json:"actual_duration_years"`
	DurationDeltaYears  float64         `json:"duration_delta_years"`
	LastCompletionDate  models.NullDate `json:"last_completion_date"`

	PaceForecastEndDate   models.NullDate `json:"pace_forecast_end_date"`
	PaceForecastDeltaDays null.Int        `json:"pace_forecast_delta_days"`

	PlanForecastEndDate   models.NullDate `json:"plan_forecast_end_date"`
	PlanForecastDeltaDays null.Int        `json:"plan_forecast_delta_days"`
	DelaySoFarDays        null.Int        `json:"delay_so_far_days"`
}

// Compute derives the dashboard figures. today is the date used while the
// program is still in progress.
func Compute(program ProgramContext, agg models.ProgressAggregates, today models.Date) DashboardKPIs {
	out := DashboardKPIs{
		CompletedCredits:     agg.CompletedCredits,
		WeightedAverageGrade: agg.WeightedAverageGrade,
		LastCompletionDate:   agg.LastCompletionDate,
	}

	out.TargetCredits = TargetCredits(program, agg.CatalogCredits)
	target := float64(out.TargetCredits)
	completed := float64(out.CompletedCredits)

	if target > 0 {
		out.CompletionFraction = completed / target
	}

	out.TargetDurationYears = TargetDurationYears(program)
	if out.TargetDurationYears > 0 {
		days := roundDays(out.TargetDurationYears * DaysPerYear)
		out.TargetEndDate = models.NullDateFrom(program.StartDate.AddDays(days))
	}

	out.ReferenceDate = ReferenceDate(out.TargetCredits, out.CompletedCredits, agg.LastCompletionDate, today)
	out.ElapsedDays = ElapsedDays(program.StartDate, out.ReferenceDate)
	elapsed := float64(out.ElapsedDays)

	if out.ElapsedDays > 0 {
		out.ActualDurationYears = elapsed / DaysPerYear
	}
	out.DurationDeltaYears = out.ActualDurationYears - out.TargetDurationYears

	if completed > 0 && target > 0 {
		pace := elapsed / completed
		forecast := program.StartDate.AddDays(roundDays(pace * target))
		out.PaceForecastEndDate = models.NullDateFrom(forecast)
		if out.TargetEndDate.Valid {
			out.PaceForecastDeltaDays = null.IntFrom(forecast.DaysSince(out.TargetEndDate.Date))
		}
	}

	if out.TargetEndDate.Valid && target > 0 {
		targetEnd := out.TargetEndDate.Date
		plannedTotal := targetEnd.DaysSince(program.StartDate)
		if plannedTotal < 0 {
			plannedTotal = 0
		}
		plannedPerCredit := float64(plannedTotal) / target
		expectedElapsed := plannedPerCredit * completed
		delay := roundDays(elapsed - expectedElapsed)

		forecast := targetEnd.AddDays(delay)
		out.DelaySoFarDays = null.IntFrom(delay)
		out.PlanForecastEndDate = models.NullDateFrom(forecast)
		out.PlanForecastDeltaDays = null.IntFrom(forecast.DaysSince(targetEnd))
	}

	return out
}

// TargetCredits prefers the semester target and falls back to the catalog total.
func TargetCredits(program ProgramContext, catalogCredits int) int {
	if program.TargetSemesters.Valid && program.TargetSemesters.Int > 0 {
		perSemester := program.CreditsPerSemester
		if perSemester <= 0 {
			perSemester = DefaultCreditsPerSemester
		}
		if credits := program.TargetSemesters.Int * perSemester; credits > 0 {
			return credits
		}
	}
	if catalogCredits > 0 {
		return catalogCredits
	}
	return 0
}

// TargetDurationYears returns the configured duration or derives it from the semester count.
func TargetDurationYears(program ProgramContext) float64 {
	if program.TargetDurationYears > 0 {
		return program.TargetDurationYears
	}
	if program.TargetSemesters.Valid {
		return float64(program.TargetSemesters.Int) / SemestersPerYear
	}
	return 0
}

// ReferenceDate is the last completion once the target is met, otherwise today.
func ReferenceDate(targetCredits, completedCredits int, lastCompletion models.NullDate, today models.Date) models.Date {
	if targetCredits > 0 && completedCredits >= targetCredits && lastCompletion.Valid {
		return lastCompletion.Date
	}
	return today
}

// ElapsedDays counts days from start to ref, never negative.
func ElapsedDays(start, ref models.Date) int {
	days := ref.DaysSince(start)
	if days < 0 {
		return 0
	}
	return days
}

// roundDays rounds half to even.
func roundDays(days float64) int {
	return int(math.RoundToEven(days))
}
