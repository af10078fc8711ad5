package dto

import (
	"github.com/noah-isme/studydash/internal/kpi"
	"github.com/noah-isme/studydash/internal/models"
)

// DashboardResponse is the dashboard payload of one program: the KPI figures
// plus the chart series drawn below them.
type DashboardResponse struct {
	ProgramID          int64             `json:"program_id"`
	ProgramName        string            `json:"program_name"`
	StartDate          models.Date       `json:"start_date" swaggertype:"string"`
	TargetAverageGrade float64           `json:"target_average_grade"`
	GeneratedOn        models.Date       `json:"generated_on" swaggertype:"string"`
	KPIs               kpi.DashboardKPIs `json:"kpis"`
	Charts             DashboardCharts   `json:"charts"`
}

// DashboardCharts groups the four chart series.
type DashboardCharts struct {
	Grades            []kpi.GradePoint   `json:"grades"`
	Offsets           []kpi.OffsetPoint  `json:"offsets"`
	CumulativeCredits []kpi.CreditPoint  `json:"cumulative_credits"`
	CumulativeGrade   []kpi.AveragePoint `json:"cumulative_grade"`
}
