package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/noah-isme/studydash/internal/dto"
	"github.com/noah-isme/studydash/internal/kpi"
	"github.com/noah-isme/studydash/internal/models"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
	"github.com/noah-isme/studydash/pkg/export"
	"github.com/noah-isme/studydash/pkg/middleware/requestid"
)

// ExportFormat names a downloadable rendering.
type ExportFormat string

const (
	// ExportFormatCSV renders the enrollment table as CSV with the KPI header.
	ExportFormatCSV ExportFormat = "csv"
	// ExportFormatPDF renders a one-page PDF report.
	ExportFormatPDF ExportFormat = "pdf"
)

// ParseExportFormat normalises a format name; empty selects CSV.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ExportFormatCSV):
		return ExportFormatCSV, nil
	case string(ExportFormatPDF):
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrUnsupported, fmt.Sprintf("unsupported export format %q", raw))
	}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

type dashboardSummarizer interface {
	Summary(ctx context.Context, programID int64) (*dto.DashboardResponse, error)
}

type enrollmentLister interface {
	ListRecent(ctx context.Context, programID int64, limit int) ([]models.EnrollmentDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset, summary ...export.SummaryLine) ([]byte, error)
}

type pdfRenderer interface {
	Render(report export.Report) ([]byte, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
}

type exportRecorder interface {
	RecordExport(format string)
}

// ExportResult is a rendered export ready for download or storage.
type ExportResult struct {
	Filename    string
	ContentType string
	Format      ExportFormat
	Body        []byte
}

// ExportService renders the dashboard of a program as a file.
type ExportService struct {
	dashboard   dashboardSummarizer
	enrollments enrollmentLister
	csv         csvRenderer
	pdf         pdfRenderer
	metrics     exportRecorder
	logger      *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the pkg/export defaults.
func NewExportService(dashboard dashboardSummarizer, enrollments enrollmentLister, metrics exportRecorder, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		dashboard:   dashboard,
		enrollments: enrollments,
		csv:         csv,
		pdf:         pdf,
		metrics:     metrics,
		logger:      logger,
	}
}

// Render builds the export of a program in the requested format.
func (s *ExportService) Render(ctx context.Context, programID int64, format ExportFormat) (*ExportResult, error) {
	summary, err := s.dashboard.Summary(ctx, programID)
	if err != nil {
		return nil, err
	}
	rows, err := s.enrollments.ListRecent(ctx, programID, 0)
	if err != nil {
		return nil, err
	}

	dataset := enrollmentDataset(rows)
	lines := FormatSummary(summary)

	var body []byte
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(dataset, lines...)
	case ExportFormatPDF:
		body, err = s.pdf.Render(export.Report{
			Title:   fmt.Sprintf("%s (%s)", summary.ProgramName, summary.GeneratedOn.String()),
			Summary: lines,
			Table:   dataset,
		})
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupported, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to render export")
	}

	if s.metrics != nil {
		s.metrics.RecordExport(string(format))
	}
	s.logger.Info("export rendered",
		zap.Int64("program_id", programID),
		zap.String("format", string(format)),
		zap.Int("rows", len(rows)),
		zap.Int("bytes", len(body)),
		zap.String("request_id", requestid.FromContext(ctx)),
	)

	return &ExportResult{
		Filename:    buildFilename(programID, summary.GeneratedOn, format),
		ContentType: format.ContentType(),
		Format:      format,
		Body:        body,
	}, nil
}

// Save renders the export and writes it to storage, returning the stored path.
func (s *ExportService) Save(ctx context.Context, store fileStorage, programID int64, format ExportFormat) (string, error) {
	result, err := s.Render(ctx, programID, format)
	if err != nil {
		return "", err
	}
	path, err := store.Save(result.Filename, result.Body)
	if err != nil {
		return "", appErrors.ErrInternal.With(err, "failed to store export")
	}
	return path, nil
}

var enrollmentHeaders = []string{
	"ID", "Module", "Credits", "Planned semester", "Actual semester",
	"Target date", "Actual date", "Target grade", "Actual grade", "Attempts", "Offset (days)",
}

func enrollmentDataset(rows []models.EnrollmentDetail) export.Dataset {
	dataset := export.Dataset{Headers: enrollmentHeaders}
	for _, row := range rows {
		offset := kpi.OffsetDays(row.TargetDate, row.ActualDate)
		dataset.Append(
			strconv.FormatInt(row.ID, 10),
			row.ModuleTitle,
			strconv.Itoa(row.ModuleCredits),
			strconv.Itoa(row.PlannedSemester),
			formatInt(row.ActualSemester),
			row.TargetDate.String(),
			row.ActualDate.String(),
			formatGrade(row.TargetGrade),
			formatGrade(row.ActualGrade),
			strconv.Itoa(row.Attempts),
			formatInt(offset),
		)
	}
	return dataset
}

func buildFilename(programID int64, day models.Date, format ExportFormat) string {
	return fmt.Sprintf("studydash_program-%d_%s.%s", programID, day.In(time.UTC).Format("20060102"), format)
}

func formatInt(v null.Int) string {
	if !v.Valid {
		return ""
	}
	return strconv.Itoa(v.Int)
}

func formatGrade(v null.Float64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', 1, 64)
}
