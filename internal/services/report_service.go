package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"invsummary/internal/config"
	"invsummary/internal/dataprocessing"
	"invsummary/internal/exporter"
	"invsummary/internal/infrastructure"
	"invsummary/pkg/contracts/domain"
)

// Upload outcomes recorded in metrics and logs
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
)

// Upload is a file received for a slot
type Upload struct {
	FileName string
	Format   string // optional declared format; the extension is used when empty
	Body     io.Reader
}

// UploadResult reports what was loaded from an upload
type UploadResult struct {
	Source   string   `json:"source"`
	Kind     string   `json:"kind"`
	FileName string   `json:"file_name"`
	Rows     int      `json:"rows"`
	Columns  []string `json:"columns"`
	Valid    bool     `json:"valid"`
	Missing  []string `json:"missing,omitempty"`
}

// DrillDown holds the records behind one displayed count
type DrillDown struct {
	Source  string          `json:"source"`
	Metric  string          `json:"metric"`
	Columns []string        `json:"columns"`
	Records []domain.Record `json:"-"`
	Count   int             `json:"count"`
}

// Rows returns records as column-keyed maps for JSON responses
func (d *DrillDown) Rows() []map[string]any {
	rows := make([]map[string]any, len(d.Records))
	for i, r := range d.Records {
		rows[i] = r.Values
	}
	return rows
}

// ReportService turns session uploads into summaries, drill-downs and exports
type ReportService struct {
	store   *SessionStore
	upload  config.UploadConfig
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewReportService creates a report service over store
func NewReportService(store *SessionStore, upload config.UploadConfig, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		store:   store,
		upload:  upload,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "report_service")),
	}
}

// CreateSession opens a new report session
func (s *ReportService) CreateSession(ctx context.Context) SessionInfo {
	return s.store.Create(ctx)
}

// Session returns a session's metadata
func (s *ReportService) Session(ctx context.Context, sessionID string) (SessionInfo, error) {
	return s.store.Info(sessionID)
}

// DeleteSession drops a session and everything uploaded to it
func (s *ReportService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// NormalizeSlot maps a slot name to its canonical label
func NormalizeSlot(slot string) (string, error) {
	trimmed := strings.TrimSpace(slot)
	if strings.EqualFold(trimmed, domain.TotalLabel) {
		return "", ErrReservedLabel
	}
	for _, s := range domain.InventorySlots {
		if strings.EqualFold(trimmed, s) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
}

// UploadInventory loads a file into an inventory slot. Files missing
// required columns are kept and reported with Valid=false; they show up as
// rejected sources in the summary.
func (s *ReportService) UploadInventory(ctx context.Context, sessionID, slot string, up Upload) (*UploadResult, error) {
	source, err := NormalizeSlot(slot)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Info(sessionID); err != nil {
		return nil, err
	}

	rs, err := s.load(ctx, up, source, domain.RowSetInventory)
	if err != nil {
		return nil, err
	}

	validation := dataprocessing.Validate(rs, dataprocessing.InventoryColumns)
	outcome := OutcomeAccepted
	if validation.Valid {
		dataprocessing.ClassifyRowSet(rs)
	} else {
		outcome = OutcomeInvalid
		s.logger.WarnContext(ctx, "inventory upload missing required columns",
			slog.String("session_id", sessionID),
			slog.String("source", source),
			slog.Any("missing", validation.Missing))
	}

	if err := s.store.PutInventory(sessionID, source, rs); err != nil {
		return nil, err
	}
	s.metrics.RecordUpload(ctx, string(domain.RowSetInventory), source, outcome, rs.Len())

	s.logger.InfoContext(ctx, "inventory uploaded",
		slog.String("session_id", sessionID),
		slog.String("source", source),
		slog.String("file", up.FileName),
		slog.Int("rows", rs.Len()),
		slog.Bool("valid", validation.Valid))

	return &UploadResult{
		Source:   source,
		Kind:     string(domain.RowSetInventory),
		FileName: rs.FileName,
		Rows:     rs.Len(),
		Columns:  rs.Columns,
		Valid:    validation.Valid,
		Missing:  validation.Missing,
	}, nil
}

// UploadRap loads the RAP file. A file missing required columns is
// refused with a *dataprocessing.MissingColumnsError and not stored.
func (s *ReportService) UploadRap(ctx context.Context, sessionID string, up Upload) (*UploadResult, error) {
	if _, err := s.store.Info(sessionID); err != nil {
		return nil, err
	}

	rs, err := s.load(ctx, up, domain.SourceRAP, domain.RowSetRAP)
	if err != nil {
		return nil, err
	}

	if err := dataprocessing.Validate(rs, dataprocessing.RapColumns).Err(); err != nil {
		s.metrics.RecordUpload(ctx, string(domain.RowSetRAP), domain.SourceRAP, OutcomeInvalid, 0)
		s.logger.WarnContext(ctx, "rap upload refused",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.store.PutRap(sessionID, rs); err != nil {
		return nil, err
	}
	s.metrics.RecordUpload(ctx, string(domain.RowSetRAP), domain.SourceRAP, OutcomeAccepted, rs.Len())

	s.logger.InfoContext(ctx, "rap uploaded",
		slog.String("session_id", sessionID),
		slog.String("file", up.FileName),
		slog.Int("rows", rs.Len()))

	return &UploadResult{
		Source:   domain.SourceRAP,
		Kind:     string(domain.RowSetRAP),
		FileName: rs.FileName,
		Rows:     rs.Len(),
		Columns:  rs.Columns,
		Valid:    true,
	}, nil
}

// InventorySummary combines every uploaded inventory source
func (s *ReportService) InventorySummary(ctx context.Context, sessionID string) (*domain.InventoryReport, error) {
	sets, err := s.store.Inventory(sessionID)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, ErrNoData
	}

	start := time.Now()
	report := dataprocessing.BuildInventoryReport(sets)
	s.metrics.RecordSummaryBuild(ctx, string(domain.RowSetInventory), time.Since(start))

	s.logger.DebugContext(ctx, "inventory summary built",
		slog.String("session_id", sessionID),
		slog.Int("sources", len(report.Summary.Sources())),
		slog.Int("rejected", len(report.Rejected)))
	return report, nil
}

// InventoryDrillDown returns the records of one source behind a metric.
// An unknown metric yields no records.
func (s *ReportService) InventoryDrillDown(ctx context.Context, sessionID, source, metric string) (*DrillDown, error) {
	slot, err := NormalizeSlot(source)
	if err != nil {
		return nil, err
	}
	rs, err := s.store.InventorySlot(sessionID, slot)
	if err != nil {
		return nil, err
	}
	if err := dataprocessing.Validate(rs, dataprocessing.InventoryColumns).Err(); err != nil {
		return nil, err
	}

	records := dataprocessing.Resolve(rs, dataprocessing.InventoryMetrics, metric)
	s.metrics.RecordDrillDown(ctx, metric, false)
	return &DrillDown{Source: slot, Metric: metric, Columns: rs.Columns, Records: records, Count: len(records)}, nil
}

// RapSummary summarizes the uploaded RAP file
func (s *ReportService) RapSummary(ctx context.Context, sessionID string) (domain.RapSummary, error) {
	rs, err := s.store.Rap(sessionID)
	if err != nil {
		return domain.RapSummary{}, err
	}

	start := time.Now()
	summary := dataprocessing.SummarizeRap(rs)
	s.metrics.RecordSummaryBuild(ctx, string(domain.RowSetRAP), time.Since(start))
	return summary, nil
}

// RapDrillDown returns RAP records behind a metric, or for a country when
// country is set.
func (s *ReportService) RapDrillDown(ctx context.Context, sessionID, metric, country string) (*DrillDown, error) {
	rs, err := s.store.Rap(sessionID)
	if err != nil {
		return nil, err
	}

	dd := &DrillDown{Source: domain.SourceRAP, Columns: rs.Columns}
	if country != "" {
		dd.Metric = country
		dd.Records = dataprocessing.ResolveCountry(rs, country)
	} else {
		dd.Metric = metric
		dd.Records = dataprocessing.Resolve(rs, dataprocessing.RapMetrics, metric)
	}
	dd.Count = len(dd.Records)
	s.metrics.RecordDrillDown(ctx, dd.Metric, false)
	return dd, nil
}

// ExportDrillDown writes a drill-down as CSV and returns the download file name
func (s *ReportService) ExportDrillDown(ctx context.Context, dd *DrillDown, w io.Writer) (string, error) {
	if err := exporter.WriteRecordsCSV(w, dd.Columns, dd.Records); err != nil {
		return "", fmt.Errorf("failed to export %s for %s: %w", dd.Metric, dd.Source, err)
	}
	s.metrics.RecordDrillDown(ctx, dd.Metric, true)
	return exporter.DrillDownFileName(dd.Metric, dd.Source), nil
}

// InventoryWorkbook writes the Summary and For Web tables as an XLSX workbook
func (s *ReportService) InventoryWorkbook(ctx context.Context, sessionID string, w io.Writer) error {
	report, err := s.InventorySummary(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := exporter.WriteSummaryWorkbook(w,
		exporter.Sheet{Name: "Summary", Table: report.Summary},
		exporter.Sheet{Name: "For Web", Table: report.ForWeb},
	); err != nil {
		return err
	}
	s.metrics.RecordDrillDown(ctx, "summary", true)
	return nil
}

func (s *ReportService) load(ctx context.Context, up Upload, source string, kind domain.RowSetKind) (*domain.RowSet, error) {
	format, err := resolveFormat(up)
	if err != nil {
		s.metrics.RecordUpload(ctx, string(kind), source, OutcomeRejected, 0)
		return nil, err
	}

	rs, err := dataprocessing.Load(up.Body, format, dataprocessing.LoadOptions{
		Source:   source,
		Kind:     kind,
		FileName: up.FileName,
		MaxRows:  s.upload.MaxRows,
		Logger:   s.logger,
	})
	if err != nil {
		s.metrics.RecordUpload(ctx, string(kind), source, OutcomeRejected, 0)
		s.logger.WarnContext(ctx, "upload could not be loaded",
			slog.String("source", source),
			slog.String("file", up.FileName),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load %s file: %w", source, err)
	}
	return rs, nil
}

func resolveFormat(up Upload) (dataprocessing.Format, error) {
	if up.Format != "" {
		return dataprocessing.ParseFormat(up.Format)
	}
	return dataprocessing.DetectFormat(up.FileName)
}

// IsNotFound reports whether err means a session or source is absent
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSourceNotLoaded) || errors.Is(err, ErrNoData)
}
