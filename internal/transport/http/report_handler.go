package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "invsummary/internal/errors"
	mw "invsummary/internal/middleware"
	"invsummary/internal/services"
	"invsummary/pkg/contracts/domain"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// multipartMemory is how much of an upload is kept in memory before
	// spilling to temporary files
	multipartMemory = 8 << 20
)

// inventoryQuery selects one inventory source and metric
type inventoryQuery struct {
	Source string `query:"source" validate:"required,slot"`
	Metric string `query:"metric" validate:"required,max=128"`
}

// rapQuery selects a RAP metric or a single country, never both.
// Country is matched verbatim against the loaded cells.
type rapQuery struct {
	Metric  string `query:"metric" validate:"required_without=Country,excluded_with=Country,max=128"`
	Country string `query:"country,raw" validate:"max=128"`
}

// uploadForm holds the multipart fields passed on to the service
type uploadForm struct {
	FileName string `form:"file" validate:"filename"`
	Format   string `form:"format" validate:"max=128"`
}

// ReportHandler serves report sessions: uploads, summaries, drill-downs and exports
type ReportHandler struct {
	service       ReportServiceInterface
	validator     *mw.Validator
	maxUploadSize int64
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
}

// NewReportHandler creates a report handler. Multipart uploads larger than
// maxUploadSize bytes are refused with 413.
func NewReportHandler(service ReportServiceInterface, validator *mw.Validator, maxUploadSize int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:       service,
		validator:     validator,
		maxUploadSize: maxUploadSize,
		logger:        logger.With(slog.String("component", "report_handler")),
		errorHandler:  errorHandler,
	}
}

// Routes returns the session routes, mounted under /api/sessions
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateSession)

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)

		r.Route("/inventory", func(r chi.Router) {
			r.With(
				mw.ContentTypeValidator(h.errorHandler, "multipart/form-data"),
				mw.TraceOperation("report.upload_inventory"),
			).Put("/{slot}", h.UploadInventory)
			r.Get("/summary", h.InventorySummary)
			r.Get("/summary.xlsx", h.InventoryWorkbook)
			r.Get("/drilldown", h.InventoryDrillDown)
			r.Get("/export", h.InventoryExport)
		})

		r.Route("/rap", func(r chi.Router) {
			r.With(
				mw.ContentTypeValidator(h.errorHandler, "multipart/form-data"),
				mw.TraceOperation("report.upload_rap"),
			).Put("/", h.UploadRap)
			r.Get("/summary", h.RapSummary)
			r.Get("/drilldown", h.RapDrillDown)
			r.Get("/export", h.RapExport)
		})
	})

	return r
}

// CreateSession handles POST /api/sessions
func (h *ReportHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	info := h.service.CreateSession(r.Context())

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// GetSession handles GET /api/sessions/{sessionID}
func (h *ReportHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// DeleteSession handles DELETE /api/sessions/{sessionID}
func (h *ReportHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadInventory handles PUT /api/sessions/{sessionID}/inventory/{slot}.
// A file missing required columns is stored and answered with valid=false.
func (h *ReportHandler) UploadInventory(w http.ResponseWriter, r *http.Request) {
	up, cleanup, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer cleanup()

	result, err := h.service.UploadInventory(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "slot"), up)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// UploadRap handles PUT /api/sessions/{sessionID}/rap
func (h *ReportHandler) UploadRap(w http.ResponseWriter, r *http.Request) {
	up, cleanup, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer cleanup()

	result, err := h.service.UploadRap(r.Context(), chi.URLParam(r, "sessionID"), up)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// InventorySummary handles GET /api/sessions/{sessionID}/inventory/summary
func (h *ReportHandler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.InventorySummary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// InventoryWorkbook handles GET /api/sessions/{sessionID}/inventory/summary.xlsx
func (h *ReportHandler) InventoryWorkbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.InventoryWorkbook(r.Context(), chi.URLParam(r, "sessionID"), &buf); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeAttachment(w, xlsxContentType, "inventory_summary.xlsx", buf.Bytes())
}

// InventoryDrillDown handles GET /api/sessions/{sessionID}/inventory/drilldown
func (h *ReportHandler) InventoryDrillDown(w http.ResponseWriter, r *http.Request) {
	dd, ok := h.inventoryDrillDown(w, r)
	if !ok {
		return
	}
	renderDrillDown(w, r, dd)
}

// InventoryExport handles GET /api/sessions/{sessionID}/inventory/export
func (h *ReportHandler) InventoryExport(w http.ResponseWriter, r *http.Request) {
	dd, ok := h.inventoryDrillDown(w, r)
	if !ok {
		return
	}
	h.export(w, r, dd)
}

// RapSummary handles GET /api/sessions/{sessionID}/rap/summary
func (h *ReportHandler) RapSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RapSummary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// RapDrillDown handles GET /api/sessions/{sessionID}/rap/drilldown
func (h *ReportHandler) RapDrillDown(w http.ResponseWriter, r *http.Request) {
	dd, ok := h.rapDrillDown(w, r)
	if !ok {
		return
	}
	renderDrillDown(w, r, dd)
}

// RapExport handles GET /api/sessions/{sessionID}/rap/export
func (h *ReportHandler) RapExport(w http.ResponseWriter, r *http.Request) {
	dd, ok := h.rapDrillDown(w, r)
	if !ok {
		return
	}
	h.export(w, r, dd)
}

func (h *ReportHandler) inventoryDrillDown(w http.ResponseWriter, r *http.Request) (*services.DrillDown, bool) {
	var q inventoryQuery
	if err := h.validator.BindQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}

	dd, err := h.service.InventoryDrillDown(r.Context(), chi.URLParam(r, "sessionID"), q.Source, q.Metric)
	if err != nil {
		h.handleServiceError(w, r, err)
		return nil, false
	}
	return dd, true
}

func (h *ReportHandler) rapDrillDown(w http.ResponseWriter, r *http.Request) (*services.DrillDown, bool) {
	var q rapQuery
	if err := h.validator.BindQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}

	dd, err := h.service.RapDrillDown(r.Context(), chi.URLParam(r, "sessionID"), q.Metric, q.Country)
	if err != nil {
		h.handleServiceError(w, r, err)
		return nil, false
	}
	return dd, true
}

func (h *ReportHandler) export(w http.ResponseWriter, r *http.Request, dd *services.DrillDown) {
	var buf bytes.Buffer
	filename, err := h.service.ExportDrillDown(r.Context(), dd, &buf)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "drill-down exported",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("source", dd.Source),
		slog.String("metric", dd.Metric),
		slog.Int("rows", dd.Count),
	)
	writeAttachment(w, csvContentType, filename, buf.Bytes())
}

// readUpload pulls the multipart "file" field and the optional "format"
// field. The returned cleanup removes any temporary files.
func (h *ReportHandler) readUpload(w http.ResponseWriter, r *http.Request) (services.Upload, func(), error) {
	noop := func() {}
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return services.Upload{}, noop, apierrors.NewWithDetails(
				http.StatusRequestEntityTooLarge,
				apierrors.ErrPayloadTooLarge.ErrorCode,
				apierrors.ErrPayloadTooLarge.Message,
				map[string]interface{}{"max_size": maxErr.Limit},
			)
		}
		return services.Upload{}, noop, apierrors.InvalidRequestWithError(err)
	}
	cleanup := func() { r.MultipartForm.RemoveAll() }

	file, header, err := r.FormFile("file")
	if err != nil {
		cleanup()
		return services.Upload{}, noop, apierrors.ErrMissingFile
	}

	form := uploadForm{FileName: header.Filename, Format: r.FormValue("format")}
	if err := h.validator.ValidateStruct(&form); err != nil {
		file.Close()
		cleanup()
		return services.Upload{}, noop, err
	}

	return services.Upload{
		FileName: form.FileName,
		Format:   form.Format,
		Body:     file,
	}, func() { file.Close(); cleanup() }, nil
}

// handleServiceError maps service sentinels onto API errors
func (h *ReportHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		err = apierrors.NotFoundError("session")
	case errors.Is(err, services.ErrSourceNotLoaded):
		source := r.URL.Query().Get("source")
		if source == "" {
			source = domain.SourceRAP
		}
		err = apierrors.SourceNotLoadedError(source)
	case errors.Is(err, services.ErrNoData):
		err = apierrors.ErrNoInventory
	case errors.Is(err, services.ErrUnknownSlot), errors.Is(err, services.ErrReservedLabel):
		err = apierrors.NewValidationErrors([]apierrors.ValidationError{{Field: "slot", Message: err.Error()}})
	}
	h.errorHandler.HandleError(w, r, err)
}

func renderDrillDown(w http.ResponseWriter, r *http.Request, dd *services.DrillDown) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"source":  dd.Source,
		"metric":  dd.Metric,
		"columns": dd.Columns,
		"data":    dd.Rows(),
		"count":   dd.Count,
	})
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
