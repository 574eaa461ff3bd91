package http

import (
	"context"
	"io"

	"invsummary/internal/services"
	"invsummary/pkg/contracts/domain"
)

// ReportServiceInterface defines the session and report operations served over HTTP
type ReportServiceInterface interface {
	CreateSession(ctx context.Context) services.SessionInfo
	Session(ctx context.Context, sessionID string) (services.SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	UploadInventory(ctx context.Context, sessionID, slot string, up services.Upload) (*services.UploadResult, error)
	UploadRap(ctx context.Context, sessionID string, up services.Upload) (*services.UploadResult, error)

	InventorySummary(ctx context.Context, sessionID string) (*domain.InventoryReport, error)
	InventoryDrillDown(ctx context.Context, sessionID, source, metric string) (*services.DrillDown, error)
	RapSummary(ctx context.Context, sessionID string) (domain.RapSummary, error)
	RapDrillDown(ctx context.Context, sessionID, metric, country string) (*services.DrillDown, error)

	ExportDrillDown(ctx context.Context, dd *services.DrillDown, w io.Writer) (string, error)
	InventoryWorkbook(ctx context.Context, sessionID string, w io.Writer) error
}
