package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tair/population/internal/analytics/domain"
	"github.com/tair/population/internal/analytics/usecase/command"
	"github.com/tair/population/internal/analytics/usecase/query"
	userdomain "github.com/tair/population/internal/user/domain"
	"github.com/tair/population/pkg/httpx"
	"github.com/tair/population/pkg/logger"
	"github.com/tair/population/pkg/middleware"
	"github.com/tair/population/pkg/spreadsheet"
)

// ReportHandler handles HTTP requests for analytics reports
type ReportHandler struct {
	createHandler *command.CreateReportHandler
	updateHandler *command.UpdateReportHandler
	deleteHandler *command.DeleteReportHandler
	getHandler    *query.GetReportHandler
	listHandler   *query.ListReportsHandler

	auth    *middleware.Authenticator
	metrics *middleware.HTTPMetrics
	created *prometheus.CounterVec
}

// NewReportHandler creates the handler and registers its collectors on reg
func NewReportHandler(
	createHandler *command.CreateReportHandler,
	updateHandler *command.UpdateReportHandler,
	deleteHandler *command.DeleteReportHandler,
	getHandler *query.GetReportHandler,
	listHandler *query.ListReportsHandler,
	authenticator *middleware.Authenticator,
	reg prometheus.Registerer,
) *ReportHandler {
	created := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_service_reports_created_total",
			Help: "Reports created by type",
		},
		[]string{"type"},
	)
	reg.MustRegister(created)

	return &ReportHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		auth:          authenticator,
		metrics:       middleware.NewHTTPMetrics(reg, "analytics_service"),
		created:       created,
	}
}

// RegisterRoutes registers the report routes. Every route requires
// authentication; delete requires the admin role.
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/reports").Subrouter()

	api.HandleFunc("", h.metrics.Wrap("/reports", h.auth.RequireAuth(h.ListReports))).Methods("GET")
	api.HandleFunc("", h.metrics.Wrap("/reports", h.auth.RequireAuth(h.CreateReport))).Methods("POST")
	api.HandleFunc("/export", h.metrics.Wrap("/reports/export", h.auth.RequireAuth(h.ExportReports))).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", h.metrics.Wrap("/reports/{id}", h.auth.RequireAuth(h.GetReport))).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", h.metrics.Wrap("/reports/{id}", h.auth.RequireAuth(h.UpdateReport))).Methods("PUT", "PATCH")
	api.HandleFunc("/{id:[0-9]+}", h.metrics.Wrap("/reports/{id}", h.auth.RequireRole(userdomain.RoleAdmin, h.DeleteReport))).Methods("DELETE")
}

// RegisterHealthCheck registers the health endpoint
func (h *ReportHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpx.RespondErrorMessage(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		httpx.RespondMessage(w, http.StatusOK, "Analytics service is healthy", nil)
	}).Methods("GET")
}

func listQuery(r *http.Request) query.ListReportsQuery {
	return query.ListReportsQuery{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.listHandler.Handle(r.Context(), listQuery(r))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	httpx.RespondData(w, http.StatusOK, reports)
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd, errs := decodeCreateReport(p)
	errs.Merge(cmd.Validate())
	if err := errs.OrNil(); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		cmd.CreatedByID = principal.UserID
		cmd.CreatedByUsername = principal.Username
	}

	report, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	h.created.WithLabelValues(string(report.Type)).Inc()

	logger.Info(r.Context()).
		Uint("report_id", report.ID).
		Str("type", string(report.Type)).
		Msg("Report created")
	httpx.RespondMessage(w, http.StatusCreated, "Report created successfully", report)
}

// GetReport handles GET /api/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Report")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	report, err := h.getHandler.Handle(r.Context(), query.GetReportQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, report)
}

// UpdateReport handles PUT /api/reports/{id}
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Report")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd, errs := decodeUpdateReport(id, p)
	errs.Merge(cmd.Validate())
	if err := errs.OrNil(); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	report, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondMessage(w, http.StatusOK, "Report updated successfully", report)
}

// DeleteReport handles DELETE /api/reports/{id}
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "Report")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteReportCommand{ID: id}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).Uint("report_id", id).Msg("Report deleted")
	httpx.RespondNoContent(w)
}

// ExportReports handles GET /api/reports/export; honours the list filters
func (h *ReportHandler) ExportReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.listHandler.Handle(r.Context(), listQuery(r))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := spreadsheet.Serve(w, "reports", ReportTable(reports)); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to export reports")
	}
}

// ReportTable lays out reports for a spreadsheet export.
func ReportTable(reports []domain.Report) spreadsheet.Table {
	title := cases.Title(language.English)
	rows := make([][]interface{}, 0, len(reports))
	for _, report := range reports {
		createdBy := ""
		if report.CreatedByUsername != nil {
			createdBy = *report.CreatedByUsername
		}
		rows = append(rows, []interface{}{
			report.ID,
			report.Title,
			report.Type.Label(),
			title.String(string(report.Status)),
			createdBy,
			report.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return spreadsheet.Table{
		Sheet:  "Reports",
		Header: []string{"id", "title", "type", "status", "created_by", "created_at"},
		Rows:   rows,
	}
}
