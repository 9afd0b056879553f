package web

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/focuskeeper/focuskeeper/internal/config"
	"github.com/focuskeeper/focuskeeper/internal/models"
	"github.com/focuskeeper/focuskeeper/internal/monitor"
	"github.com/focuskeeper/focuskeeper/internal/reporter"
	"github.com/focuskeeper/focuskeeper/pkg/utils"
)

// EventStore is the read side of the minimize history.
type EventStore interface {
	reporter.SummarySource
	GetEventsSince(since time.Time) ([]*models.MinimizeEvent, error)
	GetByID(id uint) (*models.MinimizeEvent, error)
	GetLatest() (*models.MinimizeEvent, error)
	GetErrorsSince(since time.Time) ([]*models.ErrorLog, error)
}

const defaultEventLimit = 100

type Handler struct {
	config   *config.Config
	repo     EventStore
	monitor  monitor.StatusProvider
	reporter *reporter.Reporter
	log      zerolog.Logger
	now      func() time.Time
}

// NewHandler serves history from repo and live counters from mon. Either
// may be nil: without a repo the history endpoints answer 503, without a
// monitor the status reports it as stopped.
func NewHandler(cfg *config.Config, repo EventStore, mon monitor.StatusProvider, log zerolog.Logger) *Handler {
	h := &Handler{
		config:  cfg,
		repo:    repo,
		monitor: mon,
		log:     log,
		now:     time.Now,
	}
	if repo != nil {
		h.reporter = reporter.New(repo)
	}
	return h
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/events", h.handleEvents)
	mux.HandleFunc("/api/events/latest", h.handleLatestEvent)
	mux.HandleFunc("/api/events/{id}", h.handleEvent)
	mux.HandleFunc("/api/errors", h.handleErrors)
	mux.HandleFunc("/api/report", h.handleReport)
	mux.HandleFunc("/api/summary", h.handleSummary)
	mux.HandleFunc("/api/status", h.handleStatus)

	mux.HandleFunc("/health", h.handleHealth)

	mux.HandleFunc("/", h.handleIndex)
}

func (h *Handler) requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (h *Handler) requireRepo(w http.ResponseWriter) bool {
	if h.repo == nil {
		http.Error(w, "History is disabled", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !h.requireGET(w, r) || !h.requireRepo(w) {
		return
	}

	query := r.URL.Query()
	periodType := query.Get("period") // day, week, month

	limit := defaultEventLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			http.Error(w, fmt.Sprintf("invalid limit: %s", limitStr), http.StatusBadRequest)
			return
		}
		limit = l
	}

	start, err := h.periodStart(periodType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, err := h.repo.GetEventsSince(start)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch events")
		http.Error(w, fmt.Sprintf("Failed to fetch events: %v", err), http.StatusInternalServerError)
		return
	}

	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	if events == nil {
		events = []*models.MinimizeEvent{}
	}

	h.respondJSON(w, events)
}

// periodStart maps an optional period name to the start of its range. No
// name means the last 24 hours.
func (h *Handler) periodStart(periodType string) (time.Time, error) {
	if periodType == "" {
		return h.now().Add(-24 * time.Hour), nil
	}
	period, err := reporter.GetPeriod(periodType, h.now())
	if err != nil {
		return time.Time{}, err
	}
	return period.Start, nil
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	if !h.requireGET(w, r) || !h.requireRepo(w) {
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		http.Error(w, fmt.Sprintf("invalid event id: %s", r.PathValue("id")), http.StatusBadRequest)
		return
	}

	event, err := h.repo.GetByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint64("id", id).Msg("Failed to fetch event")
		http.Error(w, fmt.Sprintf("Failed to fetch event: %v", err), http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, event)
}

// handleErrors lists the monitor failures stored for a period, newest
// first.
func (h *Handler) handleErrors(w http.ResponseWriter, r *http.Request) {
	if !h.requireGET(w, r) || !h.requireRepo(w) {
		return
	}

	start, err := h.periodStart(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := h.repo.GetErrorsSince(start)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch error logs")
		http.Error(w, fmt.Sprintf("Failed to fetch error logs: %v", err), http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []*models.ErrorLog{}
	}

	h.respondJSON(w, logs)
}

func (h *Handler) handleLatestEvent(w http.ResponseWriter, r *http.Request) {
	if !h.requireGET(w, r) || !h.requireRepo(w) {
		return
	}

	event, err := h.repo.GetLatest()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch latest event: %v", err), http.StatusInternalServerError)
		return
	}

	if event == nil {
		http.Error(w, "No events found", http.StatusNotFound)
		return
	}

	h.respondJSON(w, event)
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) (*models.Report, bool) {
	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	if _, err := reporter.GetPeriod(periodType, h.now()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	report, err := h.reporter.GenerateReport(periodType)
	if err != nil {
		h.log.Error().Err(err).Str("period", periodType).Msg("Failed to generate report")
		http.Error(w, fmt.Sprintf("Failed to generate report: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return report, true
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if !h.requireGET(w, r) || !h.requireRepo(w) {
		return
	}

	report, ok := h.generateReport(w, r)
	if !ok {
		return
	}

	h.respondJSON(w, report)
}

// handleSummary is the dashboard's fragment endpoint. htmx requests get
// HTML, everything else the JSON report.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !h.requireGET(w, r) || !h.requireRepo(w) {
		return
	}

	report, ok := h.generateReport(w, r)
	if !ok {
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		h.respondSummaryHTML(w, report)
		return
	}

	h.respondJSON(w, report)
}

func (h *Handler) respondSummaryHTML(w http.ResponseWriter, report *models.Report) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(report.Windows) == 0 {
		w.Write([]byte(`<div class="loading">No windows minimized</div>`))
		return
	}

	var b strings.Builder
	b.WriteString(`<div class="listing">`)
	for _, win := range report.Windows {
		name := win.ClassName
		if name == "" {
			name = "(no class)"
		}
		fmt.Fprintf(&b, `
		<div class="app-item" style="--bar-width: %.1f%%">
			<span class="app-name">%s</span>
			<div>
				<span class="app-time">%d</span>
				<span class="app-percentage">%.1f%%</span>
			</div>
		</div>`, win.Percentage, html.EscapeString(name), win.Minimized, win.Percentage)
	}
	b.WriteString(`</div>`)
	fmt.Fprintf(&b, `<div class="total">Total: %d minimized, %d failed</div>`, report.TotalMinimized, report.TotalFailed)

	w.Write([]byte(b.String()))
}

type statusResponse struct {
	monitor.Status
	Uptime         string   `json:"uptime,omitempty"`
	PollInterval   string   `json:"poll_interval"`
	Targets        []string `json:"targets"`
	Ignored        []string `json:"ignored"`
	HistoryEnabled bool     `json:"history_enabled"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireGET(w, r) {
		return
	}

	resp := statusResponse{
		PollInterval:   h.config.Monitor.PollInterval.String(),
		Targets:        h.config.Keywords.Targets,
		Ignored:        h.config.Keywords.Ignored,
		HistoryEnabled: h.repo != nil,
	}
	if h.monitor != nil {
		resp.Status = h.monitor.Status()
		if resp.Running && !resp.StartedAt.IsZero() {
			resp.Uptime = utils.Since(resp.StartedAt, h.now())
		}
	}

	h.respondJSON(w, resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, map[string]string{
		"status": "healthy",
		"time":   h.now().Format(time.RFC3339),
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (h *Handler) respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Error encoding JSON")
	}
}
