package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appdocs "github.com/mohramadan911/watsonx-document-processor/internal/application/docs"
	appmonitor "github.com/mohramadan911/watsonx-document-processor/internal/application/monitor"
	appworkflows "github.com/mohramadan911/watsonx-document-processor/internal/application/workflows"
	domaudit "github.com/mohramadan911/watsonx-document-processor/internal/domain/audit"
	domclassify "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
	domdocs "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
	domworkflows "github.com/mohramadan911/watsonx-document-processor/internal/domain/workflows"
	"github.com/mohramadan911/watsonx-document-processor/internal/middleware"
)

type Router struct {
	docsSvc *appdocs.Service
	monitor *appmonitor.Monitor
	sched   *appworkflows.Scheduler
	store   domdocs.ObjectStore
	audit   domaudit.Repository
}

func NewRouter(docsSvc *appdocs.Service, mon *appmonitor.Monitor, sched *appworkflows.Scheduler,
	store domdocs.ObjectStore, audit domaudit.Repository, db *sql.DB, healthContainer string) http.Handler {
	r := &Router{docsSvc: docsSvc, monitor: mon, sched: sched, store: store, audit: audit}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(60, 10))

	checkers := make(map[string]middleware.HealthChecker)
	if db != nil {
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}
	if store != nil && healthContainer != "" {
		checkers["object_store"] = &middleware.ObjectStoreHealthChecker{Store: store, Container: healthContainer}
	}
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/documents/classify", r.wrap(r.handleClassify))
		rt.Post("/containers/{container}/scan", r.wrap(r.handleScan))
		rt.Get("/containers/{container}/folders", r.wrap(r.handleFolders))

		rt.Post("/monitor/watch", r.wrap(r.handleWatch))
		rt.Delete("/monitor/watch/{container}", r.wrap(r.handleUnwatch))
		rt.Post("/monitor/pause", r.wrap(r.handlePause))
		rt.Post("/monitor/resume", r.wrap(r.handleResume))
		rt.Get("/monitor/status", r.wrap(r.handleMonitorStatus))

		rt.Post("/workflows", r.wrap(r.handleScheduleWorkflow))
		rt.Post("/workflows/{id}/complete", r.wrap(r.handleCompleteWorkflow))
		rt.Get("/workflows/active", r.wrap(r.handleActiveWorkflows))

		rt.Post("/reviews", r.wrap(r.handleScheduleReview))
		rt.Get("/reviews/upcoming", r.wrap(r.handleUpcomingReviews))

		rt.Get("/classifications", r.wrap(r.handleClassifications))
		rt.Get("/classifications/stats", r.wrap(r.handleClassificationStats))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domclassify.ErrQuotaExceeded) {
				http.Error(w, "model quota exceeded", http.StatusTooManyRequests)
				return
			}
			if errors.Is(err, domdocs.ErrNoObjectStore) {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/documents/classify
// Body: {"container": "...", "key": "..."} untuk objek yang sudah di store,
// atau {"container": "...", "local_path": "..."} untuk file lokal.
func (r *Router) handleClassify(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Container string `json:"container"`
		Key       string `json:"key"`
		LocalPath string `json:"local_path"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateContainerName(body.Container); err != nil {
		return err
	}

	if body.Key != "" {
		if err := middleware.ValidateObjectKey(body.Key); err != nil {
			return err
		}
		outcome := r.docsSvc.ProcessNewDocument(req.Context(), body.Container, body.Key)
		return writeJSON(w, outcome)
	}
	if body.LocalPath == "" {
		return fmt.Errorf("either key or local_path is required")
	}
	outcome := r.docsSvc.ClassifyAndOrganize(req.Context(), body.LocalPath, body.Container, "")
	return writeJSON(w, outcome)
}

// POST /v1/containers/{container}/scan
func (r *Router) handleScan(w http.ResponseWriter, req *http.Request) error {
	container := chi.URLParam(req, "container")
	if err := middleware.ValidateContainerName(container); err != nil {
		return err
	}
	result := r.monitor.ScanContainer(req.Context(), container)
	return writeJSON(w, result)
}

// GET /v1/containers/{container}/folders
func (r *Router) handleFolders(w http.ResponseWriter, req *http.Request) error {
	container := chi.URLParam(req, "container")
	if err := middleware.ValidateContainerName(container); err != nil {
		return err
	}
	if r.store == nil {
		return domdocs.ErrNoObjectStore
	}
	objects, err := r.store.List(req.Context(), container, "")
	if err != nil {
		return err
	}
	folders := []domdocs.ObjectInfo{}
	for _, obj := range objects {
		if obj.IsFolder {
			folders = append(folders, obj)
		}
	}
	return writeJSON(w, folders)
}

// POST /v1/monitor/watch  Body: {"container": "..."}
func (r *Router) handleWatch(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Container string `json:"container"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateContainerName(body.Container); err != nil {
		return err
	}
	r.monitor.Watch(body.Container)
	return writeJSON(w, r.monitor.Status())
}

// DELETE /v1/monitor/watch/{container}
func (r *Router) handleUnwatch(w http.ResponseWriter, req *http.Request) error {
	r.monitor.Unwatch(chi.URLParam(req, "container"))
	return writeJSON(w, r.monitor.Status())
}

func (r *Router) handlePause(w http.ResponseWriter, req *http.Request) error {
	r.monitor.Pause()
	return writeJSON(w, r.monitor.Status())
}

func (r *Router) handleResume(w http.ResponseWriter, req *http.Request) error {
	r.monitor.Resume()
	return writeJSON(w, r.monitor.Status())
}

func (r *Router) handleMonitorStatus(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, r.monitor.Status())
}

// POST /v1/workflows
func (r *Router) handleScheduleWorkflow(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		DocumentKey  string         `json:"document_key"`
		WorkflowType string         `json:"workflow_type"`
		DueDate      time.Time      `json:"due_date"`
		Assignees    []string       `json:"assignees"`
		Details      map[string]any `json:"details"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.DocumentKey == "" || body.WorkflowType == "" {
		return fmt.Errorf("document_key and workflow_type are required")
	}
	for _, a := range body.Assignees {
		if err := middleware.ValidateEmail(a); err != nil {
			return err
		}
	}

	id := r.sched.ScheduleWorkflow(req.Context(), body.DocumentKey, body.WorkflowType,
		body.DueDate, body.Assignees, body.Details)
	return writeJSON(w, map[string]any{"id": id, "status": "scheduled"})
}

// POST /v1/workflows/{id}/complete
func (r *Router) handleCompleteWorkflow(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid workflow id: %w", err)
	}
	var body struct {
		Result map[string]any `json:"result"`
	}
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&body)
	}
	if !r.sched.CompleteWorkflow(req.Context(), domworkflows.WorkflowID(id), body.Result) {
		http.Error(w, "workflow not found", http.StatusNotFound)
		return nil
	}
	return writeJSON(w, map[string]any{"id": id, "status": "completed"})
}

// GET /v1/workflows/active
func (r *Router) handleActiveWorkflows(w http.ResponseWriter, req *http.Request) error {
	active := r.sched.ActiveWorkflows()
	if active == nil {
		active = []*domworkflows.Workflow{}
	}
	return writeJSON(w, active)
}

// POST /v1/reviews
func (r *Router) handleScheduleReview(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		DocumentKey   string    `json:"document_key"`
		ReviewDate    time.Time `json:"review_date"`
		ReviewerEmail string    `json:"reviewer_email"`
		DocumentPath  string    `json:"document_path"`
		Reason        string    `json:"reason"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.DocumentKey == "" {
		return fmt.Errorf("document_key is required")
	}
	if body.ReviewerEmail != "" {
		if err := middleware.ValidateEmail(body.ReviewerEmail); err != nil {
			return err
		}
	}

	id := r.sched.ScheduleReview(body.DocumentKey, body.ReviewDate, body.ReviewerEmail,
		body.DocumentPath, body.Reason)
	middleware.IncrementReviews()
	return writeJSON(w, map[string]any{"id": id, "status": "scheduled"})
}

// GET /v1/reviews/upcoming?days=7
func (r *Router) handleUpcomingReviews(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	upcoming := r.sched.UpcomingReviews(middleware.ValidateDays(days))
	if upcoming == nil {
		upcoming = []*domworkflows.Review{}
	}
	return writeJSON(w, upcoming)
}

// GET /v1/classifications?limit=20
func (r *Router) handleClassifications(w http.ResponseWriter, req *http.Request) error {
	if r.audit == nil {
		return fmt.Errorf("classification audit log not configured")
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.audit.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domaudit.Record{}
	}
	return writeJSON(w, list)
}

// GET /v1/classifications/stats
func (r *Router) handleClassificationStats(w http.ResponseWriter, req *http.Request) error {
	if r.audit == nil {
		return fmt.Errorf("classification audit log not configured")
	}
	stats, err := r.audit.Stats(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"by_category": stats})
}
