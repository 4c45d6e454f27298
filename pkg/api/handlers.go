package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/memod/pkg/logger"
	"github.com/ssargent/memod/pkg/store"
)

// maxBodyBytes bounds create/update request bodies
const maxBodyBytes = 1 << 20

var errMissingFields = errors.New("title and content are required")

// Server holds the API server state
type Server struct {
	store     IMemoStore
	config    ServerConfig
	metrics   *Metrics
	logger    logger.Logger
	startedAt time.Time
}

// NewServer creates a new API server. metrics may be nil.
func NewServer(store IMemoStore, config ServerConfig, metrics *Metrics, lggr logger.Logger) *Server {
	if lggr == nil {
		lggr = logger.Nop()
	}
	return &Server{
		store:     store,
		config:    config,
		metrics:   metrics,
		logger:    lggr,
		startedAt: time.Now(),
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API and the store instance id
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, HealthResponse{Status: "healthy", InstanceID: s.store.InstanceID()})
}

// handleCreateMemo godoc
//
//	@Summary		Create a memo
//	@Description	Create a memo. The server assigns the id and creation time.
//	@Tags			memos
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MemoRequest	true	"Memo title and content"
//	@Success		200		{object}	store.Record
//	@Failure		400		{object}	APIResponse
//	@Router			/memos [post]
//	@Security		ApiKeyAuth
func (s *Server) handleCreateMemo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	title, content, err := decodeMemoRequest(w, r)
	if err != nil {
		s.metrics.RecordStoreOperation("create", statusError, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	record := s.store.Create(title, content)
	s.metrics.RecordStoreOperation("create", statusSuccess, time.Since(start))
	s.logger.Debugw("memo created", "id", record.ID, "request_id", RequestIDFromContext(r.Context()))

	sendSuccess(w, record)
}

// handleListMemos godoc
//
//	@Summary		List memos
//	@Description	List every memo currently in the store, ordered by id
//	@Tags			memos
//	@Produce		json
//	@Success		200	{object}	MemoListResponse
//	@Router			/memos [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListMemos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	records := s.store.List()
	s.metrics.RecordStoreOperation("list", statusSuccess, time.Since(start))

	sendSuccess(w, MemoListResponse{Memos: records, Count: len(records)})
}

// handleGetMemo godoc
//
//	@Summary		Get a memo
//	@Description	Retrieve a memo by id
//	@Tags			memos
//	@Produce		json
//	@Param			id	path		int	true	"Memo id"
//	@Success		200	{object}	store.Record
//	@Failure		400	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/memos/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetMemo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := s.memoID(w, r, "get", start)
	if !ok {
		return
	}

	record, err := s.store.Get(id)
	if err != nil {
		s.storeError(w, "get", err, start)
		return
	}

	s.metrics.RecordStoreOperation("get", statusSuccess, time.Since(start))
	sendSuccess(w, record)
}

// handleUpdateMemo godoc
//
//	@Summary		Update a memo
//	@Description	Replace the title and content of a memo. id and created_at are kept.
//	@Tags			memos
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"Memo id"
//	@Param			request	body		MemoRequest	true	"New title and content"
//	@Success		200		{object}	store.Record
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/memos/{id} [put]
//	@Security		ApiKeyAuth
func (s *Server) handleUpdateMemo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := s.memoID(w, r, "update", start)
	if !ok {
		return
	}

	title, content, err := decodeMemoRequest(w, r)
	if err != nil {
		s.metrics.RecordStoreOperation("update", statusError, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := s.store.Update(id, title, content)
	if err != nil {
		s.storeError(w, "update", err, start)
		return
	}

	s.metrics.RecordStoreOperation("update", statusSuccess, time.Since(start))
	sendSuccess(w, record)
}

// handleDeleteMemo godoc
//
//	@Summary		Delete a memo
//	@Description	Delete a memo. Its id is never handed out again.
//	@Tags			memos
//	@Produce		json
//	@Param			id	path		int	true	"Memo id"
//	@Success		200	{object}	DeleteResponse
//	@Failure		400	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/memos/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleDeleteMemo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := s.memoID(w, r, "delete", start)
	if !ok {
		return
	}

	if err := s.store.Delete(id); err != nil {
		s.storeError(w, "delete", err, start)
		return
	}

	s.metrics.RecordStoreOperation("delete", statusSuccess, time.Since(start))
	s.logger.Debugw("memo deleted", "id", id, "request_id", RequestIDFromContext(r.Context()))
	sendSuccess(w, DeleteResponse{Message: "memo deleted", ID: id})
}

// handleStats godoc
//
//	@Summary		Get store statistics
//	@Description	Record count, next id, operation totals and the store instance id
//	@Tags			diagnostics
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Router			/stats [get]
//	@Security		ApiKeyAuth
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	s.metrics.UpdateStoreStats(stats)
	sendSuccess(w, StatsResponse{
		Stats:         stats,
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
	})
}

// memoID parses the {id} URL parameter, writing a 400 on failure
func (s *Server) memoID(w http.ResponseWriter, r *http.Request, operation string, start time.Time) (uint64, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		s.metrics.RecordStoreOperation(operation, statusError, time.Since(start))
		sendError(w, "Memo id is required", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		s.metrics.RecordStoreOperation(operation, statusError, time.Since(start))
		sendError(w, "Invalid memo id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// storeError maps a store error onto a response
func (s *Server) storeError(w http.ResponseWriter, operation string, err error, start time.Time) {
	if errors.Is(err, store.ErrNotFound) {
		s.metrics.RecordStoreOperation(operation, statusNotFound, time.Since(start))
		sendError(w, "Memo not found", http.StatusNotFound)
		return
	}
	s.metrics.RecordStoreOperation(operation, statusError, time.Since(start))
	s.logger.Errorw("store operation failed", "operation", operation, "err", err)
	sendError(w, "Internal error", http.StatusInternalServerError)
}

// decodeMemoRequest reads and validates a create/update body
func decodeMemoRequest(w http.ResponseWriter, r *http.Request) (string, string, error) {
	var req MemoRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", "", errors.New("request body too large")
		}
		return "", "", errors.New("invalid JSON request")
	}

	if req.Title == nil || req.Content == nil {
		return "", "", errMissingFields
	}
	if strings.TrimSpace(*req.Title) == "" {
		return "", "", errors.New("title must not be empty")
	}

	return *req.Title, *req.Content, nil
}

// startMetricsUpdater periodically refreshes the store gauges until done is closed
func (s *Server) startMetricsUpdater(done <-chan struct{}, interval time.Duration) {
	if s.metrics == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.metrics.UpdateStoreStats(s.store.Stats())
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.metrics.UpdateStoreStats(s.store.Stats())
		}
	}
}
