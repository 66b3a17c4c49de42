package handler

import (
	"net/http"
	"runtime"
	"time"

	mw "edusite/internal/middleware"

	"github.com/jmoiron/sqlx"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db      *sqlx.DB
	started time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

type healthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Goroutines    int    `json:"goroutines"`
	AllocBytes    uint64 `json:"allocBytes"`
}

func (h *HealthHandler) check(w http.ResponseWriter, r *http.Request) *mw.AppError {
	if err := h.db.PingContext(r.Context()); err != nil {
		return &mw.AppError{Error: err, Message: "Database unreachable", Code: http.StatusServiceUnavailable, Kind: mw.CodeUpstream}
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return writeJSON(w, http.StatusOK, healthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		AllocBytes:    mem.Alloc,
	})
}
