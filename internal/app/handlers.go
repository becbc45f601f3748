package app

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Spok95/compliance-audit/internal/ctxutil"
	"github.com/Spok95/compliance-audit/internal/db"
	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/export"
	"github.com/Spok95/compliance-audit/internal/models"
	"github.com/Spok95/compliance-audit/internal/observability"
	"go.uber.org/zap"
)

// API — тонкий HTTP-слой над движком. Решений тут нет: разбор запроса,
// идентичность из заголовков, коды ответов по таксономии ошибок.
type API struct {
	DB      *sql.DB
	Store   *db.Store
	Manager *engine.Manager
	Log     *zap.Logger
	limiter *SubmitLimiter
}

func NewAPI(database *sql.DB, store *db.Store, mgr *engine.Manager, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{
		DB:      database,
		Store:   store,
		Manager: mgr,
		Log:     log,
		limiter: NewSubmitLimiter(),
	}
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/audits", a.handleSubmit)
	mux.HandleFunc("GET /api/audits", a.handleListAudits)
	mux.HandleFunc("GET /api/audits/summary", a.handleSummary)
	mux.HandleFunc("GET /api/audits/export", a.handleExport)
	mux.HandleFunc("GET /api/audits/{id}", a.handleGetAudit)
	mux.HandleFunc("GET /api/forms/{id}", a.handleGetForm)
}

type submitRequest struct {
	FormID   int64            `json:"form_id"`
	RecordID *int64           `json:"record_id,omitempty"`
	Comments *string          `json:"comments,omitempty"`
	Answers  models.AnswerSet `json:"answers"`
}

type auditResponse struct {
	Record        *models.AuditRecord `json:"record"`
	DisplayResult string              `json:"display_result"`
}

func (a *API) handleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := identity(w, r)
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body: "+err.Error())
		return
	}
	if req.FormID == 0 {
		writeError(w, http.StatusBadRequest, "form_id is required")
		return
	}

	// по одной записи — не больше одного submit одновременно
	key := fmt.Sprintf("new:%d:%s", req.FormID, userID)
	if req.RecordID != nil {
		key = fmt.Sprintf("rec:%d", *req.RecordID)
	}
	unlock := a.limiter.lock(key)
	defer unlock()

	ctx := ctxutil.WithOp(ctxutil.WithUserID(r.Context(), userID), "submit")

	schema, err := a.Store.FetchForm(ctx, req.FormID)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	rec, err := a.Manager.Submit(ctx, schema, engine.SubmitInput{
		FormID:           req.FormID,
		UserID:           userID,
		TenantID:         tenantID,
		Comments:         req.Comments,
		Answers:          req.Answers,
		ExistingRecordID: req.RecordID,
	})
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	status := http.StatusCreated
	if req.RecordID != nil {
		status = http.StatusOK
	}
	writeJSON(w, status, auditResponse{
		Record:        rec,
		DisplayResult: engine.FormatResult(string(rec.Result)),
	})
}

func (a *API) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad audit id")
		return
	}

	ctx := ctxutil.WithOp(ctxutil.WithUserID(r.Context(), userID), "load_for_edit")
	rec, err := a.Manager.LoadForEdit(ctx, id, userID)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auditResponse{
		Record:        rec,
		DisplayResult: engine.FormatResult(string(rec.Result)),
	})
}

func (a *API) handleListAudits(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := db.ListAuditsByUser(r.Context(), a.DB, userID, limit)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"audits": recs})
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	sum, err := db.SummaryByUser(r.Context(), a.DB, userID)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	recs, err := db.ListAuditsByUser(r.Context(), a.DB, userID, 500)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	f, err := export.BuildAuditHistory(recs)
	if err != nil {
		observability.CaptureErr(err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	name := fmt.Sprintf("audits_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		a.Log.Warn("export write interrupted", zap.Error(err))
	}
}

func (a *API) handleGetForm(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad form id")
		return
	}
	schema, err := a.Store.FetchForm(r.Context(), id)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

// identity — пользователь и тенант из заголовков. Аутентификацию делает
// внешний шлюз; сюда приходит уже проверенная личность.
func identity(w http.ResponseWriter, r *http.Request) (string, *string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return "", nil, false
	}
	var tenantID *string
	if t := r.Header.Get("X-Tenant-ID"); t != "" {
		tenantID = &t
	}
	return userID, tenantID, true
}

// writeEngineError переводит таксономию движка в HTTP-коды.
func (a *API) writeEngineError(w http.ResponseWriter, err error) {
	var (
		vErr *engine.ValidationError
		sErr *engine.SchemaError
		nErr *engine.NotFoundError
		pErr *engine.PersistenceError
	)
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": vErr.Fields,
		})
	case errors.As(err, &sErr):
		observability.CaptureErr(err)
		writeError(w, http.StatusInternalServerError, sErr.Error())
	case errors.As(err, &nErr):
		writeError(w, http.StatusNotFound, nErr.Error())
	case errors.As(err, &pErr):
		observability.CaptureErr(err)
		a.Log.Error("persistence failure", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "storage unavailable, retry later")
	case errors.Is(err, engine.ErrNoUser):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		observability.CaptureErr(err)
		a.Log.Error("unexpected error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
