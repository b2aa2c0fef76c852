// Package adminapi serves the web admin panel: pending entry review,
// account edits, backups, and audit maintenance. Authentication is a
// static allowlist of admin identities behind a signed session cookie.
package adminapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Server exposes the admin panel endpoints over a gin router.
type Server struct {
	service *economy.Service
	logger  *zap.Logger
	cfg     Config
}

// NewServer wires the admin API.
func NewServer(service *economy.Service, logger *zap.Logger, cfg Config) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Server{service: service, logger: logger, cfg: cfg}, nil
}

// Router builds the gin engine.
func (server *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Origin", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/api/login", server.handleLogin)

	api := router.Group("/api")
	api.Use(server.sessionMiddleware())
	api.GET("/deposits", server.handleListDeposits)
	api.GET("/withdrawals", server.handleListWithdrawals)
	api.POST("/deposits/:id/approve", server.handleApproveDeposit)
	api.POST("/deposits/:id/reject", server.handleRejectDeposit)
	api.POST("/withdrawals/:id/approve", server.handleApproveWithdrawal)
	api.POST("/withdrawals/:id/reject", server.handleRejectWithdrawal)
	api.POST("/accounts/:id/balance", server.handleEditBalance)
	api.POST("/accounts/:id/items", server.handleEditItemCount)
	api.POST("/backup", server.handleBackup)
	api.POST("/audit/purge", server.handlePurgeAudit)
	api.GET("/audit", server.handleListAudit)

	return router
}

type loginRequest struct {
	AdminID string `json:"admin_id" binding:"required"`
}

func (server *Server) handleLogin(ctx *gin.Context) {
	var request loginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", "admin_id is required"))
		return
	}
	if !server.cfg.IsAdmin(request.AdminID) {
		// Same response for unknown ids; the allowlist stays unguessable.
		ctx.JSON(http.StatusForbidden, errorResponse("forbidden", "not an admin"))
		return
	}
	token, err := server.issueSession(request.AdminID, server.service.Now())
	if err != nil {
		server.logger.Error("session issue failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal", "session issue failed"))
		return
	}
	ctx.SetCookie(server.cfg.SessionCookieName, token, int(server.cfg.SessionTTL.Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"admin_id": request.AdminID})
}

func (server *Server) handleListDeposits(ctx *gin.Context) {
	entries, err := server.service.ListPendingDeposits(ctx.Request.Context(), listLimit(ctx))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deposits": mapEntries(entries)})
}

func (server *Server) handleListWithdrawals(ctx *gin.Context) {
	entries, err := server.service.ListPendingWithdrawals(ctx.Request.Context(), listLimit(ctx))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"withdrawals": mapEntries(entries)})
}

func (server *Server) handleApproveDeposit(ctx *gin.Context) {
	adminID, entryID, ok := server.resolveParams(ctx)
	if !ok {
		return
	}
	if err := server.service.ApproveDeposit(ctx.Request.Context(), adminID, entryID); err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "completed"})
}

func (server *Server) handleRejectDeposit(ctx *gin.Context) {
	adminID, entryID, ok := server.resolveParams(ctx)
	if !ok {
		return
	}
	if err := server.service.RejectDeposit(ctx.Request.Context(), adminID, entryID); err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

func (server *Server) handleApproveWithdrawal(ctx *gin.Context) {
	adminID, entryID, ok := server.resolveParams(ctx)
	if !ok {
		return
	}
	if err := server.service.ApproveWithdrawal(ctx.Request.Context(), adminID, entryID); err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "completed"})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (server *Server) handleRejectWithdrawal(ctx *gin.Context) {
	adminID, entryID, ok := server.resolveParams(ctx)
	if !ok {
		return
	}
	var request rejectRequest
	_ = ctx.ShouldBindJSON(&request)
	if err := server.service.RejectWithdrawal(ctx.Request.Context(), adminID, entryID, request.Reason); err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

type editBalanceRequest struct {
	BalanceNano *int64 `json:"balance_nano" binding:"required"`
}

func (server *Server) handleEditBalance(ctx *gin.Context) {
	adminID, err := economy.NewAdminID(adminIDFrom(ctx))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	userID, err := economy.NewUserID(ctx.Param("id"))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	var request editBalanceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", "balance_nano is required"))
		return
	}
	balance, err := economy.NewAmount(*request.BalanceNano)
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	if err := server.service.EditAccountBalance(ctx.Request.Context(), adminID, userID, balance); err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"balance_nano": balance.Int64()})
}

type editItemRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Count *int64 `json:"count" binding:"required"`
}

func (server *Server) handleEditItemCount(ctx *gin.Context) {
	adminID, err := economy.NewAdminID(adminIDFrom(ctx))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	userID, err := economy.NewUserID(ctx.Param("id"))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	var request editItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", "kind and count are required"))
		return
	}
	err = server.service.EditItemCount(ctx.Request.Context(), adminID, userID, economy.ItemKind(request.Kind), *request.Count)
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"kind": request.Kind, "count": *request.Count})
}

func (server *Server) handleBackup(ctx *gin.Context) {
	exports, err := server.service.ExportAccounts(ctx.Request.Context())
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	raw, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	name := fmt.Sprintf("accounts-%s.json", server.service.Now().Format("20060102-150405"))
	path := filepath.Join(server.cfg.BackupDir, name)
	if err := os.MkdirAll(server.cfg.BackupDir, 0o755); err != nil {
		server.respondError(ctx, err)
		return
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		server.respondError(ctx, err)
		return
	}
	server.logger.Info("backup written", zap.String("path", path), zap.Int("accounts", len(exports)))
	ctx.JSON(http.StatusOK, gin.H{"path": path, "accounts": len(exports)})
}

type purgeRequest struct {
	RetentionDays int `json:"retention_days" binding:"required"`
}

func (server *Server) handlePurgeAudit(ctx *gin.Context) {
	adminID, err := economy.NewAdminID(adminIDFrom(ctx))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	var request purgeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", "retention_days is required"))
		return
	}
	removed, err := server.service.PurgeAuditLogs(ctx.Request.Context(), adminID, request.RetentionDays)
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (server *Server) handleListAudit(ctx *gin.Context) {
	entries, err := server.service.RecentAudit(ctx.Request.Context(), listLimit(ctx))
	if err != nil {
		server.respondError(ctx, err)
		return
	}
	payload := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, gin.H{
			"actor":      entry.Actor,
			"action":     entry.Action,
			"target":     entry.Target,
			"detail":     entry.Detail,
			"created_at": entry.CreatedUnixUTC,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"audit": payload})
}

func (server *Server) resolveParams(ctx *gin.Context) (economy.AdminID, economy.EntryID, bool) {
	adminID, err := economy.NewAdminID(adminIDFrom(ctx))
	if err != nil {
		server.respondError(ctx, err)
		return economy.AdminID{}, economy.EntryID{}, false
	}
	entryID, err := economy.NewEntryID(ctx.Param("id"))
	if err != nil {
		server.respondError(ctx, err)
		return economy.AdminID{}, economy.EntryID{}, false
	}
	return adminID, entryID, true
}

// respondError maps the domain taxonomy onto HTTP statuses. Admin
// responses carry the stable code; user-facing surfaces do not.
func (server *Server) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, economy.ErrEntryNotFound), errors.Is(err, economy.ErrAccountNotFound):
		ctx.JSON(http.StatusNotFound, errorResponse("not_found", err.Error()))
	case errors.Is(err, economy.ErrEntryAlreadyResolved):
		ctx.JSON(http.StatusConflict, errorResponse("entry_already_resolved", err.Error()))
	case errors.Is(err, economy.ErrInsufficientBalance):
		ctx.JSON(http.StatusConflict, errorResponse("insufficient_balance", err.Error()))
	case errors.Is(err, economy.ErrInvalidAmount),
		errors.Is(err, economy.ErrInvalidQuantity),
		errors.Is(err, economy.ErrInvalidItemKind),
		errors.Is(err, economy.ErrInvalidEntryID),
		errors.Is(err, economy.ErrInvalidEntryKind),
		errors.Is(err, economy.ErrInvalidUserID),
		errors.Is(err, economy.ErrInvalidAdminID):
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
	case errors.Is(err, economy.ErrStoreUnavailable):
		server.logger.Error("store unavailable", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, errorResponse("store_unavailable", "temporary storage failure"))
	default:
		server.logger.Error("admin request failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal", "unexpected failure"))
	}
}

func errorResponse(code string, message string) gin.H {
	return gin.H{"error": code, "message": message}
}

func mapEntries(entries []economy.Entry) []gin.H {
	payload := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, gin.H{
			"entry_id":    entry.EntryID.String(),
			"user_id":     entry.UserID.String(),
			"kind":        entry.Kind.String(),
			"amount_nano": entry.Amount.Int64(),
			"amount_ton":  entry.Amount.TON(),
			"fee_nano":    entry.Fee.Int64(),
			"network":     entry.Network,
			"proof_hash":  entry.ProofHash,
			"address":     entry.Address,
			"status":      entry.Status.String(),
			"created_at":  entry.CreatedUnixUTC,
		})
	}
	return payload
}

func listLimit(ctx *gin.Context) int {
	limit := defaultListLimit
	if raw := ctx.Query("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil || limit <= 0 {
			limit = defaultListLimit
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}
