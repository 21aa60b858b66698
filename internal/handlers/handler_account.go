package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/dto"
	"github.com/propledger/funded_account_app/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	riskService        portssvc.RiskSvcFacade
	progressionService portssvc.ProgressionSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, rs portssvc.RiskSvcFacade, ps portssvc.ProgressionSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:     as,
		riskService:        rs,
		progressionService: ps,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, rs portssvc.RiskSvcFacade, ps portssvc.ProgressionSvcFacade) {
	h := newAccountHandler(as, rs, ps)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccountByID)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.GET("/:accountID/risk", h.getRiskStatus)
		accounts.POST("/:accountID/upgrade", h.upgradeAccount)
		accounts.GET("/:accountID/operations", h.listUnfinishedOperations)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a funded-trading account with balance equal to principal; drawdown and target parameters default from the firm template
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := actorID(c)
	logger.Info("Received request to create account", slog.String("name", req.Name))

	createdAccount, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrStoreUnavailable) {
			logger.Error("Store unavailable creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		} else {
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", createdAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(createdAccount))
}

// getAccountByID godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccountByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrStoreUnavailable) {
			logger.Error("Store unavailable fetching account", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		} else {
			logger.Error("Failed to get account from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a paginated list of accounts, newest first
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Max accounts to return (default 20)"
// @Param   offset query int false "Offset for pagination (default 0)"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// deleteAccount godoc
// @Summary Delete an account and all of its data
// @Description Removes the account together with its trades, snapshots and payouts in a single transaction
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	userID := actorID(c)
	logger = logger.With(slog.String("account_id", accountID))

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to delete account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		}
		return
	}

	logger.Info("Account deleted successfully")
	c.Status(http.StatusNoContent)
}

// getRiskStatus godoc
// @Summary Get the risk status of an account
// @Description Reports the daily drawdown level for the current trading day (with a degraded flag when the snapshot store was unreachable), the daily PnL and the max-drawdown breach state
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.RiskStatusResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute risk status"
// @Router /accounts/{accountID}/risk [get]
func (h *accountHandler) getRiskStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	userID := actorID(c)
	logger = logger.With(slog.String("account_id", accountID))

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for risk status")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account for risk status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute risk status"})
		}
		return
	}

	level, degraded, err := h.riskService.DailyDDLevel(c.Request.Context(), account, userID)
	if err != nil {
		logger.Error("Failed to compute daily DD level", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute risk status"})
		return
	}

	dailyPnL, err := h.riskService.DailyPnL(c.Request.Context(), account)
	if err != nil {
		logger.Error("Failed to compute daily PnL", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute risk status"})
		return
	}

	c.JSON(http.StatusOK, dto.RiskStatusResponse{
		AccountID:    account.AccountID,
		TradingDay:   domain.TradingDayOf(time.Now()),
		DailyDDLevel: level,
		Degraded:     degraded,
		DailyPnL:     dailyPnL,
		MaxBreached:  h.riskService.IsMaxBreached(account),
	})
}

// upgradeAccount godoc
// @Summary Upgrade an account to the next phase
// @Description Spawns a fresh next-phase account with balance reset to principal and retires the source as UPGRADED
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.UpgradeAccountResponse
// @Failure 400 {object} map[string]string "Account not eligible for upgrade"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Upgrade failed"
// @Router /accounts/{accountID}/upgrade [post]
func (h *accountHandler) upgradeAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	userID := actorID(c)
	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to upgrade account")

	newAccount, oldAccount, err := h.progressionService.Upgrade(c.Request.Context(), accountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for upgrade")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Account not eligible for upgrade", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrPartialSequence) {
			logger.Error("Upgrade partially committed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upgrade partially committed; manual repair required: " + err.Error()})
		} else {
			logger.Error("Failed to upgrade account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upgrade failed"})
		}
		return
	}

	logger.Info("Account upgraded successfully",
		slog.String("new_account_id", newAccount.AccountID),
		slog.String("new_phase", string(newAccount.Phase)))
	c.JSON(http.StatusOK, dto.UpgradeAccountResponse{
		NewAccount: dto.ToAccountResponse(newAccount),
		OldAccount: dto.ToAccountResponse(oldAccount),
	})
}

// listUnfinishedOperations godoc
// @Summary List unfinished multi-step operations
// @Description Retrieves upgrade/payout saga records that have not completed; a FAILED entry marks a partially committed sequence needing manual repair
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ListOperationsResponse
// @Failure 500 {object} map[string]string "Failed to list operations"
// @Router /accounts/{accountID}/operations [get]
func (h *accountHandler) listUnfinishedOperations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))

	sagas, err := h.progressionService.ListUnfinishedOperations(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list unfinished operations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list operations"})
		return
	}

	c.JSON(http.StatusOK, dto.ListOperationsResponse{Operations: dto.ToListOperationSagaResponse(sagas)})
}
