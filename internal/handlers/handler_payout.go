package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propledger/funded_account_app/internal/apperrors"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/dto"
	"github.com/propledger/funded_account_app/internal/middleware"
)

// payoutHandler handles HTTP requests related to payouts.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

// newPayoutHandler creates a new payoutHandler.
func newPayoutHandler(ps portssvc.PayoutSvcFacade) *payoutHandler {
	return &payoutHandler{
		payoutService: ps,
	}
}

// registerPayoutRoutes registers routes related to payouts.
func registerPayoutRoutes(rg *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade) {
	h := newPayoutHandler(payoutService)

	payouts := rg.Group("/accounts/:accountID/payouts")
	{
		payouts.GET("/available", h.getAvailablePayout)
		payouts.POST("", h.requestPayout)
		payouts.GET("", h.listPayouts)
	}
}

// getAvailablePayout godoc
// @Summary Get the distributable-profit breakdown
// @Description Computes the payout split for a funded account at its current balance
// @Tags payouts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AvailablePayoutResponse
// @Failure 400 {object} map[string]string "Account is not funded"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute payout"
// @Router /accounts/{accountID}/payouts/available [get]
func (h *payoutHandler) getAvailablePayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))

	breakdown, err := h.payoutService.AvailablePayout(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for payout breakdown")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Account not eligible for payout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute payout breakdown", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payout"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAvailablePayoutResponse(*breakdown))
}

// requestPayout godoc
// @Summary Request a payout
// @Description Validates the amount against the available share, records the payout, resets the balance to principal and rewrites the day's snapshot
// @Tags payouts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   payout body dto.RequestPayoutRequest true "Payout amount"
// @Success 201 {object} dto.PayoutResponse
// @Failure 400 {object} map[string]string "Invalid amount or account not funded"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Payout failed"
// @Router /accounts/{accountID}/payouts [post]
func (h *payoutHandler) requestPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	userID := actorID(c)
	logger = logger.With(slog.String("account_id", accountID))

	var req dto.RequestPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestPayout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received payout request", slog.String("amount", req.Amount.String()))

	payout, err := h.payoutService.RequestPayout(c.Request.Context(), accountID, req.Amount, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for payout")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Payout request rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrPartialSequence) {
			logger.Error("Payout partially committed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payout partially committed; manual repair required: " + err.Error()})
		} else {
			logger.Error("Failed to execute payout in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payout failed"})
		}
		return
	}

	logger.Info("Payout executed successfully", slog.String("payout_id", payout.PayoutID))
	c.JSON(http.StatusCreated, dto.ToPayoutResponse(payout))
}

// listPayouts godoc
// @Summary List an account's payouts
// @Description Retrieves the account's payout history, most recent first
// @Tags payouts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.PayoutResponse
// @Failure 500 {object} map[string]string "Failed to list payouts"
// @Router /accounts/{accountID}/payouts [get]
func (h *payoutHandler) listPayouts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	payouts, err := h.payoutService.ListPayouts(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list payouts from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payouts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPayoutResponse(payouts))
}
