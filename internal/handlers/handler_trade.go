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

// tradeHandler handles HTTP requests related to the trade ledger.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

// newTradeHandler creates a new tradeHandler.
func newTradeHandler(ts portssvc.TradeSvcFacade) *tradeHandler {
	return &tradeHandler{
		tradeService: ts,
	}
}

// registerTradeRoutes registers routes related to trades.
func registerTradeRoutes(rg *gin.RouterGroup, tradeService portssvc.TradeSvcFacade) {
	h := newTradeHandler(tradeService)

	rg.POST("/accounts/:accountID/trades", h.addTrade)
	rg.GET("/accounts/:accountID/trades", h.listTrades)
	trades := rg.Group("/trades")
	{
		trades.PUT("/:tradeID", h.editTrade)
		trades.DELETE("/:tradeID", h.deleteTrade)
	}
}

// addTrade godoc
// @Summary Record a trade
// @Description Appends a trade to the account's ledger and recalculates the account balance from the full ledger
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   trade body dto.CreateTradeRequest true "Trade details"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record trade"
// @Router /accounts/{accountID}/trades [post]
func (h *tradeHandler) addTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	userID := actorID(c)
	logger = logger.With(slog.String("account_id", accountID))

	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.AddTrade(c.Request.Context(), accountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for trade")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording trade", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrStoreUnavailable) {
			logger.Error("Store unavailable recording trade", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		} else {
			logger.Error("Failed to record trade in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record trade"})
		}
		return
	}

	logger.Info("Trade recorded successfully", slog.String("trade_id", trade.TradeID))
	c.JSON(http.StatusCreated, dto.ToTradeResponse(trade))
}

// listTrades godoc
// @Summary List an account's trades
// @Description Retrieves the account's ledger sorted by execution time ascending
// @Tags trades
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ListTradesResponse
// @Failure 500 {object} map[string]string "Failed to list trades"
// @Router /accounts/{accountID}/trades [get]
func (h *tradeHandler) listTrades(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	trades, err := h.tradeService.ListTrades(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list trades from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trades"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTradesResponse{Trades: dto.ToListTradeResponse(trades)})
}

// editTrade godoc
// @Summary Edit a trade
// @Description Updates fields on an existing ledger entry and recalculates the owning account's balance
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   tradeID path string true "Trade ID"
// @Param   trade body dto.UpdateTradeRequest true "Fields to update"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to update trade"
// @Router /trades/{tradeID} [put]
func (h *tradeHandler) editTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("tradeID")
	userID := actorID(c)
	logger = logger.With(slog.String("trade_id", tradeID))

	var req dto.UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditTrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.EditTrade(c.Request.Context(), tradeID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Trade not found for edit")
			c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating trade", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update trade in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trade"})
		}
		return
	}

	logger.Info("Trade updated successfully")
	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// deleteTrade godoc
// @Summary Delete a trade
// @Description Removes a ledger entry and recalculates the owning account's balance
// @Tags trades
// @Produce  json
// @Param   tradeID path string true "Trade ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to delete trade"
// @Router /trades/{tradeID} [delete]
func (h *tradeHandler) deleteTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("tradeID")
	userID := actorID(c)
	logger = logger.With(slog.String("trade_id", tradeID))

	if err := h.tradeService.DeleteTrade(c.Request.Context(), tradeID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Trade not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		} else {
			logger.Error("Failed to delete trade in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trade"})
		}
		return
	}

	logger.Info("Trade deleted successfully")
	c.Status(http.StatusNoContent)
}
