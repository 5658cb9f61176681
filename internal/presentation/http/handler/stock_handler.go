package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/application/service"
	"github.com/winprintid/pos-api/internal/presentation/http/dto/response"
	"github.com/winprintid/pos-api/pkg/pagination"
)

// StockHandler handles stock watchlist HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock watchlist handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List handles listing the user's stock picks
func (h *StockHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.stockService.ListStockPicks(c.Request.Context(), *userID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock picks retrieved successfully", result)
}

// Create handles adding a ticker to the watchlist
func (h *StockHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Ticker      string   `json:"ticker" binding:"required,min=1,max=20"`
		CompanyName *string  `json:"company_name"`
		BuyPrice    *float64 `json:"buy_price"`
		Support1    *float64 `json:"support_1"`
		Support2    *float64 `json:"support_2"`
		TakeProfit1 *float64 `json:"take_profit_1"`
		TakeProfit2 *float64 `json:"take_profit_2"`
		Notes       *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pick, err := h.stockService.CreateStockPick(c.Request.Context(), &service.CreateStockPickInput{
		UserID:      *userID,
		Ticker:      req.Ticker,
		CompanyName: req.CompanyName,
		BuyPrice:    req.BuyPrice,
		Support1:    req.Support1,
		Support2:    req.Support2,
		TakeProfit1: req.TakeProfit1,
		TakeProfit2: req.TakeProfit2,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock pick created successfully", pick)
}

// Get handles getting a single stock pick
func (h *StockHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock pick ID")
		return
	}

	pick, err := h.stockService.GetStockPick(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock pick retrieved successfully", pick)
}

// Update handles updating a stock pick
func (h *StockHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock pick ID")
		return
	}

	var req struct {
		Ticker      *string  `json:"ticker"`
		CompanyName *string  `json:"company_name"`
		BuyPrice    *float64 `json:"buy_price"`
		Support1    *float64 `json:"support_1"`
		Support2    *float64 `json:"support_2"`
		TakeProfit1 *float64 `json:"take_profit_1"`
		TakeProfit2 *float64 `json:"take_profit_2"`
		Notes       *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pick, err := h.stockService.UpdateStockPick(c.Request.Context(), &service.UpdateStockPickInput{
		UserID:      *userID,
		ID:          id,
		Ticker:      req.Ticker,
		CompanyName: req.CompanyName,
		BuyPrice:    req.BuyPrice,
		Support1:    req.Support1,
		Support2:    req.Support2,
		TakeProfit1: req.TakeProfit1,
		TakeProfit2: req.TakeProfit2,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock pick updated successfully", pick)
}

// Delete handles removing a ticker from the watchlist
func (h *StockHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock pick ID")
		return
	}

	if err := h.stockService.DeleteStockPick(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// RefreshQuotes handles fetching live quotes for every ticker on the
// user's watchlist. Concurrent refreshes for the same user share one
// upstream fetch.
func (h *StockHandler) RefreshQuotes(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	quotesByTicker, err := h.stockService.RefreshQuotes(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotes refreshed successfully", quotesByTicker)
}
