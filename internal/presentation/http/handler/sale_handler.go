package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/winprintid/pos-api/internal/application/service"
	"github.com/winprintid/pos-api/internal/config"
	"github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/internal/presentation/http/dto/response"
	"github.com/winprintid/pos-api/pkg/invoice"
	"github.com/winprintid/pos-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
	authService *service.AuthService
	invoiceCfg  config.InvoiceConfig
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, authService *service.AuthService, invoiceCfg config.InvoiceConfig) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		authService: authService,
		invoiceCfg:  invoiceCfg,
	}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CustomerID *uuid.UUID `json:"customer_id"`
		Items      []struct {
			ProductID   uuid.UUID `json:"product_id" binding:"required"`
			Quantity    int       `json:"quantity"`
			Width       *float64  `json:"width"`
			Height      *float64  `json:"height"`
			Description *string   `json:"description"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleItemInput{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Width:       item.Width,
			Height:      item.Height,
			Description: item.Description,
		}
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		UserID:     *userID,
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Update handles editing a sale. The submitted item set replaces the
// existing one and every line is repriced from the current catalog.
func (h *SaleHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req struct {
		CustomerID    *uuid.UUID `json:"customer_id"`
		ClearCustomer bool       `json:"clear_customer"`
		Items         []struct {
			ProductID   uuid.UUID `json:"product_id" binding:"required"`
			Quantity    int       `json:"quantity"`
			Width       *float64  `json:"width"`
			Height      *float64  `json:"height"`
			Description *string   `json:"description"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleItemInput{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Width:       item.Width,
			Height:      item.Height,
			Description: item.Description,
		}
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), &service.UpdateSaleInput{
		UserID:        *userID,
		ID:            id,
		CustomerID:    req.CustomerID,
		ClearCustomer: req.ClearCustomer,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// Delete handles deleting a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Invoice renders the sale as a PDF invoice. The letterhead comes from
// the user's store profile, falling back to the configured defaults.
func (h *SaleHandler) Invoice(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	company := invoice.CompanyInfo{
		Name:    h.invoiceCfg.CompanyName,
		Address: h.invoiceCfg.CompanyAddress,
		Phone:   h.invoiceCfg.CompanyPhone,
		Email:   h.invoiceCfg.CompanyEmail,
	}
	if user.StoreName != nil && *user.StoreName != "" {
		company.Name = *user.StoreName
	}
	if user.StoreAddress != nil && *user.StoreAddress != "" {
		company.Address = *user.StoreAddress
	}
	if user.StorePhone != nil && *user.StorePhone != "" {
		company.Phone = *user.StorePhone
	}
	if user.StoreEmail != nil && *user.StoreEmail != "" {
		company.Email = *user.StoreEmail
	}

	payment := invoice.PaymentInfo{
		BankName:      h.invoiceCfg.BankName,
		AccountNumber: h.invoiceCfg.BankAccount,
		AccountHolder: h.invoiceCfg.BankHolder,
	}

	renderer := invoice.NewRenderer(company, payment)
	pdfBytes, err := renderer.Render(sale)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+sale.InvoiceNo+".pdf")
	c.Data(200, "application/pdf", pdfBytes)
}
