package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/winprintid/pos-api/internal/application/service"
	"github.com/winprintid/pos-api/internal/presentation/http/dto/response"
	"github.com/winprintid/pos-api/pkg/pagination"
)

// CogsHandler handles cost-of-goods-sold report HTTP requests
type CogsHandler struct {
	cogsService *service.CogsService
	location    *time.Location
}

// NewCogsHandler creates a new COGS report handler. Reports resolve
// calendar periods in the given location.
func NewCogsHandler(cogsService *service.CogsService, location *time.Location) *CogsHandler {
	if location == nil {
		location = time.Local
	}
	return &CogsHandler{
		cogsService: cogsService,
		location:    location,
	}
}

// Report handles generating a COGS report for a month, a year, or all time.
// Year and month default to the current calendar period.
func (h *CogsHandler) Report(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	now := time.Now().In(h.location)

	period := service.PeriodType(c.DefaultQuery("period", "month"))
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		response.BadRequest(c, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, "Invalid month")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	report, err := h.cogsService.Report(c.Request.Context(), &service.CogsReportInput{
		UserID: *userID,
		Period: period,
		Year:   year,
		Month:  time.Month(month),
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Location: h.location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "COGS report generated successfully", report)
}
