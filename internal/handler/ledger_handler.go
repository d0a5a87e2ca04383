package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/middleware"
	"github.com/lavanderia/backend/internal/repository"
	"github.com/lavanderia/backend/internal/service"
)

type LedgerHandler struct {
	svc *service.LedgerService
}

func NewLedgerHandler(svc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

func (h *LedgerHandler) Create(c *gin.Context) {
	var req dto.LedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}

	entry, err := h.svc.CreateEntry(c.Request.Context(), &req)
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *LedgerHandler) Get(c *gin.Context) {
	entry, err := h.svc.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *LedgerHandler) List(c *gin.Context) {
	params := dto.ParsePagination(c)

	filter := repository.LedgerFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "date_from must be YYYY-MM-DD"})
			return
		}
		filter.From = from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "date_to must be YYYY-MM-DD"})
			return
		}
		filter.To = to.AddDate(0, 0, 1)
	}

	entries, total, err := h.svc.ListEntries(c.Request.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.LedgerListResponse{
		Entries:    entries,
		Pagination: dto.NewPagination(params.Page, params.PageSize, total),
	})
}

func (h *LedgerHandler) Delete(c *gin.Context) {
	deleted, err := h.svc.DeleteEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "ledger entry not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// MonthlySummary handles GET /ledger-summary?year=2026&month=8, defaulting
// to the current month.
func (h *LedgerHandler) MonthlySummary(c *gin.Context) {
	now := time.Now().UTC()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid month"})
		return
	}

	summary, err := h.svc.MonthlySummary(c.Request.Context(), year, time.Month(month))
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, summary)
}
