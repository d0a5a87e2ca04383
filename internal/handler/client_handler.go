package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/middleware"
	"github.com/lavanderia/backend/internal/service"
)

type ClientHandler struct {
	svc *service.ClientService
}

func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), &req)
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.svc.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	params := dto.ParsePagination(c)

	clients, total, err := h.svc.ListClients(c.Request.Context(), c.Query("search"), params.PageSize, params.Offset)
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.ClientListResponse{
		Clients:    clients,
		Pagination: dto.NewPagination(params.Page, params.PageSize, total),
	})
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}

	client, err := h.svc.UpdateClient(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	deleted, err := h.svc.DeleteClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "client not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
