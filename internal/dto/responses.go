package dto

import "github.com/lavanderia/backend/internal/model"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ClientListResponse struct {
	Clients    []model.Client `json:"clients"`
	Pagination Pagination     `json:"pagination"`
}

type OrderListResponse struct {
	Orders     []model.Order `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

type LedgerListResponse struct {
	Entries    []model.LedgerEntry `json:"entries"`
	Pagination Pagination          `json:"pagination"`
}

type StockListResponse struct {
	Items []model.StockItem `json:"items"`
}

type FeesResponse struct {
	Fees map[string]float64 `json:"fees"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
