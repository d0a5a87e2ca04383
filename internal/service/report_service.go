package service

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/lavanderia/backend/internal/fees"
	"github.com/lavanderia/backend/internal/repository"
)

type ReportService struct {
	ledgerRepo *repository.LedgerRepository
	orderRepo  *repository.OrderRepository
	template   string
}

func NewReportService(ledgerRepo *repository.LedgerRepository, orderRepo *repository.OrderRepository, reportTemplate string) *ReportService {
	return &ReportService{ledgerRepo: ledgerRepo, orderRepo: orderRepo, template: reportTemplate}
}

type ReportData struct {
	GeneratedAt  string                    `json:"generated_at"`
	DateFrom     string                    `json:"date_from"`
	DateTo       string                    `json:"date_to"`
	Income       float64                   `json:"income"`
	Expenses     float64                   `json:"expenses"`
	Balance      float64                   `json:"balance"`
	MethodTotals []repository.MethodTotals `json:"method_totals"`
}

// GenerateReport builds the financial report for [from, to). Per-method
// totals come from persisted fee/net columns only; the report never
// recomputes them.
func (s *ReportService) GenerateReport(ctx context.Context, from, to time.Time) (*ReportData, error) {
	income, expenses, err := s.ledgerRepo.SumByType(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totals, err := s.orderRepo.PaidTotalsByMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &ReportData{
		GeneratedAt:  time.Now().Format("2006-01-02 15:04:05 MST"),
		DateFrom:     from.Format("2006-01-02"),
		DateTo:       to.Format("2006-01-02"),
		Income:       income,
		Expenses:     expenses,
		Balance:      fees.Round2(income - expenses),
		MethodTotals: totals,
	}, nil
}

func (s *ReportService) RenderHTML(data *ReportData) (string, error) {
	tmpl, err := template.New("report").Parse(s.template)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
