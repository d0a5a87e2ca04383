package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lavanderia/backend/internal/fees"
	"github.com/lavanderia/backend/internal/model"
)

var (
	ErrAlreadyPaid = errors.New("order is already paid")
	ErrNotPaid     = errors.New("order is not paid")
)

// OrderStore is the order persistence the reconciler writes through.
// *repository.OrderRepository satisfies it.
type OrderStore interface {
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListPaidWithMethod(ctx context.Context) ([]model.Order, error)
	UpdatePayment(ctx context.Context, id, method string, fee, netValue, feePercentage float64, paymentDate time.Time) error
	ClearPayment(ctx context.Context, id string) error
}

// FeeSource provides the fee-config snapshot an operation works off.
type FeeSource interface {
	GetFees(ctx context.Context) fees.Config
}

// PaymentReconciler applies the fee computation whenever an order's
// payment state changes and provides the bulk correction sweep run after
// a fee-config change.
type PaymentReconciler struct {
	orders OrderStore
	fees   FeeSource
}

func NewPaymentReconciler(orders OrderStore, feeSource FeeSource) *PaymentReconciler {
	return &PaymentReconciler{orders: orders, fees: feeSource}
}

// ConfirmPayment moves an unpaid order to paid. The fee, net value and
// fee percentage are computed from the current config snapshot and
// persisted together with the paid flag in a single update; on error the
// order is left untouched.
func (r *PaymentReconciler) ConfirmPayment(ctx context.Context, orderID, method string) (*model.Order, error) {
	order, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.IsPaid {
		return nil, ErrAlreadyPaid
	}

	cfg := r.fees.GetFees(ctx)
	netValue := fees.CalculateNetValue(order.Value, method, cfg)
	fee := order.Value - netValue
	pct := fees.Percentage(method, cfg)
	paymentDate := time.Now().UTC()

	if err := r.orders.UpdatePayment(ctx, orderID, method, fee, netValue, pct, paymentDate); err != nil {
		log.Error().Err(err).
			Str("order_id", orderID).
			Str("payment_method", method).
			Float64("fee", fee).
			Float64("net_value", netValue).
			Msg("payment confirmation failed")
		return nil, fmt.Errorf("persist payment: %w", err)
	}

	order.IsPaid = true
	order.PaymentMethod = &method
	order.Fee = &fee
	order.NetValue = &netValue
	order.FeePercentage = &pct
	order.PaymentDate = &paymentDate
	return order, nil
}

// RevertPayment moves a paid order back to unpaid, clearing the payment
// method and every persisted fee field. Re-confirming later recomputes
// fresh values, independent of this confirmation's.
func (r *PaymentReconciler) RevertPayment(ctx context.Context, orderID string) error {
	order, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if !order.IsPaid {
		return ErrNotPaid
	}

	if err := r.orders.ClearPayment(ctx, orderID); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("payment revert failed")
		return fmt.Errorf("clear payment: %w", err)
	}
	return nil
}

// RecalculationReport tallies a bulk recalculation sweep.
type RecalculationReport struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// RecalculateAll re-derives fee, net value and fee percentage for every
// paid order with a payment method, using one config snapshot for the
// whole batch. The loop is sequential and deliberately not transactional:
// a per-item failure is logged and tallied, the sweep continues, and
// re-running it is idempotent because the inputs (gross value, method,
// config) are unchanged.
func (r *PaymentReconciler) RecalculateAll(ctx context.Context) (RecalculationReport, error) {
	orders, err := r.orders.ListPaidWithMethod(ctx)
	if err != nil {
		return RecalculationReport{}, fmt.Errorf("list paid orders: %w", err)
	}

	cfg := r.fees.GetFees(ctx)
	report := RecalculationReport{Total: len(orders)}

	for _, order := range orders {
		method := *order.PaymentMethod
		netValue := fees.CalculateNetValue(order.Value, method, cfg)
		fee := order.Value - netValue
		pct := fees.Percentage(method, cfg)

		paymentDate := time.Now().UTC()
		if order.PaymentDate != nil {
			paymentDate = *order.PaymentDate
		}

		if err := r.orders.UpdatePayment(ctx, order.ID, method, fee, netValue, pct, paymentDate); err != nil {
			report.Errors++
			log.Error().Err(err).
				Str("order_id", order.ID).
				Str("payment_method", method).
				Float64("value", order.Value).
				Float64("fee", fee).
				Float64("net_value", netValue).
				Msg("fee recalculation failed for order")
			continue
		}
		report.Updated++
	}

	log.Info().
		Int("total", report.Total).
		Int("updated", report.Updated).
		Int("errors", report.Errors).
		Msg("fee recalculation finished")
	return report, nil
}
