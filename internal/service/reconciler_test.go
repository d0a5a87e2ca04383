package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavanderia/backend/internal/fees"
	"github.com/lavanderia/backend/internal/model"
)

type fakeOrderStore struct {
	orders     map[string]*model.Order
	failUpdate map[string]error
}

func newFakeOrderStore(orders ...*model.Order) *fakeOrderStore {
	s := &fakeOrderStore{orders: map[string]*model.Order{}, failUpdate: map[string]error{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *fakeOrderStore) GetByID(_ context.Context, id string) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *o
	return &copied, nil
}

func (s *fakeOrderStore) ListPaidWithMethod(_ context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.orders {
		if o.IsPaid && o.PaymentMethod != nil {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) UpdatePayment(_ context.Context, id, method string, fee, netValue, feePercentage float64, paymentDate time.Time) error {
	if err := s.failUpdate[id]; err != nil {
		return err
	}
	o, ok := s.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	o.IsPaid = true
	o.PaymentMethod = &method
	o.Fee = &fee
	o.NetValue = &netValue
	o.FeePercentage = &feePercentage
	o.PaymentDate = &paymentDate
	return nil
}

func (s *fakeOrderStore) ClearPayment(_ context.Context, id string) error {
	o, ok := s.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	o.IsPaid = false
	o.PaymentMethod = nil
	o.Fee = nil
	o.NetValue = nil
	o.FeePercentage = nil
	o.PaymentDate = nil
	return nil
}

type staticFees struct {
	cfg fees.Config
}

func (f staticFees) GetFees(context.Context) fees.Config {
	merged := fees.DefaultConfig()
	for k, v := range f.cfg {
		merged[k] = v
	}
	return merged
}

func unpaidOrder(id string, value float64) *model.Order {
	return &model.Order{ID: id, Status: model.OrderStatusReady, Value: value}
}

func TestConfirmPayment(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 150.00))
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Cartão de Crédito (3x)": 4.5}})

	order, err := rec.ConfirmPayment(context.Background(), "o1", "Cartão de Crédito (3x)")
	require.NoError(t, err)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.Fee)
	require.NotNil(t, order.NetValue)
	assert.Equal(t, 6.75, *order.Fee)
	assert.Equal(t, 143.25, *order.NetValue)
	assert.Equal(t, 4.5, *order.FeePercentage)
	assert.NotNil(t, order.PaymentDate)

	// Persisted state matches what was returned.
	stored := store.orders["o1"]
	assert.True(t, stored.IsPaid)
	assert.Equal(t, 143.25, *stored.NetValue)
}

func TestConfirmPayment_UnknownMethodIsFeeFree(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 100.00))
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Pix": 2}})

	order, err := rec.ConfirmPayment(context.Background(), "o1", "Método Inexistente")
	require.NoError(t, err)

	assert.Zero(t, *order.Fee)
	assert.Equal(t, 100.00, *order.NetValue)
	assert.Zero(t, *order.FeePercentage)
}

func TestConfirmPayment_AlreadyPaid(t *testing.T) {
	paid := unpaidOrder("o1", 100.00)
	paid.IsPaid = true
	store := newFakeOrderStore(paid)
	rec := NewPaymentReconciler(store, staticFees{nil})

	_, err := rec.ConfirmPayment(context.Background(), "o1", "Pix")

	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestConfirmPayment_PersistFailureLeavesOrderUntouched(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 100.00))
	store.failUpdate["o1"] = errors.New("write timeout")
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Pix": 2}})

	_, err := rec.ConfirmPayment(context.Background(), "o1", "Pix")

	assert.Error(t, err)
	assert.False(t, store.orders["o1"].IsPaid)
	assert.Nil(t, store.orders["o1"].Fee)
}

func TestRevertPayment_ThenReconfirmRecomputesFreshValues(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 200.00))
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Cartão de Débito": 2, "Pix": 0}})

	_, err := rec.ConfirmPayment(context.Background(), "o1", "Cartão de Débito")
	require.NoError(t, err)
	assert.Equal(t, 196.00, *store.orders["o1"].NetValue)

	require.NoError(t, rec.RevertPayment(context.Background(), "o1"))
	reverted := store.orders["o1"]
	assert.False(t, reverted.IsPaid)
	assert.Nil(t, reverted.PaymentMethod)
	assert.Nil(t, reverted.Fee)
	assert.Nil(t, reverted.NetValue)
	assert.Nil(t, reverted.FeePercentage)
	assert.Nil(t, reverted.PaymentDate)

	// Re-confirming with a different method does not depend on the
	// earlier confirmation's values.
	order, err := rec.ConfirmPayment(context.Background(), "o1", "Pix")
	require.NoError(t, err)
	assert.Equal(t, 200.00, *order.NetValue)
	assert.Zero(t, *order.Fee)
}

func TestRevertPayment_NotPaid(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 100.00))
	rec := NewPaymentReconciler(store, staticFees{nil})

	err := rec.RevertPayment(context.Background(), "o1")

	assert.ErrorIs(t, err, ErrNotPaid)
}

func TestRecalculateAll(t *testing.T) {
	store := newFakeOrderStore(
		unpaidOrder("o1", 100.00),
		unpaidOrder("o2", 200.00),
		unpaidOrder("o3", 50.00), // stays unpaid, must not be touched
	)
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Pix": 0}})

	_, err := rec.ConfirmPayment(context.Background(), "o1", "Pix")
	require.NoError(t, err)
	_, err = rec.ConfirmPayment(context.Background(), "o2", "Pix")
	require.NoError(t, err)

	report, err := rec.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RecalculationReport{Total: 2, Updated: 2, Errors: 0}, report)
	assert.Zero(t, *store.orders["o1"].Fee)
	assert.Equal(t, 100.00, *store.orders["o1"].NetValue)
	assert.Equal(t, 200.00, *store.orders["o2"].NetValue)
	assert.False(t, store.orders["o3"].IsPaid)
}

func TestRecalculateAll_AppliesCurrentConfigToOldConfirmations(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 150.00))
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Cartão de Crédito (3x)": 0}})

	_, err := rec.ConfirmPayment(context.Background(), "o1", "Cartão de Crédito (3x)")
	require.NoError(t, err)
	assert.Equal(t, 150.00, *store.orders["o1"].NetValue)

	// Admin raises the fee; the sweep supersedes the persisted values.
	rec = NewPaymentReconciler(store, staticFees{fees.Config{"Cartão de Crédito (3x)": 4.5}})
	report, err := rec.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 6.75, *store.orders["o1"].Fee)
	assert.Equal(t, 143.25, *store.orders["o1"].NetValue)
	assert.Equal(t, 4.5, *store.orders["o1"].FeePercentage)
}

func TestRecalculateAll_Idempotent(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 33.33))
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Cartão de Débito": 3}})

	_, err := rec.ConfirmPayment(context.Background(), "o1", "Cartão de Débito")
	require.NoError(t, err)

	first, err := rec.RecalculateAll(context.Background())
	require.NoError(t, err)
	feeAfterFirst := *store.orders["o1"].Fee
	netAfterFirst := *store.orders["o1"].NetValue

	second, err := rec.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, feeAfterFirst, *store.orders["o1"].Fee)
	assert.Equal(t, netAfterFirst, *store.orders["o1"].NetValue)
	assert.Equal(t, 32.33, netAfterFirst)
}

func TestRecalculateAll_PartialFailureContinues(t *testing.T) {
	store := newFakeOrderStore(
		unpaidOrder("o1", 100.00),
		unpaidOrder("o2", 200.00),
		unpaidOrder("o3", 300.00),
	)
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Pix": 1}})
	for _, id := range []string{"o1", "o2", "o3"} {
		_, err := rec.ConfirmPayment(context.Background(), id, "Pix")
		require.NoError(t, err)
	}

	store.failUpdate["o2"] = errors.New("write timeout")

	report, err := rec.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.Errors)
}

func TestRecalculateAll_PreservesPaymentDate(t *testing.T) {
	store := newFakeOrderStore(unpaidOrder("o1", 100.00))
	rec := NewPaymentReconciler(store, staticFees{fees.Config{"Pix": 1}})

	_, err := rec.ConfirmPayment(context.Background(), "o1", "Pix")
	require.NoError(t, err)
	confirmedAt := *store.orders["o1"].PaymentDate

	_, err = rec.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, confirmedAt, *store.orders["o1"].PaymentDate)
}
