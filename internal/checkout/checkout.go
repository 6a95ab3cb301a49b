// Package checkout validates the order form against the session cart
// and submits accepted orders to the commerce API. The cart is cleared
// only after the API accepts; any failure leaves it intact so the user
// can retry.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/restokasir/kasir-web/internal/cart"
	"github.com/restokasir/kasir-web/internal/domain"
	"github.com/restokasir/kasir-web/internal/upstream"
)

var (
	ErrCartEmpty        = errors.New("keranjang masih kosong")
	ErrNoPaymentMethod  = errors.New("silakan pilih metode pembayaran")
	ErrCheckoutInFlight = errors.New("pesanan sedang dikirim, tunggu sebentar")
)

// InsufficientCashError rejects a cash payment tendered below the cart
// total; the message names the required minimum.
type InsufficientCashError struct {
	Minimum decimal.Decimal
}

func (e *InsufficientCashError) Error() string {
	return "uang tunai kurang, minimal " + domain.FormatRupiah(e.Minimum)
}

type Service struct {
	carts   *cart.Store
	api     *upstream.Client
	logger  *slog.Logger
	created metric.Int64Counter
}

func NewService(carts *cart.Store, api *upstream.Client, logger *slog.Logger) *Service {
	meter := otel.Meter("checkout")
	created, err := meter.Int64Counter("pos.orders.created",
		metric.WithDescription("Orders accepted by the commerce API"))
	if err != nil {
		logger.Error("failed to create orders counter", "error", err)
	}

	return &Service{
		carts:   carts,
		api:     api,
		logger:  logger,
		created: created,
	}
}

// Form is the transient checkout input. Name and note are optional;
// the tendered amount only matters for cash methods.
type Form struct {
	CustomerName    string
	Note            string
	PaymentMethodID int
	CashTendered    int64
}

// ChangeDue recomputes the change for a tendered amount: tendered minus
// total, floored at zero, and always zero for non-cash methods.
func ChangeDue(tendered int64, total decimal.Decimal, isCash bool) decimal.Decimal {
	if !isCash {
		return decimal.Zero
	}
	change := decimal.NewFromInt(tendered).Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// Submit validates the form against the session's cart and creates the
// order. It returns the new order id on success. Validation failures
// happen before the create request is ever built; an empty cart or a
// missing method id is rejected before any network traffic at all.
func (s *Service) Submit(ctx context.Context, sessionID string, form Form) (int, error) {
	snapshot := s.carts.Get(sessionID)
	if snapshot.IsEmpty() {
		return 0, ErrCartEmpty
	}
	if form.PaymentMethodID == 0 {
		return 0, ErrNoPaymentMethod
	}

	if !s.carts.BeginCheckout(sessionID) {
		return 0, ErrCheckoutInFlight
	}
	defer s.carts.EndCheckout(sessionID)

	methods, err := s.api.PaymentMethods(ctx)
	if err != nil {
		return 0, fmt.Errorf("load payment methods: %w", err)
	}

	var method *domain.PaymentMethod
	for i := range methods {
		if methods[i].ID == form.PaymentMethodID {
			method = &methods[i]
			break
		}
	}
	if method == nil {
		return 0, ErrNoPaymentMethod
	}

	total := snapshot.Total()
	isCash := method.IsCash()
	if isCash && decimal.NewFromInt(form.CashTendered).LessThan(total) {
		return 0, &InsufficientCashError{Minimum: total}
	}

	// Switching to a non-cash method resets the tendered amount, so a
	// stale value from a previous cash selection never reaches the API.
	tendered := form.CashTendered
	if !isCash {
		tendered = 0
	}
	change := ChangeDue(tendered, total, isCash)

	lines := make([]domain.OrderLine, 0, len(snapshot.Lines))
	for _, l := range snapshot.Lines {
		lines = append(lines, domain.OrderLine{Product: l.Product, Quantity: l.Quantity})
	}

	created, err := s.api.CreateOrder(ctx, domain.CreateOrderRequest{
		CartItems:       lines,
		CustomerName:    form.CustomerName,
		OrderType:       domain.OrderTypeOffline,
		WhatsAppNo:      "",
		Total:           total.InexactFloat64(),
		CustomerNote:    form.Note,
		PaymentMethodID: form.PaymentMethodID,
		CashTendered:    float64(tendered),
		Change:          change.InexactFloat64(),
	})
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	s.carts.Clear(sessionID)
	if s.created != nil {
		s.created.Add(ctx, 1)
	}
	s.logger.Info("order created", "order_id", created.ID, "total", total.String(), "payment_method_id", form.PaymentMethodID)
	return created.ID, nil
}
