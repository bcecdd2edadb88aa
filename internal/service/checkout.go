package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/nikolayk812/foodfleet/internal/port"
	"github.com/nikolayk812/foodfleet/internal/pricing"
	"go.uber.org/zap"
)

type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() uuid.UUID
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Details are the delivery and payment choices collected by the checkout form.
type Details struct {
	DeliveryAddress string
	PaymentMethod   string
	AcceptedTerms   bool
}

type PlaceRequest struct {
	OwnerID string
	Cart    domain.CartSnapshot
	Details
}

// cartSession is the part of cart.Store checkout needs.
type cartSession interface {
	Snapshot() domain.CartSnapshot
	Clear() error
}

type Checkout struct {
	policy pricing.FeePolicy
	orders port.OrderRepository
	logger *zap.Logger
	opts   options
}

// NewCheckout builds the checkout boundary. orders may be nil, in which case
// placed orders are only returned to the caller.
func NewCheckout(policy pricing.FeePolicy, orders port.OrderRepository, logger *zap.Logger, opts ...Option) (*Checkout, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("policy.Validate: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Checkout{
		policy: policy,
		orders: orders,
		logger: logger,
		opts:   newOptions(opts),
	}, nil
}

// Place turns a cart snapshot into a PENDING order. Lines and totals are copied,
// so later changes to the cart do not reach the order.
func (c *Checkout) Place(ctx context.Context, req PlaceRequest) (domain.Order, error) {
	if err := validate(req); err != nil {
		return domain.Order{}, err
	}

	totals, err := pricing.ComputeTotals(req.Cart, c.policy)
	if err != nil {
		return domain.Order{}, fmt.Errorf("pricing.ComputeTotals: %w", err)
	}

	now := c.opts.now()
	order := domain.Order{
		ID:              c.opts.newID(),
		OwnerID:         req.OwnerID,
		Lines:           req.Cart.Clone().Lines,
		Subtotal:        totals.Subtotal,
		DeliveryFee:     totals.DeliveryFee,
		Total:           totals.Total,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          domain.OrderStatusPending,
		History:         []domain.StatusChange{{Status: domain.OrderStatusPending, At: now}},
		CreatedAt:       now,
	}

	if c.orders != nil {
		if err := c.orders.CreateOrder(ctx, order.Clone()); err != nil {
			return domain.Order{}, fmt.Errorf("orders.CreateOrder: %w", err)
		}
	}

	c.logger.Info("order placed",
		zap.Stringer("order_id", order.ID),
		zap.String("owner_id", order.OwnerID),
		zap.Int("lines", len(order.Lines)),
		zap.Stringer("total", order.Total))

	return order, nil
}

// PlaceFromCart places the current content of the cart and empties it once the
// order exists.
func (c *Checkout) PlaceFromCart(ctx context.Context, ownerID string, cart cartSession, details Details) (domain.Order, error) {
	order, err := c.Place(ctx, PlaceRequest{
		OwnerID: ownerID,
		Cart:    cart.Snapshot(),
		Details: details,
	})
	if err != nil {
		return domain.Order{}, err
	}

	if err := cart.Clear(); err != nil {
		return order, fmt.Errorf("cart.Clear: %w", err)
	}

	return order, nil
}

func validate(req PlaceRequest) error {
	if req.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if req.Cart.IsEmpty() {
		return domain.ErrEmptyCart
	}
	if req.DeliveryAddress == "" {
		return domain.ErrMissingDeliveryAddress
	}
	if req.PaymentMethod == "" {
		return domain.ErrMissingPaymentMethod
	}
	if !req.AcceptedTerms {
		return domain.ErrTermsNotAccepted
	}

	return nil
}
