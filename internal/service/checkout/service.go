// Package checkout sequences coupon resolution, shipping pricing, total
// aggregation, and order submission for one storefront session.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-gateway/internal/backend"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/pricing"
)

// State of a checkout session.
type State string

const (
	StateIdle                State = "idle"
	StateCouponValidating    State = "coupon_validating"
	StateShippingCalculating State = "shipping_calculating"
	StateSubmitting          State = "submitting"
	StateSuccess             State = "success"
	StateFailed              State = "failed"
)

var transitions = map[State][]State{
	StateIdle:                {StateCouponValidating, StateShippingCalculating, StateSubmitting},
	StateCouponValidating:    {StateIdle, StateShippingCalculating},
	StateShippingCalculating: {StateIdle, StateSubmitting},
	StateSubmitting:          {StateSuccess, StateFailed},
	// Failed returns to idle on manual resubmission; Success is terminal.
	StateFailed: {StateIdle},
}

// CanTransition reports whether a checkout session may move between states.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type session struct {
	state State
}

func newSession() *session {
	return &session{state: StateIdle}
}

func (s *session) to(next State) error {
	if !CanTransition(s.state, next) {
		return fmt.Errorf("illegal checkout transition %s -> %s", s.state, next)
	}
	s.state = next
	return nil
}

type cartService interface {
	Snapshot(ctx context.Context, sessionID string) (domain.CartSnapshot, error)
	Clear(ctx context.Context, sessionID string) error
}

type couponService interface {
	Resolve(ctx context.Context, code string, snap domain.CartSnapshot) (pricing.Resolution, error)
}

type shippingService interface {
	PriceForQuantity(ctx context.Context, methodID string, quantity int) (pricing.ShippingQuote, error)
}

type backendClient interface {
	SubmitOrder(ctx context.Context, order domain.OrderSubmission) (*domain.OrderResult, error)
}

type Service struct {
	carts    cartService
	coupons  couponService
	shipping shippingService
	backend  backendClient
	logger   *zap.Logger
}

func New(carts cartService, coupons couponService, shipping shippingService, client *backend.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{carts: carts, coupons: coupons, shipping: shipping, backend: client, logger: logger}
}

type QuoteInput struct {
	CouponCode       string `json:"coupon_code"`
	ShippingMethodID string `json:"shipping_method_id"`
}

// Quote is one full pricing pass over the session's cart.
type Quote struct {
	SubtotalCents     int64              `json:"subtotalCents"`
	TotalQuantity     int                `json:"totalQuantity"`
	DiscountCents     int64              `json:"discountCents"`
	ShippingCents     int64              `json:"shippingCents"`
	ShippingBaseCents int64              `json:"shippingBaseCents"`
	TotalCents        int64              `json:"totalCents"`
	Coupon            pricing.Resolution `json:"coupon"`
}

// Quote prices the session's cart with an optional coupon and shipping
// method. A rejected coupon keeps the undiscounted totals; an unknown
// shipping method prices shipping at zero (logged), so a stale method id
// never blocks checkout.
func (s *Service) Quote(ctx context.Context, sessionID string, in QuoteInput) (*Quote, error) {
	snap, err := s.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, sessionID, newSession(), snap, in)
}

func (s *Service) quote(ctx context.Context, sessionID string, st *session, snap domain.CartSnapshot, in QuoteInput) (*Quote, error) {
	q := &Quote{
		SubtotalCents: snap.SubtotalCents,
		TotalQuantity: snap.TotalQuantity,
	}

	if in.CouponCode != "" {
		if err := st.to(StateCouponValidating); err != nil {
			return nil, err
		}
		res, err := s.coupons.Resolve(ctx, in.CouponCode, snap)
		if err != nil {
			return nil, err
		}
		q.Coupon = res
		if res.Applicable {
			q.DiscountCents = res.DiscountCents
		}
	}

	if in.ShippingMethodID != "" {
		if err := st.to(StateShippingCalculating); err != nil {
			return nil, err
		}
		quote, err := s.shipping.PriceForQuantity(ctx, in.ShippingMethodID, snap.TotalQuantity)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			s.logger.Warn("unknown shipping method, pricing shipping at zero",
				zap.String("session_id", sessionID),
				zap.String("shipping_method_id", in.ShippingMethodID))
			quote = pricing.ShippingQuote{}
		}
		q.ShippingBaseCents = quote.BasePriceCents
		q.ShippingCents = pricing.ApplyShippingDiscount(quote.PriceCents, q.Coupon.ShippingFraction)
	}

	if st.state != StateIdle {
		if err := st.to(StateIdle); err != nil {
			return nil, err
		}
	}
	q.TotalCents = pricing.AggregateTotal(q.SubtotalCents, q.DiscountCents, q.ShippingCents)
	return q, nil
}

type SubmitInput struct {
	CouponCode       string                 `json:"coupon_code"`
	ShippingMethodID string                 `json:"shipping_method_id"`
	ShippingAddress  map[string]interface{} `json:"shipping_address"`
	PaymentInfo      map[string]interface{} `json:"payment_info"`
}

// Result is the terminal outcome of one submission attempt.
type Result struct {
	State          State               `json:"state"`
	Quote          *Quote              `json:"quote"`
	Order          *domain.OrderResult `json:"order,omitempty"`
	FailureStatus  int                 `json:"-"`
	FailureMessage string              `json:"failureMessage,omitempty"`
}

// Submit prices the cart, forwards the order to the backend, and clears the
// cart on success. Backend rejections come back as a Failed result carrying
// the backend's status and message; only local failures return an error.
// There are no automatic retries.
func (s *Service) Submit(ctx context.Context, sessionID string, in SubmitInput) (*Result, error) {
	if in.ShippingMethodID == "" {
		return nil, errors.New("shipping_method_id required")
	}

	snap, err := s.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	st := newSession()
	quote, err := s.quote(ctx, sessionID, st, snap, QuoteInput{
		CouponCode:       in.CouponCode,
		ShippingMethodID: in.ShippingMethodID,
	})
	if err != nil {
		return nil, err
	}

	if err := st.to(StateSubmitting); err != nil {
		return nil, err
	}

	submission := domain.OrderSubmission{
		Reference:        uuid.NewString(),
		Items:            snap.Items,
		ShippingMethodID: in.ShippingMethodID,
		TotalCents:       quote.TotalCents,
		ShippingAddress:  in.ShippingAddress,
		PaymentInfo:      in.PaymentInfo,
	}
	if quote.Coupon.Applicable {
		submission.CouponCode = in.CouponCode
	}

	order, err := s.backend.SubmitOrder(ctx, submission)
	if err != nil {
		if terr := st.to(StateFailed); terr != nil {
			return nil, terr
		}
		result := &Result{
			State:          StateFailed,
			Quote:          quote,
			FailureStatus:  http.StatusBadGateway,
			FailureMessage: "order submission failed",
		}
		var berr *backend.Error
		if errors.As(err, &berr) {
			result.FailureStatus = berr.StatusCode
			result.FailureMessage = berr.Message
		}
		s.logger.Warn("order submission failed",
			zap.String("session_id", sessionID),
			zap.Int("status", result.FailureStatus),
			zap.Error(err))
		return result, nil
	}

	if err := st.to(StateSuccess); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The backend already owns the order; a stale local cart is
		// recoverable, so log and report success.
		s.logger.Error("clear cart after submission", zap.String("session_id", sessionID), zap.Error(err))
	}

	return &Result{State: StateSuccess, Quote: quote, Order: order}, nil
}
