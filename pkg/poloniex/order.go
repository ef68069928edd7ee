package poloniex

import (
	"context"
	"fmt"
	"slices"

	"github.com/cockroachdb/apd/v3"
)

// OrderSide is the direction of a limit order.
type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

// OrderRequest is a validated limit order ready for PlaceOrder.
type OrderRequest struct {
	Pair   string
	Side   OrderSide
	Rate   apd.Decimal
	Amount apd.Decimal
	Flags  []OrderFlag
	// Margin routes the order to marginBuy or marginSell.
	Margin bool
	// LendingRate caps the rate paid for borrowed funds on margin orders.
	LendingRate *apd.Decimal
}

// Command returns the API command the order is sent with.
func (r *OrderRequest) Command() string {
	if r.Margin {
		if r.Side == SideBuy {
			return "marginBuy"
		}
		return "marginSell"
	}
	return string(r.Side)
}

// OrderBuilder provides a fluent interface for constructing limit orders.
// It keeps the first error and reports it on Build.
//
// Example:
//
//	req, err := poloniex.NewOrderBuilder("BTC_ETH").
//	    Buy().
//	    Rate("0.0241").
//	    Amount("1.5").
//	    PostOnly().
//	    Build()
type OrderBuilder struct {
	req OrderRequest
	err error
}

// NewOrderBuilder creates a builder for an order in pair.
func NewOrderBuilder(pair string) *OrderBuilder {
	return &OrderBuilder{req: OrderRequest{Pair: normalizePair(pair)}}
}

// Side sets the order side.
func (b *OrderBuilder) Side(side OrderSide) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Side = side
	return b
}

func (b *OrderBuilder) Buy() *OrderBuilder  { return b.Side(SideBuy) }
func (b *OrderBuilder) Sell() *OrderBuilder { return b.Side(SideSell) }

// Rate sets the limit price from a string.
func (b *OrderBuilder) Rate(rate string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.req.Rate.SetString(rate); err != nil {
		b.err = fmt.Errorf("parse rate: %w", err)
	}
	return b
}

// RateDecimal sets the limit price.
func (b *OrderBuilder) RateDecimal(rate apd.Decimal) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Rate.Set(&rate)
	return b
}

// Amount sets the order amount from a string.
func (b *OrderBuilder) Amount(amount string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.req.Amount.SetString(amount); err != nil {
		b.err = fmt.Errorf("parse amount: %w", err)
	}
	return b
}

// AmountDecimal sets the order amount.
func (b *OrderBuilder) AmountDecimal(amount apd.Decimal) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Amount.Set(&amount)
	return b
}

// Flag adds an execution flag. Repeated flags are sent once.
func (b *OrderBuilder) Flag(flag OrderFlag) *OrderBuilder {
	if b.err != nil {
		return b
	}
	if !slices.Contains(b.req.Flags, flag) {
		b.req.Flags = append(b.req.Flags, flag)
	}
	return b
}

func (b *OrderBuilder) FillOrKill() *OrderBuilder        { return b.Flag(FillOrKill) }
func (b *OrderBuilder) ImmediateOrCancel() *OrderBuilder { return b.Flag(ImmediateOrCancel) }
func (b *OrderBuilder) PostOnly() *OrderBuilder          { return b.Flag(PostOnly) }

// Margin turns the order into a margin order. A non-empty lendingRate is
// sent as the maximum lending rate.
func (b *OrderBuilder) Margin(lendingRate string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Margin = true
	if lendingRate == "" {
		return b
	}
	d, _, err := apd.NewFromString(lendingRate)
	if err != nil {
		b.err = fmt.Errorf("parse lending rate: %w", err)
		return b
	}
	b.req.LendingRate = d
	return b
}

// Build validates and returns the order.
func (b *OrderBuilder) Build() (*OrderRequest, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := validateOrder(&b.req); err != nil {
		return nil, err
	}
	req := b.req
	req.Flags = slices.Clone(b.req.Flags)
	return &req, nil
}

func validateOrder(r *OrderRequest) error {
	if r.Pair == "" {
		return fmt.Errorf("pair is required")
	}
	if r.Side != SideBuy && r.Side != SideSell {
		return fmt.Errorf("invalid order side %q", r.Side)
	}
	if r.Rate.IsZero() || r.Rate.Negative {
		return fmt.Errorf("rate must be positive")
	}
	if r.Amount.IsZero() || r.Amount.Negative {
		return fmt.Errorf("amount must be positive")
	}
	for _, f := range r.Flags {
		if !f.valid() {
			return fmt.Errorf("unknown order flag %q", f)
		}
	}
	if r.Margin && len(r.Flags) > 0 {
		return fmt.Errorf("margin orders do not take execution flags")
	}
	if r.LendingRate != nil && r.LendingRate.Negative {
		return fmt.Errorf("lending rate must not be negative")
	}
	return nil
}

// PlaceOrder sends a built order through the matching endpoint.
func (c *Client) PlaceOrder(ctx context.Context, req *OrderRequest) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("order is required")
	}
	if req.Margin {
		return c.marginOrder(ctx, req.Command(), req.Pair, req.Rate, req.Amount, req.LendingRate)
	}
	return c.BuyOrSell(ctx, req.Command(), req.Pair, req.Rate, req.Amount, req.Flags...)
}
