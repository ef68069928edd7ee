package poloniex

import (
	"context"

	"github.com/cockroachdb/apd/v3"

	"poloniex/pkg/core"
)

// CreateLoanOffer offers amount of currency for duration days at lendingRate.
func (c *Client) CreateLoanOffer(ctx context.Context, currency string, amount apd.Decimal, duration int, lendingRate apd.Decimal, autoRenew bool) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:     "createLoanOffer",
		paramCurrency:    normalizeCurrency(currency),
		paramAmount:      amount,
		"duration":       duration,
		paramLendingRate: lendingRate,
		"autoRenew":      autoRenew,
	})
}

// CancelLoanOffer cancels a loan offer.
func (c *Client) CancelLoanOffer(ctx context.Context, orderNumber string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:     "cancelLoanOffer",
		paramOrderNumber: orderNumber,
	})
}

// GetOpenLoanOffers returns open loan offers by currency.
func (c *Client) GetOpenLoanOffers(ctx context.Context) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnOpenLoanOffers",
	})
}

// GetActiveLoans returns loans currently provided and used.
func (c *Client) GetActiveLoans(ctx context.Context) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnActiveLoans",
	})
}

// GetLendingHistory returns completed loans within the range. A limit of
// zero or less leaves the count to the exchange.
func (c *Client) GetLendingHistory(ctx context.Context, r DateRange, limit int) (*Response, error) {
	params := core.Params{
		paramCommand: "returnLendingHistory",
	}
	if limit > 0 {
		params["limit"] = limit
	}
	return c.CallPrivate(ctx, params.Merge(r.Params()))
}

// ToggleAutoRenew flips the auto-renew setting of an active loan.
func (c *Client) ToggleAutoRenew(ctx context.Context, orderNumber string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:     "toggleAutoRenew",
		paramOrderNumber: orderNumber,
	})
}
