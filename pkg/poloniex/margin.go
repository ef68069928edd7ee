package poloniex

import (
	"context"

	"github.com/cockroachdb/apd/v3"

	"poloniex/pkg/core"
)

// GetMarginAccountSummary returns a summary of the margin account.
func (c *Client) GetMarginAccountSummary(ctx context.Context) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnMarginAccountSummary",
	})
}

// MarginBuy places a margin buy order. A nil lendingRate is left out of the
// request and the exchange default applies.
func (c *Client) MarginBuy(ctx context.Context, pair string, rate, amount apd.Decimal, lendingRate *apd.Decimal) (*Response, error) {
	return c.marginOrder(ctx, "marginBuy", pair, rate, amount, lendingRate)
}

// MarginSell places a margin sell order. A nil lendingRate is left out of
// the request.
func (c *Client) MarginSell(ctx context.Context, pair string, rate, amount apd.Decimal, lendingRate *apd.Decimal) (*Response, error) {
	return c.marginOrder(ctx, "marginSell", pair, rate, amount, lendingRate)
}

func (c *Client) marginOrder(ctx context.Context, command, pair string, rate, amount apd.Decimal, lendingRate *apd.Decimal) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:      command,
		paramCurrencyPair: normalizePair(pair),
		paramRate:         rate,
		paramAmount:       amount,
		paramLendingRate:  lendingRate,
	})
}

// GetMarginPosition returns the margin position in pair. An empty pair or
// "all" returns every position.
func (c *Client) GetMarginPosition(ctx context.Context, pair string) (*Response, error) {
	if pair == "" {
		pair = AllPairs
	}
	return c.CallPrivate(ctx, core.Params{
		paramCommand:      "getMarginPosition",
		paramCurrencyPair: normalizePairOrAll(pair),
	})
}

// CloseMarginPosition closes the position in pair with a market order.
func (c *Client) CloseMarginPosition(ctx context.Context, pair string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:      "closeMarginPosition",
		paramCurrencyPair: normalizePair(pair),
	})
}
