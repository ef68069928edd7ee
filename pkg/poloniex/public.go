package poloniex

import (
	"context"
	"fmt"

	"poloniex/pkg/core"
)

// DefaultOrderBookDepth is used when GetOrderBook is given a non-positive depth.
const DefaultOrderBookDepth = 10

// GetTickers returns the ticker of every market, keyed by pair.
func (c *Client) GetTickers(ctx context.Context) (*Response, error) {
	return c.CallPublic(ctx, core.Params{
		paramCommand: "returnTicker",
	})
}

// GetTicker returns the ticker for one pair. found is false when the pair is
// unknown or the exchange reported an error.
func (c *Client) GetTicker(ctx context.Context, pair string) (*Ticker, bool, error) {
	resp, err := c.GetTickers(ctx)
	if err != nil {
		return nil, false, err
	}

	var t Ticker
	found, err := resp.Lookup(normalizePair(pair), &t)
	if err != nil || !found {
		return nil, false, err
	}
	return &t, true, nil
}

// GetTradingPairs returns every market pair in sorted order.
func (c *Client) GetTradingPairs(ctx context.Context) ([]string, error) {
	resp, err := c.GetTickers(ctx)
	if err != nil {
		return nil, err
	}
	if resp.Failed() {
		return nil, nil
	}
	return resp.Keys(), nil
}

// GetVolume returns the 24 hour volume of every market plus per-currency totals.
func (c *Client) GetVolume(ctx context.Context) (*Response, error) {
	return c.CallPublic(ctx, core.Params{
		paramCommand: "return24hVolume",
	})
}

// GetVolumeFor returns the 24 hour volume for one pair.
func (c *Client) GetVolumeFor(ctx context.Context, pair string) (Volume, bool, error) {
	resp, err := c.GetVolume(ctx)
	if err != nil {
		return nil, false, err
	}

	var v Volume
	found, err := resp.Lookup(normalizePair(pair), &v)
	if err != nil || !found {
		return nil, false, err
	}
	return v, true, nil
}

// GetOrderBook returns the order book for pair, or for every market when pair is "all".
func (c *Client) GetOrderBook(ctx context.Context, pair string, depth int) (*Response, error) {
	if depth <= 0 {
		depth = DefaultOrderBookDepth
	}
	return c.CallPublic(ctx, core.Params{
		paramCommand:      "returnOrderBook",
		paramCurrencyPair: normalizePairOrAll(pair),
		"depth":           depth,
	})
}

// GetTradeHistory returns public trades for pair within the range.
func (c *Client) GetTradeHistory(ctx context.Context, pair string, r DateRange) (*Response, error) {
	params := core.Params{
		paramCommand:      "returnTradeHistory",
		paramCurrencyPair: normalizePair(pair),
	}
	return c.CallPublic(ctx, params.Merge(r.Params()))
}

// GetChartData returns candlesticks for pair. A zero period leaves the
// choice to the exchange; other values must be one of ValidChartPeriods.
func (c *Client) GetChartData(ctx context.Context, pair string, period ChartPeriod, r DateRange) (*Response, error) {
	const command = "returnChartData"

	params := core.Params{
		paramCommand:      command,
		paramCurrencyPair: normalizePair(pair),
	}
	if period != 0 {
		if !period.valid() {
			return nil, core.NewInvalidArgumentError(command, fmt.Sprintf("unsupported chart period %d", period))
		}
		params["period"] = int(period)
	}
	return c.CallPublic(ctx, params.Merge(r.Params()))
}

// GetCurrencies returns information about every currency.
func (c *Client) GetCurrencies(ctx context.Context) (*Response, error) {
	return c.CallPublic(ctx, core.Params{
		paramCommand: "returnCurrencies",
	})
}

// GetLoanOrders returns the open loan offers and demands for currency.
func (c *Client) GetLoanOrders(ctx context.Context, currency string) (*Response, error) {
	return c.CallPublic(ctx, core.Params{
		paramCommand:  "returnLoanOrders",
		paramCurrency: normalizeCurrency(currency),
	})
}
