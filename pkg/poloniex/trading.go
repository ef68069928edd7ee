package poloniex

import (
	"context"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"poloniex/pkg/core"
)

// GetBalances returns the available balance of every currency in the exchange account.
func (c *Client) GetBalances(ctx context.Context) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnBalances",
	})
}

// GetBalanceMap returns GetBalances as decimals. It is empty when the
// exchange reported an error.
func (c *Client) GetBalanceMap(ctx context.Context) (map[string]apd.Decimal, error) {
	resp, err := c.GetBalances(ctx)
	if err != nil {
		return nil, err
	}
	balances := make(map[string]apd.Decimal)
	if resp.Failed() {
		return balances, nil
	}
	if err := resp.Decode(&balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// GetBalanceFor returns the available balance of one currency.
func (c *Client) GetBalanceFor(ctx context.Context, currency string) (apd.Decimal, bool, error) {
	resp, err := c.GetBalances(ctx)
	if err != nil {
		return apd.Decimal{}, false, err
	}

	var d apd.Decimal
	found, err := resp.Lookup(normalizeCurrency(currency), &d)
	if err != nil || !found {
		return apd.Decimal{}, false, err
	}
	return d, true, nil
}

// GetCompleteBalances returns available, on-order and BTC-equivalent
// balances. An empty account means "all", covering margin and lending too.
func (c *Client) GetCompleteBalances(ctx context.Context, account string) (*Response, error) {
	if account == "" {
		account = "all"
	}
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnCompleteBalances",
		paramAccount: account,
	})
}

// GetDepositAddresses returns every deposit address generated so far.
func (c *Client) GetDepositAddresses(ctx context.Context) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnDepositAddresses",
	})
}

// GenerateNewAddress creates a deposit address for currency.
func (c *Client) GenerateNewAddress(ctx context.Context, currency string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:  "generateNewAddress",
		paramCurrency: normalizeCurrency(currency),
	})
}

// GetDepositsWithdrawals returns deposit and withdrawal history within the range.
func (c *Client) GetDepositsWithdrawals(ctx context.Context, r DateRange) (*Response, error) {
	params := core.Params{
		paramCommand: "returnDepositsWithdrawals",
	}
	return c.CallPrivate(ctx, params.Merge(r.Params()))
}

// GetOpenOrders returns open orders for pair, or for every market when pair is "all".
func (c *Client) GetOpenOrders(ctx context.Context, pair string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:      "returnOpenOrders",
		paramCurrencyPair: normalizePairOrAll(pair),
	})
}

// GetMyTradeHistory returns the account's own trades for pair within the range.
func (c *Client) GetMyTradeHistory(ctx context.Context, pair string, r DateRange) (*Response, error) {
	params := core.Params{
		paramCommand:      "returnTradeHistory",
		paramCurrencyPair: normalizePairOrAll(pair),
	}
	return c.CallPrivate(ctx, params.Merge(r.Params()))
}

// GetOrderTrades returns the trades that filled the given order.
func (c *Client) GetOrderTrades(ctx context.Context, orderNumber string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:     "returnOrderTrades",
		paramOrderNumber: orderNumber,
	})
}

// Buy places a limit buy order.
func (c *Client) Buy(ctx context.Context, pair string, rate, amount apd.Decimal, flags ...OrderFlag) (*Response, error) {
	return c.BuyOrSell(ctx, "buy", pair, rate, amount, flags...)
}

// Sell places a limit sell order.
func (c *Client) Sell(ctx context.Context, pair string, rate, amount apd.Decimal, flags ...OrderFlag) (*Response, error) {
	return c.BuyOrSell(ctx, "sell", pair, rate, amount, flags...)
}

// BuyOrSell places a limit order with command "buy" or "sell". Each flag
// given is sent as 1; flags are not mutually exclusive here, the exchange
// decides which combinations it accepts.
func (c *Client) BuyOrSell(ctx context.Context, command, pair string, rate, amount apd.Decimal, flags ...OrderFlag) (*Response, error) {
	if command != "buy" && command != "sell" {
		return nil, core.NewInvalidArgumentError(command, fmt.Sprintf("unknown order command %q", command))
	}

	params := core.Params{
		paramCommand:      command,
		paramCurrencyPair: normalizePair(pair),
		paramRate:         rate,
		paramAmount:       amount,
	}
	if err := applyFlags(command, params, flags); err != nil {
		return nil, err
	}
	return c.CallPrivate(ctx, params)
}

// CancelOrder cancels an open order.
func (c *Client) CancelOrder(ctx context.Context, pair, orderNumber string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:      "cancelOrder",
		paramCurrencyPair: normalizePair(pair),
		paramOrderNumber:  orderNumber,
	})
}

// MoveOrder cancels an order and places a new one at rate in a single call.
// A nil amount keeps the original amount. Only PostOnly and
// ImmediateOrCancel apply.
func (c *Client) MoveOrder(ctx context.Context, orderNumber string, rate apd.Decimal, amount *apd.Decimal, flags ...OrderFlag) (*Response, error) {
	const command = "moveOrder"

	params := core.Params{
		paramCommand:     command,
		paramOrderNumber: orderNumber,
		paramRate:        rate,
		paramAmount:      amount,
	}
	for _, f := range flags {
		if f == FillOrKill {
			return nil, core.NewInvalidArgumentError(command, "fillOrKill is not supported when moving an order")
		}
	}
	if err := applyFlags(command, params, flags); err != nil {
		return nil, err
	}
	return c.CallPrivate(ctx, params)
}

func applyFlags(command string, params core.Params, flags []OrderFlag) error {
	for _, f := range flags {
		if !f.valid() {
			return core.NewInvalidArgumentError(command, fmt.Sprintf("unknown order flag %q", f))
		}
		params[string(f)] = 1
	}
	return nil
}

// Withdraw sends amount of currency to an external address.
func (c *Client) Withdraw(ctx context.Context, currency string, amount apd.Decimal, address string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:  "withdraw",
		paramCurrency: normalizeCurrency(currency),
		paramAmount:   amount,
		"address":     address,
	})
}

// GetFeeInfo returns the account's maker and taker fees and 30 day volume.
func (c *Client) GetFeeInfo(ctx context.Context) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnFeeInfo",
	})
}

// GetAvailableAccountBalances returns balances by account. An empty account
// returns every account.
func (c *Client) GetAvailableAccountBalances(ctx context.Context, account string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnAvailableAccountBalances",
		paramAccount: account,
	})
}

// GetTradableBalances returns the margin-tradable balance of each currency in each market.
func (c *Client) GetTradableBalances(ctx context.Context) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand: "returnTradableBalances",
	})
}

// TransferBalance moves funds between accounts, for example from
// "exchange" to "margin".
func (c *Client) TransferBalance(ctx context.Context, currency string, amount apd.Decimal, fromAccount, toAccount string) (*Response, error) {
	return c.CallPrivate(ctx, core.Params{
		paramCommand:  "transferBalance",
		paramCurrency: normalizeCurrency(currency),
		paramAmount:   amount,
		"fromAccount": fromAccount,
		"toAccount":   toAccount,
	})
}
