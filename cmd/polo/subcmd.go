package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"poloniex/pkg/core"
	"poloniex/pkg/poloniex"
)

var (
	tickerCommand = &cli.Command{
		Name:   "ticker",
		Usage:  "Print the ticker of one market",
		Flags:  []cli.Flag{PairFlag},
		Action: ticker,
	}
	pairsCommand = &cli.Command{
		Name:   "pairs",
		Usage:  "List every market pair",
		Action: pairs,
	}
	volumeCommand = &cli.Command{
		Name:   "volume",
		Usage:  "Print 24 hour volume",
		Action: volume,
	}
	orderBookCommand = &cli.Command{
		Name:   "orderbook",
		Usage:  "Print the order book",
		Flags:  []cli.Flag{PairOrAllFlag, DepthFlag},
		Action: orderBook,
	}
	chartCommand = &cli.Command{
		Name:   "chart",
		Usage:  "Print candlestick data",
		Flags:  []cli.Flag{PairFlag, PeriodFlag, StartFlag, EndFlag},
		Action: chart,
	}
	currenciesCommand = &cli.Command{
		Name:   "currencies",
		Usage:  "Print currency information",
		Action: currencies,
	}
	balancesCommand = &cli.Command{
		Name:   "balances",
		Usage:  "Print available balances",
		Action: balances,
	}
	balanceCommand = &cli.Command{
		Name:   "balance",
		Usage:  "Print the available balance of one currency",
		Flags:  []cli.Flag{CurrencyFlag},
		Action: balance,
	}
	openOrdersCommand = &cli.Command{
		Name:   "open-orders",
		Usage:  "Print open orders",
		Flags:  []cli.Flag{PairOrAllFlag},
		Action: openOrders,
	}
	tradeHistoryCommand = &cli.Command{
		Name:   "trades",
		Usage:  "Print the account's trade history",
		Flags:  []cli.Flag{PairOrAllFlag, StartFlag, EndFlag},
		Action: tradeHistory,
	}
	buyCommand = &cli.Command{
		Name:   "buy",
		Usage:  "Place a limit buy order",
		Flags:  []cli.Flag{PairFlag, RateFlag, AmountFlag, OrderFlagsFlag, MarginFlag, LendingRateFlag},
		Action: placeOrder(poloniex.SideBuy),
	}
	sellCommand = &cli.Command{
		Name:   "sell",
		Usage:  "Place a limit sell order",
		Flags:  []cli.Flag{PairFlag, RateFlag, AmountFlag, OrderFlagsFlag, MarginFlag, LendingRateFlag},
		Action: placeOrder(poloniex.SideSell),
	}
	cancelCommand = &cli.Command{
		Name:   "cancel",
		Usage:  "Cancel an open order",
		Flags:  []cli.Flag{PairFlag, OrderNumberFlag},
		Action: cancelOrder,
	}
	feesCommand = &cli.Command{
		Name:   "fees",
		Usage:  "Print maker and taker fees",
		Action: fees,
	}
)

func newLogger(ctx *cli.Context, config *core.Config) (zerolog.Logger, error) {
	name := config.LogLevel
	if ctx.IsSet(LogLevelFlag.Name) {
		name = ctx.String(LogLevelFlag.Name)
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("log level: %w", err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func newClient(ctx *cli.Context) (*poloniex.Client, zerolog.Logger, error) {
	config, err := core.LoadConfig(ctx.String(ConfigFlag.Name))
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	logger, err := newLogger(ctx, config)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	logger.Debug().
		Str("public", config.Endpoints.Public).
		Str("trading", config.Endpoints.Trading).
		Msg("config loaded")

	c, err := poloniex.New(config, poloniex.WithLogger(logger))
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	return c, logger, nil
}

// withClient runs fn with a fresh client and closes it afterwards.
func withClient(fn func(*cli.Context, *poloniex.Client) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		c, logger, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		err = fn(ctx, c)
		stats := c.Stats()
		logger.Debug().
			Int64("nonces", stats.NoncesIssued).
			Int64("public", stats.PublicAllowed).
			Int64("trading", stats.TradingAllowed).
			Msg("done")
		return err
	}
}

func printJSON(v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// printResponse prints the payload, or fails with the exchange error.
func printResponse(resp *poloniex.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.Failed() {
		return fmt.Errorf("%s: %s", resp.Command, resp.ErrorMessage)
	}
	return printJSON(resp.Data)
}

func dateRange(ctx *cli.Context) (poloniex.DateRange, error) {
	return poloniex.FormatDates(ctx.String(StartFlag.Name), ctx.String(EndFlag.Name))
}

var ticker = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	pair := ctx.String(PairFlag.Name)
	t, found, err := c.GetTicker(ctx.Context, pair)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no ticker for %s", pair)
	}
	return printJSON(map[string]string{
		"last":          t.Last.String(),
		"lowestAsk":     t.LowestAsk.String(),
		"highestBid":    t.HighestBid.String(),
		"percentChange": t.PercentChange.String(),
		"baseVolume":    t.BaseVolume.String(),
		"quoteVolume":   t.QuoteVolume.String(),
		"high24hr":      t.High24hr.String(),
		"low24hr":       t.Low24hr.String(),
		"isFrozen":      t.IsFrozen,
	})
})

var pairs = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	list, err := c.GetTradingPairs(ctx.Context)
	if err != nil {
		return err
	}
	for _, p := range list {
		fmt.Println(p)
	}
	return nil
})

var volume = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	return printResponse(c.GetVolume(ctx.Context))
})

var orderBook = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	return printResponse(c.GetOrderBook(ctx.Context, ctx.String(PairOrAllFlag.Name), ctx.Int(DepthFlag.Name)))
})

var chart = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	r, err := dateRange(ctx)
	if err != nil {
		return err
	}
	period := poloniex.ChartPeriod(ctx.Int(PeriodFlag.Name))
	return printResponse(c.GetChartData(ctx.Context, ctx.String(PairFlag.Name), period, r))
})

var currencies = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	return printResponse(c.GetCurrencies(ctx.Context))
})

var balances = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	m, err := c.GetBalanceMap(ctx.Context)
	if err != nil {
		return err
	}
	out := make(map[string]string, len(m))
	for currency, d := range m {
		if d.IsZero() {
			continue
		}
		out[currency] = d.String()
	}
	return printJSON(out)
})

var balance = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	currency := ctx.String(CurrencyFlag.Name)
	d, found, err := c.GetBalanceFor(ctx.Context, currency)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no balance for %s", currency)
	}
	fmt.Println(d.String())
	return nil
})

var openOrders = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	return printResponse(c.GetOpenOrders(ctx.Context, ctx.String(PairOrAllFlag.Name)))
})

var tradeHistory = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	r, err := dateRange(ctx)
	if err != nil {
		return err
	}
	return printResponse(c.GetMyTradeHistory(ctx.Context, ctx.String(PairOrAllFlag.Name), r))
})

func placeOrder(side poloniex.OrderSide) cli.ActionFunc {
	return withClient(func(ctx *cli.Context, c *poloniex.Client) error {
		b := poloniex.NewOrderBuilder(ctx.String(PairFlag.Name)).
			Side(side).
			Rate(ctx.String(RateFlag.Name)).
			Amount(ctx.String(AmountFlag.Name))
		for _, f := range ctx.StringSlice(OrderFlagsFlag.Name) {
			b.Flag(poloniex.OrderFlag(f))
		}
		if ctx.Bool(MarginFlag.Name) {
			b.Margin(ctx.String(LendingRateFlag.Name))
		}

		req, err := b.Build()
		if err != nil {
			return err
		}
		return printResponse(c.PlaceOrder(ctx.Context, req))
	})
}

var cancelOrder = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	return printResponse(c.CancelOrder(ctx.Context, ctx.String(PairFlag.Name), ctx.String(OrderNumberFlag.Name)))
})

var fees = withClient(func(ctx *cli.Context, c *poloniex.Client) error {
	return printResponse(c.GetFeeInfo(ctx.Context))
})
