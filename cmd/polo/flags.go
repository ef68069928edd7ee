package main

import "github.com/urfave/cli/v2"

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "load configuration from `file`",
		EnvVars: []string{"POLONIEX_CONFIG"},
	}
	LogLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "override the configured log level (debug, info, warn, error)",
	}

	PairFlag = &cli.StringFlag{
		Name:     "pair",
		Aliases:  []string{"p"},
		Usage:    "currency pair such as BTC_ETH",
		Required: true,
	}
	PairOrAllFlag = &cli.StringFlag{
		Name:    "pair",
		Aliases: []string{"p"},
		Value:   "all",
		Usage:   "currency pair, or all",
	}
	CurrencyFlag = &cli.StringFlag{
		Name:     "currency",
		Usage:    "currency code such as BTC",
		Required: true,
	}
	DepthFlag = &cli.IntFlag{
		Name:  "depth",
		Value: 10,
		Usage: "order book depth",
	}
	PeriodFlag = &cli.IntFlag{
		Name:  "period",
		Value: 300,
		Usage: "candlestick period in seconds (300, 900, 1800, 7200, 14400, 86400)",
	}
	StartFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "range start, epoch seconds or a date",
	}
	EndFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "range end, epoch seconds or a date",
	}
	RateFlag = &cli.StringFlag{
		Name:     "rate",
		Usage:    "limit price",
		Required: true,
	}
	AmountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "order amount",
		Required: true,
	}
	OrderFlagsFlag = &cli.StringSliceFlag{
		Name:  "flag",
		Usage: "order flag: fillOrKill, immediateOrCancel or postOnly (repeatable)",
	}
	MarginFlag = &cli.BoolFlag{
		Name:  "margin",
		Usage: "place a margin order",
	}
	LendingRateFlag = &cli.StringFlag{
		Name:  "lending-rate",
		Usage: "maximum lending rate for a margin order",
	}
	OrderNumberFlag = &cli.StringFlag{
		Name:     "order",
		Usage:    "order number",
		Required: true,
	}
)
