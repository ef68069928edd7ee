package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
)

var app *cli.App

func init() {
	app = &cli.App{
		Name:    filepath.Base(os.Args[0]),
		Usage:   "query and trade on the Poloniex HTTP API",
		Version: "0.1.0",
	}

	app.Commands = []*cli.Command{
		tickerCommand,
		pairsCommand,
		volumeCommand,
		orderBookCommand,
		chartCommand,
		currenciesCommand,
		balancesCommand,
		balanceCommand,
		openOrdersCommand,
		tradeHistoryCommand,
		buyCommand,
		sellCommand,
		cancelCommand,
		feesCommand,
	}
	app.Flags = []cli.Flag{
		ConfigFlag,
		LogLevelFlag,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
