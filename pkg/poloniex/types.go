package poloniex

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Parameter names shared by many commands.
const (
	paramCommand      = "command"
	paramNonce        = "nonce"
	paramCurrencyPair = "currencyPair"
	paramCurrency     = "currency"
	paramRate         = "rate"
	paramAmount       = "amount"
	paramOrderNumber  = "orderNumber"
	paramLendingRate  = "lendingRate"
	paramAccount      = "account"
	paramStart        = "start"
	paramEnd          = "end"
)

// AllPairs selects every market where the API accepts it.
const AllPairs = "all"

// OrderFlag is an optional execution constraint for a limit order.
type OrderFlag string

const (
	// FillOrKill fails the order unless it can be filled entirely at once.
	FillOrKill OrderFlag = "fillOrKill"
	// ImmediateOrCancel fills what it can at once and cancels the rest.
	ImmediateOrCancel OrderFlag = "immediateOrCancel"
	// PostOnly rejects the order if it would match immediately.
	PostOnly OrderFlag = "postOnly"
)

func (f OrderFlag) valid() bool {
	switch f {
	case FillOrKill, ImmediateOrCancel, PostOnly:
		return true
	}
	return false
}

// ChartPeriod is a candlestick width in seconds.
type ChartPeriod int

const (
	Period5m  ChartPeriod = 300
	Period15m ChartPeriod = 900
	Period30m ChartPeriod = 1800
	Period2h  ChartPeriod = 7200
	Period4h  ChartPeriod = 14400
	Period1d  ChartPeriod = 86400
)

// ValidChartPeriods returns the candlestick widths the chart endpoint accepts.
func ValidChartPeriods() []ChartPeriod {
	return []ChartPeriod{Period5m, Period15m, Period30m, Period2h, Period4h, Period1d}
}

func (p ChartPeriod) valid() bool {
	for _, v := range ValidChartPeriods() {
		if p == v {
			return true
		}
	}
	return false
}

// Ticker is one market entry of returnTicker.
type Ticker struct {
	ID            int64       `json:"id"`
	Last          apd.Decimal `json:"last"`
	LowestAsk     apd.Decimal `json:"lowestAsk"`
	HighestBid    apd.Decimal `json:"highestBid"`
	PercentChange apd.Decimal `json:"percentChange"`
	BaseVolume    apd.Decimal `json:"baseVolume"`
	QuoteVolume   apd.Decimal `json:"quoteVolume"`
	IsFrozen      string      `json:"isFrozen"`
	High24hr      apd.Decimal `json:"high24hr"`
	Low24hr       apd.Decimal `json:"low24hr"`
}

// Frozen reports whether trading in the market is suspended.
func (t *Ticker) Frozen() bool {
	return t.IsFrozen == "1"
}

// Volume is one market entry of return24hVolume, keyed by currency.
type Volume map[string]apd.Decimal

// normalizePair upper-cases a currency pair such as btc_eth.
func normalizePair(pair string) string {
	return strings.ToUpper(strings.TrimSpace(pair))
}

// normalizePairOrAll is normalizePair except that "all" keeps its lower-case form.
func normalizePairOrAll(pair string) string {
	if strings.EqualFold(strings.TrimSpace(pair), AllPairs) {
		return AllPairs
	}
	return normalizePair(pair)
}

// normalizeCurrency upper-cases a currency code.
func normalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}
