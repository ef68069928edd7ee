// Package poloniex is a client for the Poloniex HTTP API.
//
// Public market data goes through CallPublic as a plain GET. Trading calls go
// through CallPrivate, which adds a strictly increasing nonce, url-encodes
// the parameters in sorted key order, signs the body with HMAC-SHA512 and
// sends it with the Key and Sign headers.
//
// Network, timeout and JSON failures are returned as errors (see the core
// package). Errors reported by the exchange itself are not: the Response is
// returned with Failed() == true and the message is passed to the
// ErrorLogger once.
package poloniex
