package poloniex

// Stats is a point-in-time view of the client's local bookkeeping.
// Rate limit and breaker fields stay zero when the feature is disabled.
type Stats struct {
	NoncesIssued int64
	LastNonce    int64

	PublicAllowed  int64
	PublicDenied   int64
	TradingAllowed int64
	TradingDenied  int64

	BreakerState    string
	BreakerFailures int
	BreakerRejected int64

	CachedReplies int
}

// Stats returns the current counters.
func (c *Client) Stats() Stats {
	s := Stats{
		NoncesIssued: c.nonces.Count(),
		LastNonce:    c.nonces.Last(),
	}
	if c.rateLimiter != nil {
		m := c.rateLimiter.Metrics()
		s.PublicAllowed = m.PublicAllowed
		s.PublicDenied = m.PublicDenied
		s.TradingAllowed = m.TradingAllowed
		s.TradingDenied = m.TradingDenied
	}
	if c.circuitBreaker != nil {
		s.BreakerState = c.circuitBreaker.State().String()
		s.BreakerFailures = c.circuitBreaker.Failures()
		s.BreakerRejected = c.circuitBreaker.Metrics().Rejected
	}
	if c.cache != nil {
		s.CachedReplies = c.cache.Len()
	}
	return s
}

// ResetCircuitBreaker closes the breaker and forgets recorded failures.
// It is a no-op when the breaker is disabled.
func (c *Client) ResetCircuitBreaker() {
	if c.circuitBreaker != nil {
		c.circuitBreaker.Reset()
	}
}

// ClearCache drops every cached public reply.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}
