package poloniex

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"

	"poloniex/pkg/core"
)

// Header names sent with every trading call.
const (
	HeaderKey  = "Key"
	HeaderSign = "Sign"
)

// SignedRequest is a trading call ready to send. Body is exactly the byte
// sequence the signature was computed over.
type SignedRequest struct {
	Body      string
	Signature string
	Headers   map[string]string
}

// Signer builds signed trading requests from a fixed credential pair.
type Signer struct {
	creds core.Credentials
}

// NewSigner creates a Signer for the given credentials.
func NewSigner(creds core.Credentials) *Signer {
	return &Signer{creds: creds}
}

// Sign adds the nonce to a copy of params, encodes the filtered result and
// signs it. The caller's map is left untouched.
func (s *Signer) Sign(params core.Params, nonce int64) (*SignedRequest, error) {
	p := params.Clone()
	if p == nil {
		p = core.Params{}
	}
	p[paramNonce] = nonce

	body, err := p.Encode()
	if err != nil {
		return nil, err
	}

	signature := signHMAC(body, s.creds.SecretKey)
	return &SignedRequest{
		Body:      body,
		Signature: signature,
		Headers: map[string]string{
			HeaderKey:  s.creds.APIKey,
			HeaderSign: signature,
		},
	}, nil
}

func signHMAC(message, secret string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}
