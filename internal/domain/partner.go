package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Partner is a vendor integration resolved by the Host the vendor calls.
// VendorHost, the host of the vendor's own API, is the fallback match when
// a vendor calls from a domain other than the wallet host.
type Partner struct {
	ID           string `json:"id"`
	Host         string `json:"host"`
	VendorHost   string `json:"vendor_host,omitempty"`
	Name         string `json:"name"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Enabled      bool   `json:"enabled"`
}

// Sign returns the hex HMAC-SHA256 of body keyed by the partner secret.
func (p *Partner) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(p.ClientSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature with the expected HMAC in constant time.
func (p *Partner) VerifySignature(body []byte, signature string) bool {
	if p.ClientSecret == "" || signature == "" || len(body) == 0 {
		return false
	}
	expected := p.Sign(body)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// MatchCredentials compares basic-auth credentials in constant time.
func (p *Partner) MatchCredentials(clientID, clientSecret string) bool {
	idOK := subtle.ConstantTimeCompare([]byte(p.ClientID), []byte(clientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(p.ClientSecret), []byte(clientSecret)) == 1
	return idOK && secretOK && p.ClientID != ""
}
