package amadeus

import (
	"errors"
	"fmt"
)

// ErrCredentialUnavailable means no bearer token could be obtained; the
// operation cannot reach the provider at all.
var ErrCredentialUnavailable = errors.New("amadeus: no access token available")

// ProviderError is a non-2xx provider response. The raw body is kept for
// downstream classification.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("amadeus: HTTP %d: %s", e.StatusCode, e.Body)
}

// NetworkError is a transport-level failure (DNS, connect, timeout). Never
// retried by the client.
type NetworkError struct {
	Reason string
}

func (e *NetworkError) Error() string {
	return "amadeus: network error: " + e.Reason
}

// FriendlyMessage translates an error from the client into a user-facing
// message. Provider errors are classified first and fall back to the raw
// technical text; network and credential failures get fixed messages.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		if msg, ok := Classify(pe.Body); ok {
			return msg
		}
		return fmt.Sprintf("HTTP %d: %s", pe.StatusCode, pe.Body)
	}

	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Gangguan koneksi ke penyedia penerbangan, silakan coba lagi"
	}

	if errors.Is(err, ErrCredentialUnavailable) {
		return "Token akses Amadeus tidak tersedia. Set AMADEUS_ACCESS_TOKEN atau AMADEUS_CLIENT_ID/SECRET."
	}

	return err.Error()
}
