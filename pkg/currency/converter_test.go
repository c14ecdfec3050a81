package currency

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"flightbook-service/pkg/logger"
)

func TestToDisplay_FallbackRate(t *testing.T) {
	c := NewConverter("IDR", "", logger.NewNop())

	value, formatted := c.ToDisplay(100, "USD")

	assert.Equal(t, float64(16000), value)
	assert.Equal(t, "16.000", formatted)
}

func TestToDisplay_SameCurrency(t *testing.T) {
	c := NewConverter("IDR", "", logger.NewNop())

	value, formatted := c.ToDisplay(250000, "idr")

	assert.Equal(t, float64(250000), value)
	assert.Equal(t, "250.000", formatted)
}

func TestToDisplay_UnknownCurrencyPassesThrough(t *testing.T) {
	c := NewConverter("IDR", "", logger.NewNop())

	value, _ := c.ToDisplay(500, "XXX")

	assert.Equal(t, float64(500), value)
}

func TestToDisplay_LiveRateCached(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "IDR", r.URL.Query().Get("symbols"))
		fmt.Fprint(w, `{"rates":{"IDR":15500}}`)
	}))
	defer srv.Close()

	c := NewConverter("IDR", srv.URL, logger.NewNop())

	value, _ := c.ToDisplay(2, "USD")
	assert.Equal(t, float64(31000), value)

	// Second conversion within the cache window must not hit the source again.
	c.ToDisplay(3, "USD")
	assert.Equal(t, 1, calls)
}

func TestToDisplay_LiveSourceDownUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewConverter("IDR", srv.URL, logger.NewNop())

	value, _ := c.ToDisplay(100, "USD")
	assert.Equal(t, float64(16000), value)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "999", FormatAmount(999))
	assert.Equal(t, "1.000", FormatAmount(1000))
	assert.Equal(t, "16.000", FormatAmount(16000))
	assert.Equal(t, "1.234.567", FormatAmount(1234567))
	assert.Equal(t, "-16.000", FormatAmount(-16000))
}
