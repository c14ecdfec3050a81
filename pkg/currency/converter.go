package currency

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"flightbook-service/pkg/logger"
)

const rateMaxAge = 6 * time.Hour

// Approximate rates to the display currency, used when the live source is
// unreachable. Currencies not listed here pass through at rate 1.
var fallbackRates = map[string]float64{
	"USD": 160,
	"EUR": 175,
	"GBP": 205,
	"AUD": 105,
	"SGD": 120,
	"MYR": 36,
	"JPY": 1.05,
	"THB": 4.6,
	"KRW": 0.12,
	"CNY": 22.5,
}

type cachedRate struct {
	value     float64
	fetchedAt time.Time
}

// Converter converts provider prices into the display currency. The rate
// cache is shared across requests and guarded by a mutex; concurrent
// refreshes of the same rate are tolerated, last write wins.
type Converter struct {
	display    string
	rateURL    string
	httpClient *http.Client
	logger     logger.Logger

	mu    sync.Mutex
	cache map[string]cachedRate
}

// NewConverter creates a converter targeting the given display currency.
// rateURL is the base URL of the FX rate source, e.g. "https://api.exchangerate.host".
func NewConverter(display, rateURL string, log logger.Logger) *Converter {
	return &Converter{
		display:    strings.ToUpper(display),
		rateURL:    strings.TrimRight(rateURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log,
		cache:      make(map[string]cachedRate),
	}
}

// DisplayCurrency returns the currency code conversions target.
func (c *Converter) DisplayCurrency() string {
	return c.display
}

// ToDisplay converts amount from the given currency into the display
// currency, rounded to the whole unit. It returns the numeric value and the
// grouped display string. Conversion never fails; unknown currencies pass
// through unconverted.
func (c *Converter) ToDisplay(amount float64, code string) (float64, string) {
	rate := c.rate(strings.ToUpper(strings.TrimSpace(code)))
	converted := math.Round(amount * rate)
	return converted, FormatAmount(converted)
}

func (c *Converter) rate(code string) float64 {
	if code == "" || code == c.display {
		return 1
	}

	c.mu.Lock()
	cached, ok := c.cache[code]
	c.mu.Unlock()
	if ok && time.Since(cached.fetchedAt) < rateMaxAge {
		return cached.value
	}

	if rate, err := c.fetchRate(code); err == nil {
		c.mu.Lock()
		c.cache[code] = cachedRate{value: rate, fetchedAt: time.Now()}
		c.mu.Unlock()
		return rate
	} else {
		c.logger.Warn("Live FX rate unavailable, using fallback", "currency", code, "error", err)
	}

	if rate, ok := fallbackRates[code]; ok {
		return rate
	}
	return 1
}

func (c *Converter) fetchRate(code string) (float64, error) {
	if c.rateURL == "" {
		return 0, fmt.Errorf("no rate source configured")
	}

	url := fmt.Sprintf("%s/latest?base=%s&symbols=%s", c.rateURL, code, c.display)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate source returned status %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	rate, ok := body.Rates[c.display]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rate source response missing %s rate", c.display)
	}
	return rate, nil
}
