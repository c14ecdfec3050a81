package amadeus

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// systemErrorCode is the transient provider code that, like the
// "SYSTEM ERROR HAS OCCURRED" title, signals the v1 search shape should be
// tried instead.
const systemErrorCode = "141"

// friendlyByCode maps known provider error codes to user-facing messages.
var friendlyByCode = map[string]string{
	"34651": "Kursi tidak tersedia, silakan pilih penawaran lain",
	"32171": "Data wajib belum lengkap",
	"477":   "Format permintaan tidak valid",
	"38189": "Sesi berakhir, silakan ulangi permintaan",
	"38190": "Sesi berakhir, silakan ulangi permintaan",
	"38192": "Sesi berakhir, silakan ulangi permintaan",
}

type errorEnvelope struct {
	Errors []struct {
		Code   json.Number `json:"code"`
		Title  string      `json:"title"`
		Detail string      `json:"detail"`
		Status json.Number `json:"status"`
	} `json:"errors"`
}

func parseEnvelope(body string) (errorEnvelope, bool) {
	var env errorEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return env, false
	}
	return env, len(env.Errors) > 0
}

// Classify maps a provider error body to a user-facing message. Unrecognized
// or malformed bodies yield ("", false); the raw error stays available for
// diagnostics.
func Classify(body string) (string, bool) {
	env, ok := parseEnvelope(body)
	if !ok {
		return "", false
	}

	for _, e := range env.Errors {
		if msg, ok := friendlyByCode[e.Code.String()]; ok {
			return msg, true
		}
	}
	return "", false
}

// ShouldFallback reports whether the caller should retry against the older
// v1 search endpoint: a "SYSTEM ERROR HAS OCCURRED" title, the known
// transient code, or an HTTP 500.
func ShouldFallback(body string, statusCode int) bool {
	if statusCode == http.StatusInternalServerError {
		return true
	}

	env, ok := parseEnvelope(body)
	if !ok {
		return false
	}

	for _, e := range env.Errors {
		if strings.Contains(strings.ToUpper(e.Title), "SYSTEM ERROR HAS OCCURRED") {
			return true
		}
		if e.Code.String() == systemErrorCode {
			return true
		}
		if e.Status.String() == fmt.Sprint(http.StatusInternalServerError) {
			return true
		}
	}
	return false
}
