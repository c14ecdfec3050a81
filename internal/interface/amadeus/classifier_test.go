package amadeus

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KnownCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "session expired",
			body: `{"errors":[{"code":38192,"title":"Access token expired"}]}`,
			want: "Sesi berakhir, silakan ulangi permintaan",
		},
		{
			name: "seat unavailable",
			body: `{"errors":[{"code":34651,"title":"SEGMENT SELL FAILURE"}]}`,
			want: "Kursi tidak tersedia, silakan pilih penawaran lain",
		},
		{
			name: "mandatory data missing",
			body: `{"errors":[{"code":32171,"title":"MANDATORY DATA MISSING"}]}`,
			want: "Data wajib belum lengkap",
		},
		{
			name: "invalid format",
			body: `{"errors":[{"code":477,"title":"INVALID FORMAT"}]}`,
			want: "Format permintaan tidak valid",
		},
		{
			name: "string code",
			body: `{"errors":[{"code":"34651","title":"SEGMENT SELL FAILURE"}]}`,
			want: "Kursi tidak tersedia, silakan pilih penawaran lain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Classify(tt.body)
			assert.True(t, ok)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	msg, ok := Classify(`{"errors":[{"code":99999,"title":"SOMETHING ELSE"}]}`)
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestClassify_MalformedBody(t *testing.T) {
	for _, body := range []string{"", "not json", "{}", `{"errors":"nope"}`} {
		msg, ok := Classify(body)
		assert.False(t, ok, "body %q", body)
		assert.Empty(t, msg)
	}
}

func TestShouldFallback(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   bool
	}{
		{
			name:   "system error title",
			body:   `{"errors":[{"code":141,"title":"SYSTEM ERROR HAS OCCURRED"}]}`,
			status: http.StatusBadRequest,
			want:   true,
		},
		{
			name:   "system error title mixed case",
			body:   `{"errors":[{"code":9,"title":"System Error Has Occurred"}]}`,
			status: http.StatusBadRequest,
			want:   true,
		},
		{
			name:   "transient code without title",
			body:   `{"errors":[{"code":141,"title":"UNKNOWN"}]}`,
			status: http.StatusBadRequest,
			want:   true,
		},
		{
			name:   "http 500",
			body:   "",
			status: http.StatusInternalServerError,
			want:   true,
		},
		{
			name:   "plain client error",
			body:   `{"errors":[{"code":477,"title":"INVALID FORMAT"}]}`,
			status: http.StatusBadRequest,
			want:   false,
		},
		{
			name:   "malformed body",
			body:   "boom",
			status: http.StatusBadRequest,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldFallback(tt.body, tt.status))
		})
	}
}

func TestFriendlyMessage(t *testing.T) {
	classified := FriendlyMessage(&ProviderError{StatusCode: 400, Body: `{"errors":[{"code":34651}]}`})
	assert.Equal(t, "Kursi tidak tersedia, silakan pilih penawaran lain", classified)

	raw := FriendlyMessage(&ProviderError{StatusCode: 400, Body: "boom"})
	assert.Equal(t, "HTTP 400: boom", raw)

	network := FriendlyMessage(&NetworkError{Reason: "dial tcp: timeout"})
	assert.Contains(t, network, "Gangguan koneksi")

	cred := FriendlyMessage(ErrCredentialUnavailable)
	assert.Contains(t, cred, "Token akses Amadeus tidak tersedia")
}
