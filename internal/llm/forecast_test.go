package llm

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseProbability(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"probability-line-fraction", "I estimate...\nprobability: 0.73", 0.73, true},
		{"probability-line-percent", "probability: 73%", 0.73, true},
		{"probability-line-over-one", "probability: 73", 0.73, true},
		{"probability-equals-sign", "probability = 0.42", 0.42, true},
		{"case-insensitive", "Probability: 0.5", 0.5, true},
		{"percent-anywhere", "I'd put this at about 65% given the polls.", 0.65, true},
		{"bare-fraction", "0.5", 0.5, true},
		{"bare-one", "1.0", 1.0, true},
		{"bare-zero", "0", 0, true},
		{"no-number", "It is quite likely to happen.", FailureProbability, false},
		{"ambiguous-number", "There were 300 protests last year.", FailureProbability, false},
		{"empty", "", FailureProbability, false},
		{"percent-over-hundred", "probability: 250%", FailureProbability, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseProbability(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func newChatServer(t *testing.T, reply string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, reply)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)
	return client
}

func TestSuperforecastParsed(t *testing.T) {
	client := newChatServer(t, "Considering base rates and polls.\nprobability: 0.64")

	forecast, err := client.Superforecast(t.Context(), "US Election", "Will candidate X win?", "Yes")
	require.NoError(t, err)

	assert.True(t, forecast.Parsed)
	assert.InDelta(t, 0.64, forecast.Probability, 1e-9)
	assert.Contains(t, forecast.Rationale, "base rates")
}

func TestSuperforecastParseFailure(t *testing.T) {
	client := newChatServer(t, "I cannot provide a numeric estimate for this question.")

	forecast, err := client.Superforecast(t.Context(), "US Election", "Will candidate X win?", "Yes")
	require.NoError(t, err, "parse failures must not surface as errors")

	assert.False(t, forecast.Parsed)
	assert.Equal(t, FailureProbability, forecast.Probability)
	assert.NotEmpty(t, forecast.Rationale)
}
