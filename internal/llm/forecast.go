package llm

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

// FailureProbability is returned when the model's response contains no
// parseable probability. It is negative so a failed parse can never win
// best-trade selection or clear a confidence threshold.
const FailureProbability = -1.0

// Forecast is the parsed result of a superforecaster call.
type Forecast struct {
	Probability float64 // FailureProbability when Parsed is false
	Parsed      bool
	Rationale   string // raw model response
}

// Superforecast asks for a calibrated probability that the outcome resolves
// true. Parse failures yield FailureProbability, never an error: the raw
// response is preserved in Rationale for the operator.
func (c *Client) Superforecast(ctx context.Context, eventTitle, question, outcome string) (*Forecast, error) {
	return c.SuperforecastWithNews(ctx, eventTitle, question, outcome, nil)
}

// SuperforecastWithNews is Superforecast with recent articles appended to
// the prompt as additional evidence.
func (c *Client) SuperforecastWithNews(ctx context.Context, eventTitle, question, outcome string, articles []types.NewsArticle) (*Forecast, error) {
	prompt := SuperforecasterPrompt(eventTitle, question, outcome)
	if news := NewsContext(articles); news != "" {
		prompt = news + "\n" + prompt
	}

	raw, err := c.chat(ctx, superforecasterSystem, prompt)
	if err != nil {
		return nil, err
	}

	p, ok := ParseProbability(raw)
	if !ok {
		ParseFailuresTotal.Inc()
		c.logger.Warn("superforecast-parse-failed",
			zap.String("question", question),
			zap.String("outcome", outcome))
	}

	return &Forecast{
		Probability: p,
		Parsed:      ok,
		Rationale:   raw,
	}, nil
}

// CreateMarketIdea asks the model to propose a new market, optionally
// seeded with context about currently popular markets.
func (c *Client) CreateMarketIdea(ctx context.Context, seed string) (string, error) {
	return c.chat(ctx, marketCreatorSystem, MarketCreatorPrompt(seed))
}

// AskWithMarketContext answers a question with live market and event data
// embedded in the prompt.
func (c *Client) AskWithMarketContext(ctx context.Context, question string, markets []types.Market, events []types.Event) (string, error) {
	return c.chat(ctx, "", MarketContextPrompt(question, markets, events))
}

var (
	probLineRe    = regexp.MustCompile(`(?i)probability\s*[:=]\s*([0-9]*\.?[0-9]+)\s*(%?)`)
	percentRe     = regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*%`)
	bareNumberRe  = regexp.MustCompile(`^\s*(0(\.[0-9]+)?|1(\.0+)?)\s*$`)
	numberTokenRe = regexp.MustCompile(`[0-9]*\.?[0-9]+`)
)

// ParseProbability extracts a probability in [0, 1] from free-form model
// output. Accepted forms, in priority order: an explicit "probability: X"
// line (X a fraction or percentage), a percentage anywhere in the text, or
// a response that is nothing but a bare number in [0, 1]. Anything else
// returns (FailureProbability, false).
//
// The heuristic is deliberately conservative: ambiguous phrasing fails the
// parse rather than guessing.
func ParseProbability(s string) (float64, bool) {
	if m := probLineRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if m[2] == "%" || v > 1 {
				v /= 100
			}
			if v >= 0 && v <= 1 {
				return v, true
			}
		}
	}

	if m := percentRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil && v >= 0 && v <= 100 {
			return v / 100, true
		}
	}

	trimmed := strings.TrimSpace(s)
	if bareNumberRe.MatchString(trimmed) {
		if m := numberTokenRe.FindString(trimmed); m != "" {
			v, err := strconv.ParseFloat(m, 64)
			if err == nil && v >= 0 && v <= 1 {
				return v, true
			}
		}
	}

	return FailureProbability, false
}
