package llm

import (
	"fmt"
	"strings"

	"github.com/mselser95/polymarket-agent/pkg/types"
)

const superforecasterSystem = `You are a superforecaster: a forecaster with a ` +
	`documented track record of calibrated probability estimates. You reason ` +
	`from base rates, adjust for current evidence, and state your uncertainty ` +
	`honestly. You never refuse to give a number.`

// SuperforecasterPrompt builds the fixed template asking for a calibrated
// probability that the given outcome resolves true.
func SuperforecasterPrompt(eventTitle, question, outcome string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event: %s\n", eventTitle)
	fmt.Fprintf(&b, "Market question: %s\n", question)
	fmt.Fprintf(&b, "Outcome under consideration: %s\n\n", outcome)
	b.WriteString("Estimate the probability that this market resolves to the outcome above.\n")
	b.WriteString("Briefly give your reasoning, then end with a single line of the exact form:\n")
	b.WriteString("probability: <value between 0 and 1>\n")
	return b.String()
}

const marketCreatorSystem = `You design prediction markets. Good markets have ` +
	`an unambiguous resolution source, a clear end date, and attract volume ` +
	`because people disagree about the answer.`

// MarketCreatorPrompt builds the market-generation template, optionally
// seeded with context describing currently popular markets.
func MarketCreatorPrompt(context string) string {
	var b strings.Builder
	b.WriteString("Propose one new prediction market for Polymarket.\n")
	b.WriteString("Describe: the question, the outcomes, the resolution source, and the end date.\n")
	if context != "" {
		b.WriteString("\nFor reference, markets currently attracting volume:\n")
		b.WriteString(context)
		b.WriteString("\n")
	}
	return b.String()
}

// MarketContextPrompt embeds current markets and events into a question so
// the model answers with live Polymarket context.
func MarketContextPrompt(question string, markets []types.Market, events []types.Event) string {
	var b strings.Builder
	b.WriteString("Answer the question using the current Polymarket data below.\n\n")

	if len(events) > 0 {
		b.WriteString("Current events:\n")
		for i := range events {
			fmt.Fprintf(&b, "- [%s] %s (ends %s)\n", events[i].ID, events[i].Title, events[i].EndDate.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	if len(markets) > 0 {
		b.WriteString("Current markets:\n")
		for i := range markets {
			m := &markets[i]
			fmt.Fprintf(&b, "- [%s] %s | outcomes %v at prices %v | spread %.3f | 24h volume %.0f\n",
				m.ID, m.Question, m.Outcomes, m.OutcomePrices, m.Spread, m.Volume24hr)
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

// NewsContext renders articles into prompt context lines.
func NewsContext(articles []types.NewsArticle) string {
	if len(articles) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent news:\n")
	for i := range articles {
		a := &articles[i]
		fmt.Fprintf(&b, "- %s (%s): %s\n", a.Title, a.Source, a.Description)
	}
	return b.String()
}
