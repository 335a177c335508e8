package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sozercan/tokenscope/internal/classifier"
	"github.com/sozercan/tokenscope/internal/tokendata"
)

const SystemPrompt = `You are a highly specialized trading assistant focusing on new/meme tokens in the Solana ecosystem. ` +
	`Analyze token details provided to you and deliver fast, concise, and engaging trading recommendations. ` +
	`If the token is in a bullish list, emphasize optimism and buy recommendations. Always make the analysis ` +
	`creative, friendly, and fun with emojis.`

const (
	bullishInstruction = "This token is in a highly bullish list, so focus on emphasizing buy instructions and use an overly optimistic tone. " +
		"Also add HIGHLY RECOMMEND with rocket emojis at the head line"
	balancedInstruction = "Provide a balanced analysis considering both pros and cons."

	formatDirective = "Start your response with an emoji-styled trading action. Use emojis creatively throughout your response. " +
		"Provide a recommendation with clear reasoning at the end."
)

// Prompt is the system/user message pair for one analysis.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the facts that are present and picks the instruction
// variant for label. Sections with no data are left out entirely.
func BuildPrompt(audit *tokendata.Audit, price *tokendata.Price, label classifier.Label) Prompt {
	var facts strings.Builder
	if audit != nil {
		facts.WriteString("Audit Details:\n")
		facts.WriteString(renderSection(audit))
		facts.WriteString("\n")
	}
	if price != nil {
		facts.WriteString("Price Details:\n")
		facts.WriteString(renderSection(price))
	}

	instruction := balancedInstruction
	if label == classifier.LabelBullish {
		instruction = bullishInstruction
	}

	user := fmt.Sprintf("Based on the following token details, provide a trading analysis:\n\n%s\n\n%s\n\n%s",
		strings.TrimRight(facts.String(), "\n"), instruction, formatDirective)

	return Prompt{
		System: SystemPrompt,
		User:   user,
	}
}

func renderSection(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(out)
}
