package dialog

import (
	"fmt"
	"strings"
)

// Prompt builders for each generating branch. Every preamble names the
// category in upper case and carries the context relevant to its branch.

func buildAcknowledgmentPrompt(category string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a compassionate legal-aid assistant. The user has just described a legal incident.\n")
	prompt.WriteString(fmt.Sprintf("The issue has been classified as: %s.\n", strings.ToUpper(category)))
	prompt.WriteString("Acknowledge what happened with warmth and empathy, name the issue category in plain words, and reassure the user that you will help them understand their options.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Keep it short: 2-4 sentences.\n")
	prompt.WriteString("2. Do not give legal advice yet; clarifying questions come next.\n")
	prompt.WriteString("3. Do not ask your own questions; the system appends the first question.\n")
	prompt.WriteString("4. Never blame the user for what happened.\n")
	prompt.WriteString("</guidelines>")

	return prompt.String()
}

func buildAdvicePrompt(category string, details []string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a compassionate legal-aid assistant.\n")
	prompt.WriteString(fmt.Sprintf("The user's issue is classified as: %s.\n", strings.ToUpper(category)))
	prompt.WriteString("They have answered the clarifying questions. Summarize their situation back to them empathetically and explain, in plain language, what kind of help is available.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<collected_details>\n")
	for i, d := range details {
		prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, d))
	}
	prompt.WriteString("</collected_details>\n\n")

	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Do NOT quote statute numbers or sections; the system appends an exact legal summary separately.\n")
	prompt.WriteString("2. Be concrete about next practical actions the user can take today.\n")
	prompt.WriteString("3. Keep a calm, supportive tone throughout.\n")
	prompt.WriteString("</guidelines>")

	return prompt.String()
}

func buildCaseExamplesPrompt(category string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString(fmt.Sprintf("The user wants examples of past cases similar to their %s issue.\n", strings.ToUpper(category)))
	prompt.WriteString("Present 2-3 illustrative cases. For each give: a short title, the background, the outcome, and why it is relevant to the user's situation.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Prefer real, jurisdiction-appropriate cases when you know them.\n")
	prompt.WriteString("2. If you are not certain of a real case, synthesize a plausible anonymized one and do not present it as a citation.\n")
	prompt.WriteString("3. End on an encouraging note about what these outcomes mean for the user.\n")
	prompt.WriteString("</guidelines>")

	return prompt.String()
}

func buildContinuationPrompt(category string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a compassionate legal-aid assistant continuing an ongoing conversation.\n")
	prompt.WriteString(fmt.Sprintf("The user's issue is classified as: %s. Advice and a legal summary have already been given.\n", strings.ToUpper(category)))
	prompt.WriteString("Answer the user's latest message with open-ended further guidance, staying within the context of their issue.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Stay grounded in the conversation so far; do not restart the intake.\n")
	prompt.WriteString("2. If asked something outside legal guidance, gently steer back.\n")
	prompt.WriteString("3. Keep responses focused: 3-6 sentences unless the user asks for detail.\n")
	prompt.WriteString("</guidelines>")

	return prompt.String()
}
