package legal

import "strings"

// Entry is the static reference data for one issue category. Summaries are
// formatted deterministically from this table so citations stay exact and
// reproducible; they are never generated text.
type Entry struct {
	Description string
	Citations   []string
	Steps       []string
}

var knowledge = map[string]Entry{
	CategoryHarassment: {
		Description: "Harassment covers unwelcome physical, verbal or non-verbal conduct, including stalking and acts intended to outrage a person's modesty.",
		Citations: []string{
			"IPC Section 354",
			"IPC Section 354D",
			"IPC Section 509",
		},
		Steps: []string{
			"Write down each incident with date, time, place and what was said or done",
			"Preserve evidence such as messages, call logs, photos or recordings",
			"File a complaint at the nearest police station, or call the women's helpline 181",
			"If the police refuse to register an FIR, approach the magistrate under CrPC Section 156(3)",
		},
	},
	CategoryDomesticViolence: {
		Description: "Domestic violence includes physical, emotional, sexual and economic abuse by a spouse, partner or family member within a shared household.",
		Citations: []string{
			"Protection of Women from Domestic Violence Act 2005",
			"IPC Section 498A",
		},
		Steps: []string{
			"Reach a safe place and inform someone you trust",
			"Contact the Protection Officer of your district or the helpline 181",
			"File a Domestic Incident Report; a protection or residence order can be sought from the magistrate",
			"Seek a medical examination after any physical injury and keep the report",
		},
	},
	CategoryTheft: {
		Description: "Theft is the dishonest taking of movable property out of a person's possession without consent.",
		Citations: []string{
			"IPC Section 378",
			"IPC Section 379",
		},
		Steps: []string{
			"List the stolen items with identifying details such as serial numbers",
			"File an FIR at the police station of the area where the theft occurred",
			"Share CCTV footage or witness details with the investigating officer",
			"Inform your bank immediately if cards or cheque books were taken",
		},
	},
	CategoryFraud: {
		Description: "Fraud involves deceiving a person to gain money, property or services dishonestly, including cheating and criminal breach of trust.",
		Citations: []string{
			"IPC Section 415",
			"IPC Section 420",
		},
		Steps: []string{
			"Collect every document related to the transaction: receipts, agreements, chat records",
			"File a written complaint with the police economic offences wing",
			"Notify your bank to attempt reversal or freezing of the transferred amount",
			"Consider a parallel complaint before the consumer forum if a service was involved",
		},
	},
	CategoryCybercrime: {
		Description: "Cybercrime covers offences committed through computers or networks, such as hacking, identity theft, phishing and online impersonation.",
		Citations: []string{
			"IT Act Section 66C",
			"IT Act Section 66D",
			"IPC Section 420",
		},
		Steps: []string{
			"Take screenshots of the offending messages, profiles or transactions",
			"Report the incident on the national cybercrime portal or call helpline 1930",
			"Change passwords and enable two-factor authentication on affected accounts",
			"File a complaint with the local cyber cell along with your evidence",
		},
	},
	CategoryGeneral: {
		Description: "Your situation needs individual assessment; free legal aid is available through the Legal Services Authorities for those who qualify.",
		Citations: []string{
			"Legal Services Authorities Act 1987",
		},
		Steps: []string{
			"Write a short, dated account of the events while they are fresh",
			"Call the NALSA legal aid helpline 15100 for free guidance",
			"Visit the District Legal Services Authority office with your documents",
		},
	},
}

// Lookup returns the knowledge entry for a category. The table covers every
// category the classifier can return, so the boolean is false only on
// programmer error.
func Lookup(category string) (Entry, bool) {
	e, ok := knowledge[category]
	return e, ok
}

// FormatSummary assembles the legal-summary block for a category:
// description, citation list joined by comma, steps as a bulleted list.
func FormatSummary(category string) string {
	e, ok := knowledge[category]
	if !ok {
		e = knowledge[CategoryGeneral]
	}

	var b strings.Builder
	b.WriteString(e.Description)
	b.WriteString("\n\nRelevant provisions: ")
	b.WriteString(strings.Join(e.Citations, ", "))
	b.WriteString("\n\nRecommended steps:\n")
	for _, step := range e.Steps {
		b.WriteString("- ")
		b.WriteString(step)
		b.WriteString("\n")
	}
	return b.String()
}
