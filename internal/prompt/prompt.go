// Package prompt assembles the user-role message sent to the completion API
// from a quiz result.
package prompt

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SystemMessage is the fixed system-role message sent with every prompt.
const SystemMessage = "You are a helpful estate planning attorney."

// Kind selects the report template.
type Kind string

const (
	// KindGuide is the long-form plain-text estate planning guide.
	KindGuide Kind = "guide"
	// KindSummary is a shorter plain-text report with a per-question breakdown.
	KindSummary Kind = "summary"
	// KindHTML is an HTML fragment with a risk banner and per-question breakdown.
	KindHTML Kind = "html"
)

var defaultWords = map[Kind]int{
	KindGuide:   1000,
	KindSummary: 300,
	KindHTML:    600,
}

// ParseKind resolves a configured template name. An empty name selects KindGuide.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case "", KindGuide:
		return KindGuide, nil
	case KindSummary:
		return KindSummary, nil
	case KindHTML:
		return KindHTML, nil
	default:
		return "", fmt.Errorf("unknown report format %q", name)
	}
}

// Format is the output-format selector for a report.
type Format struct {
	Kind  Kind
	Words int
}

// WordCount returns the requested length, falling back to the template default.
func (f Format) WordCount() int {
	if f.Words > 0 {
		return f.Words
	}
	if words, ok := defaultWords[f.Kind]; ok {
		return words
	}
	return defaultWords[KindGuide]
}

// Input is everything a template needs.
type Input struct {
	Score     float64
	Persona   string
	Correct   []string
	Incorrect []string
	Format    Format
}

// HasBreakdown reports whether any per-question results were supplied.
func (in Input) HasBreakdown() bool {
	return len(in.Correct) > 0 || len(in.Incorrect) > 0
}

var strict = bluemonday.StrictPolicy()

// Clean strips markup from caller-supplied text and collapses whitespace so it
// can be embedded in an HTML report. Remaining special characters are escaped.
func Clean(text string) string {
	return strings.Join(strings.Fields(strict.Sanitize(text)), " ")
}

// CleanPlain strips markup like Clean but leaves the text literal, for
// plain-text prompts where entities such as &#39; would reach the model verbatim.
func CleanPlain(text string) string {
	return html.UnescapeString(Clean(text))
}

// FormatScore renders a score without trailing zeros, e.g. 7 or 6.5.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// Build renders the prompt for the selected template. Persona and question
// texts are cleaned before they are embedded; only the HTML template keeps
// them entity-escaped.
func Build(in Input) string {
	clean := CleanPlain
	if in.Format.Kind == KindHTML {
		clean = Clean
	}
	in.Persona = clean(in.Persona)
	in.Correct = cleanAll(in.Correct, clean)
	in.Incorrect = cleanAll(in.Incorrect, clean)

	switch in.Format.Kind {
	case KindSummary:
		return buildSummary(in)
	case KindHTML:
		return buildHTML(in)
	default:
		return buildGuide(in)
	}
}

func cleanAll(items []string, clean func(string) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := clean(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func writeHeader(b *strings.Builder, in Input, title string) {
	b.WriteString("You are a friendly, warm California estate planning attorney.\n\n")
	fmt.Fprintf(b, "Write a **%s (%d words)** for a quiz taker based on:\n\n", title, in.Format.WordCount())
	fmt.Fprintf(b, "**Score:** %s/10\n", FormatScore(in.Score))
	fmt.Fprintf(b, "**Persona:** %s\n\n", in.Persona)
}

func writeBreakdown(b *strings.Builder, in Input) {
	if !in.HasBreakdown() {
		return
	}
	b.WriteString("Quiz answers:\n")
	if len(in.Correct) > 0 {
		b.WriteString("Answered correctly:\n")
		for _, q := range in.Correct {
			fmt.Fprintf(b, "- %s\n", q)
		}
	}
	if len(in.Incorrect) > 0 {
		b.WriteString("Answered incorrectly:\n")
		for _, q := range in.Incorrect {
			fmt.Fprintf(b, "- %s\n", q)
		}
	}
	b.WriteString("\n")
}

func writeToneGuidelines(b *strings.Builder) {
	b.WriteString("Tone guidelines:\n")
	b.WriteString("- No fear tactics\n")
	b.WriteString("- Reassuring, clear, personable\n")
	b.WriteString("- Empower the reader with knowledge, not worry\n")
}

func buildGuide(in Input) string {
	var b strings.Builder
	writeHeader(&b, in, "personalized estate planning guide")
	writeBreakdown(&b, in)

	b.WriteString("Create a supportive, educational summary that feels tailored to the quiz taker.\n")
	b.WriteString("Include:\n\n")
	b.WriteString("### **1. What their score suggests about their current understanding**\n")
	b.WriteString("- What they seem to know\n")
	b.WriteString("- What gaps may still exist\n\n")
	b.WriteString("### **2. A helpful explanation of key California estate planning concepts**\n")
	b.WriteString("- Why a properly drafted **and fully funded** Living Trust often matters\n")
	b.WriteString("- How **probate costs, delays, and public court filings** can impact families\n")
	b.WriteString("- Why **parents, homeowners, and blended families** especially benefit from planning\n")
	b.WriteString("- Common mistakes Californians make (gently stated)\n\n")
	b.WriteString("### **3. A short, actionable next-step section**\n")
	b.WriteString("- What they should prioritize now based on their persona\n")
	b.WriteString("- How proper planning can simplify things for loved ones\n")
	b.WriteString("- A warm, no-pressure invitation to schedule a complimentary call with DeCosimo Law\n\n")
	writeToneGuidelines(&b)
	return b.String()
}

func buildSummary(in Input) string {
	var b strings.Builder
	writeHeader(&b, in, "short personalized estate planning summary")
	writeBreakdown(&b, in)

	b.WriteString("Write plain text only, no markdown headings.\n")
	b.WriteString("Include:\n")
	b.WriteString("1. One paragraph on what their score suggests about their understanding.\n")
	if in.HasBreakdown() {
		b.WriteString("2. A brief note on each incorrectly answered topic and why it matters in California.\n")
	} else {
		b.WriteString("2. The two California estate planning concepts most relevant to their persona.\n")
	}
	b.WriteString("3. One clear next step and a warm, no-pressure invitation to schedule a complimentary call with DeCosimo Law.\n\n")
	writeToneGuidelines(&b)
	return b.String()
}

func buildHTML(in Input) string {
	band := BandFor(in.Score)

	var b strings.Builder
	writeHeader(&b, in, "personalized estate planning report")
	writeBreakdown(&b, in)

	b.WriteString("Return an HTML fragment only: no <html>, <head> or <body> tags, no scripts, no inline styles, no markdown.\n")
	b.WriteString("Use only <h2>, <h3>, <p>, <ul>, <li>, <strong> and <em>.\n\n")
	b.WriteString("Start with this risk banner, exactly as written:\n")
	fmt.Fprintf(&b, "<h2>%s %s</h2>\n\n", band.Emoji, band.Label)
	b.WriteString("Then include:\n")
	b.WriteString("<h3>What your score means</h3> one or two paragraphs on their current understanding.\n")
	if in.HasBreakdown() {
		b.WriteString("<h3>Your answers</h3> a <ul> noting what they got right and, for each missed question, the concept behind it.\n")
	}
	b.WriteString("<h3>Key California concepts</h3> funded Living Trusts, probate costs and delays, and planning for parents, homeowners and blended families.\n")
	b.WriteString("<h3>Your next step</h3> what to prioritize based on their persona and a warm, no-pressure invitation to schedule a complimentary call with DeCosimo Law.\n\n")
	writeToneGuidelines(&b)
	return b.String()
}
