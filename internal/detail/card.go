package detail

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"leaddash/internal/domain"
)

// md escapes raw HTML in its input; lead fields come from a data file.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Card renders the lead summary as markdown, one field per line.
func Card(l domain.Lead) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "**%s:** %s\n", label, escapeMarkdown(value))
	}
	line("Name", l.Name)
	line("Country", l.Country)
	line("Language", l.Language)
	line("Source", l.Source)
	line("Goal", Capitalize(l.Goal))
	line("Budget", FormatBudget(l.Budget))
	line("Age", fmt.Sprintf("%d (%s)", l.Age, l.AgeBucket))
	line("Lead Score", FormatScore(l.LeadScore))
	return b.String()
}

func RenderCard(l domain.Lead) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Card(l)), &buf); err != nil {
		return "", fmt.Errorf("render card: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// FormatBudget renders a whole-dollar amount with thousands separators.
func FormatBudget(v float64) string {
	return "$" + humanize.Comma(int64(math.RoundToEven(v)))
}

func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}
