package pipeline

import "strings"

// SummaryHeader opens the nodes.md table.
const SummaryHeader = "| Node | Category | Description |\n|------|-----------|-------------|\n"

// MissingCell fills a summary cell whose value is absent.
const MissingCell = "-"

// SummaryRow is one node line of the summary table.
type SummaryRow struct {
	Name        string
	File        string
	Category    string
	Description string
}

var cellReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// EscapeCell makes s safe inside a Markdown table cell.
func EscapeCell(s string) string {
	return cellReplacer.Replace(s)
}

// CodeSpan wraps s in a Markdown code span that renders s exactly.
// The fence is one backtick longer than the longest run inside s, and
// a space pads each side when s begins or ends with a backtick or when
// both ends are spaces, since a renderer strips one such pair.
func CodeSpan(s string) string {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	fence := strings.Repeat("`", longest+1)

	pad := ""
	if s != "" && (s[0] == '`' || s[len(s)-1] == '`' ||
		(s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "")) {
		pad = " "
	}
	return fence + pad + s + pad + fence
}

// Summary renders the nodes.md table. Node links are baseURL+File.
func Summary(rows []SummaryRow, baseURL string) string {
	var b strings.Builder
	b.WriteString(SummaryHeader)

	for _, r := range rows {
		category := r.Category
		if category == "" {
			category = MissingCell
		}

		b.WriteString("| [")
		b.WriteString(EscapeCell(CodeSpan(r.Name)))
		b.WriteString("](")
		b.WriteString(baseURL)
		b.WriteString(r.File)
		b.WriteString(") | ")
		b.WriteString(EscapeCell(category))
		b.WriteString(" | ")
		b.WriteString(EscapeCell(r.Description))
		b.WriteString(" |\n")
	}

	return b.String()
}
