// Package renderer turns wallet records and finances into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/wallet"
)

//go:embed templates/*.md
var templates embed.FS

// Options tune the rendering.
type Options struct {
	Title    string // optional level 1 heading
	Empty    string // printed instead of a table when there is nothing to show
	Currency string // ISO code used to format amounts
}

type row struct {
	Number      int
	Date        string
	Category    string
	Amount      string
	Description string
}

type recordsView struct {
	Options
	Rows []row
}

type financesView struct {
	Options
	Income, Expense, Balance string
	Count                    int
}

// Records renders entries as a numbered markdown table. Numbers are 1-based
// store positions, the ones the user types to edit or delete a record.
func Records(entries []wallet.Entry, opts Options) string {
	v := recordsView{Options: opts}
	if v.Empty == "" {
		v.Empty = "No records."
	}
	for _, e := range entries {
		v.Rows = append(v.Rows, row{
			Number:      e.Index + 1,
			Date:        e.Record.Date.String(),
			Category:    cell(e.Record.Category),
			Amount:      wallet.M(e.Record.Amount, opts.Currency).String(),
			Description: cell(e.Record.Description),
		})
	}
	return renderTemplate("records", "templates/records.md", v)
}

// Finances renders income, expense and balance totals.
func Finances(f wallet.Finances, opts Options) string {
	v := financesView{
		Options: opts,
		Income:  wallet.M(f.Income, opts.Currency).String(),
		Expense: wallet.M(f.Expense, opts.Currency).String(),
		Balance: wallet.M(f.Balance(), opts.Currency).String(),
		Count:   f.Count,
	}
	return renderTemplate("finances", "templates/finances.md", v)
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
}

// renderTemplate renders an embedded template. Template errors are programming
// errors, they are reported in the output rather than returned.
func renderTemplate(templateName, file string, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}

	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
