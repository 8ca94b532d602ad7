// Package digest renders the notification emails. Templates are plain
// HTML files with {{key}} placeholders; substitution is an explicit
// ordered key→value pass so tests can assert exact output.
package digest

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"jobdigest/internal/listing"
	"jobdigest/pkg/logging"
)

const generatedLayout = "2006-01-02 15:04 UTC"

// Var is one template substitution. Order matters: earlier keys are
// applied first, so a value may itself contain later placeholders.
type Var struct {
	Key   string
	Value string
}

// Apply performs the ordered substitutions on a template.
func Apply(tpl string, vars []Var) string {
	for _, v := range vars {
		tpl = strings.ReplaceAll(tpl, "{{"+v.Key+"}}", v.Value)
	}
	return tpl
}

type Renderer struct {
	latestPath string
	noNewPath  string
	now        func() time.Time
	log        *logging.Logger
}

// NewRenderer wires template file paths; either may be empty or missing,
// in which case the built-in fallback template is used. The clock is
// injectable for tests.
func NewRenderer(latestPath, noNewPath string, now func() time.Time, log *logging.Logger) *Renderer {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Renderer{latestPath: latestPath, noNewPath: noNewPath, now: now, log: log}
}

// Latest renders the new-rows digest.
func (r *Renderer) Latest(title string, rows []listing.Row) string {
	tpl := r.template(r.latestPath, fallbackLatest)
	return Apply(tpl, []Var{
		{Key: "title", Value: html.EscapeString(title)},
		{Key: "generated", Value: r.now().UTC().Format(generatedLayout)},
		{Key: "rows", Value: tableRows(rows)},
	})
}

// NoNew renders the "nothing new since last check" notice.
func (r *Renderer) NoNew() string {
	tpl := r.template(r.noNewPath, fallbackNoNew)
	return Apply(tpl, []Var{
		{Key: "generated", Value: r.now().UTC().Format(generatedLayout)},
	})
}

func (r *Renderer) template(path, fallback string) string {
	if path == "" {
		return fallback
	}
	b, err := os.ReadFile(path)
	if err != nil {
		r.log.Warn("template not readable, using built-in", "path", path, "error", err)
		return fallback
	}
	return string(b)
}

func tableRows(rows []listing.Row) string {
	if len(rows) == 0 {
		return `<tr><td colspan="7">No rows.</td></tr>`
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(row.Company),
			html.EscapeString(row.Role),
			html.EscapeString(row.Location),
			html.EscapeString(row.DatePosted),
			html.EscapeString(row.Sponsorship),
			applyLink(row.ApplicationURL),
			html.EscapeString(row.AgeText),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func applyLink(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return fmt.Sprintf(`<a href="%s">Apply</a>`, html.EscapeString(u))
	}
	return "-"
}

const fallbackLatest = `<!doctype html>
<html><body style="font-family:Arial,sans-serif;">
  <h2>{{title}}</h2>
  <p><small>Generated: {{generated}}</small></p>
  <table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;width:100%;">
    <thead style="background:#f2f2f2;">
      <tr>
        <th>Company</th><th>Role</th><th>Location</th>
        <th>Date Posted</th><th>Sponsorship</th><th>Application</th><th>Age</th>
      </tr>
    </thead>
    <tbody>
      {{rows}}
    </tbody>
  </table>
</body></html>
`

const fallbackNoNew = `<!doctype html>
<html><body style="font-family:Arial,sans-serif;">
  <h3>No new jobs since last check</h3>
  <p><small>{{generated}}</small></p>
</body></html>
`
