package printing

import (
	"bytes"
	"embed"
	"html/template"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SaleReportTemplate is the template rendered by the template-driven PDF export
const SaleReportTemplate = "sale_report.html"

//go:embed templates/*.html
var templateFS embed.FS

// TemplateEngine renders the embedded HTML report templates
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine parses the embedded templates
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("reports").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplate, "failed to parse report templates", err)
	}
	return &TemplateEngine{templates: tmpl}, nil
}

// RenderHTML executes the named template with data
func (e *TemplateEngine) RenderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to execute template "+name, err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	title := cases.Title(language.Spanish)
	upper := cases.Upper(language.Spanish)
	return template.FuncMap{
		"title":          title.String,
		"upper":          upper.String,
		"humanize":       humanize,
		"truncate":       truncate,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"sortedKeys":     sortedKeys,
	}
}

// humanize turns a parameter name like fecha_inicio into "fecha inicio"
func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if n < 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
