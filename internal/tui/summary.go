package tui

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/go-builderdata/internal/processor"
)

const summaryTemplate = `{{ heading "Summary" }}
{{ row "Rows" .Rows }}
{{ row "Processed" .Processed }}
{{ row "Skipped" .Skipped }}
{{ row "Logos downloaded" .LogosDownloaded }}
{{ row "Descriptions fetched" .DescriptionsFetched }}
{{ row "Sectors" .Sectors }}
{{- if .Skips }}

{{ warn (printf "%d row%s skipped:" (len .Skips) (ternary "" "s" (eq (len .Skips) 1))) }}
{{- range .Skips }}
  line {{ .Line }}  {{ .Name | default "(unnamed)" | trunc 40 }}: {{ .Reason }}
{{- end }}
{{- end }}
`

var summaryTmpl = template.Must(template.New("summary").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{
		"heading": func(s string) string { return TitleStyle.Render(s) },
		"warn":    func(s string) string { return WarningStyle.Render(s) },
		"row": func(label string, v int) string {
			return LabelStyle.Render(label) + ValueStyle.Render(strconv.Itoa(v))
		},
	}).
	Parse(summaryTemplate))

// RenderSummary renders the end-of-run report.
func RenderSummary(s *processor.Summary) (string, error) {
	var b strings.Builder
	if err := summaryTmpl.Execute(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}
