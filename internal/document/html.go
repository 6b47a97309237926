package document

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"
)

// Average glyph width of the body font, used to keep the cursor in step with
// the PDF layout. The browser does the actual wrapping.
const htmlCharWidth = 2.0

var htmlTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; max-width: 210mm; margin: 0 auto; padding: 20mm; }
header { text-align: center; border-bottom: 2px solid #000; margin-bottom: 8mm; }
header h1 { font-size: 16pt; margin: 0; }
header p { margin: 2mm 0; }
header h2 { font-size: 14pt; margin: 6mm 0 4mm; }
h3 { font-size: 12pt; margin: 6mm 0 2mm; }
p.field span.label { display: inline-block; min-width: 30mm; font-weight: bold; }
table { width: 100%; border-collapse: collapse; table-layout: fixed; }
th { text-align: left; border-bottom: 1px solid #000; }
.signature { display: flex; justify-content: space-between; margin-top: 25mm; }
.signature div { width: 60mm; border-top: 1px solid #000; padding-top: 1mm; }
</style>
</head>
<body>
<header>
<h1>{{.Company.Name}}</h1>
<p>{{.Company.Address}}</p>
<p>{{.PhoneLabel}}: {{.Company.Phone}}</p>
<h2>{{.Title}}</h2>
</header>
{{- range .Blocks}}
{{- if eq .Kind "section"}}
<h3>{{.Title}}</h3>
{{- else if eq .Kind "text"}}
{{- if .Label}}
<p class="field"><span class="label">{{.Label}}:</span> {{.Value}}</p>
{{- else}}
<p>{{.Value}}</p>
{{- end}}
{{- else if eq .Kind "table"}}
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- else if eq .Kind "signature"}}
<h3>{{.Title}}</h3>
<div class="signature"><div>{{.Label}}</div><div>{{.Value}}</div></div>
{{- end}}
{{- end}}
</body>
</html>
`))

type htmlBlock struct {
	Kind    string
	Title   string
	Label   string
	Value   string
	Headers []string
	Rows    [][]string
}

type htmlWriter struct {
	Lang       string
	Title      string
	Company    Company
	PhoneLabel string
	Blocks     []*htmlBlock
}

func newHTMLWriter(lang string) *htmlWriter {
	return &htmlWriter{Lang: lang}
}

func (h *htmlWriter) Header(c Company, phoneLabel, title string) {
	h.Company = c
	h.PhoneLabel = phoneLabel
	h.Title = title
}

func (h *htmlWriter) Section(_ float64, title string) {
	h.Blocks = append(h.Blocks, &htmlBlock{Kind: "section", Title: title})
}

func (h *htmlWriter) Text(_ float64, label, value string, _ []string, continued bool) {
	if continued {
		return
	}
	h.Blocks = append(h.Blocks, &htmlBlock{Kind: "text", Label: label, Value: value})
}

func (h *htmlWriter) TableHeader(_ float64, headers []string, _ float64) {
	h.Blocks = append(h.Blocks, &htmlBlock{Kind: "table", Headers: headers})
}

func (h *htmlWriter) TableRow(_ float64, cells []string, _ float64) {
	if len(h.Blocks) == 0 || h.Blocks[len(h.Blocks)-1].Kind != "table" {
		return
	}
	t := h.Blocks[len(h.Blocks)-1]
	t.Rows = append(t.Rows, cells)
}

func (h *htmlWriter) Signature(_ float64, title, role, dateLabel string) {
	h.Blocks = append(h.Blocks, &htmlBlock{Kind: "signature", Title: title, Label: role, Value: dateLabel})
}

// Wrap breaks on words using a fixed glyph width.
func (h *htmlWriter) Wrap(value string, width float64) []string {
	limit := int(width / htmlCharWidth)
	var lines []string
	for _, para := range strings.Split(value, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= limit:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// NewPage is a no-op, browsers paginate on print.
func (h *htmlWriter) NewPage() {}

func (h *htmlWriter) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
