/*
Package report renders a filter result as a static HTML page.
*/
package report

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/summary"
)

const (
	AppName    = "wallet"
	AppVersion = "0.1.0"

	fileIndex = "index.html"
	fileStyle = "style.css"
)

// HTML writes index.html and style.css into Dir.
type HTML struct {
	Dir string

	// Now stamps the page; time.Now when nil.
	Now func() time.Time
}

type yearRow struct {
	Index      int
	BalanceSum float64
	*summary.YearSummary
}

type page struct {
	AppName     string
	AppVersion  string
	GeneratedAt string
	Stylesheet  string

	Result *summary.Result
	Years  []yearRow
}

var funcs = template.FuncMap{
	"amount":    domain.FormatAmount,
	"epicClass": domain.EpicClass,
	"percent": func(v float64) string {
		return domain.FormatAmount(v) + "%"
	},
	"sign": func(v float64) string {
		if v < 0 {
			return "negative"
		}
		return "positive"
	},
}

var index = template.Must(template.New(fileIndex).Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .AppName }}</title>
<link rel="stylesheet" href="./{{ .Stylesheet }}">
</head>
<body>
<h1>{{ .AppName }} {{ .AppVersion }}</h1>
<p>Generated at {{ .GeneratedAt }}, {{ len .Result.Entries }} entries.</p>

<h2>Years</h2>
<table>
<tr><th>#</th><th>Year</th><th>Revenue</th><th>Expense</th><th>Balance</th><th>Balance Sum</th></tr>
{{- range .Years }}
<tr><td>{{ .Index }}</td><td>{{ .Year }}</td><td class="revenue">{{ amount .Revenue }}</td><td class="expense">{{ amount .Expense }}</td><td class="balance {{ sign .Balance }}">{{ amount .Balance }}</td><td class="balance {{ sign .BalanceSum }}">{{ amount .BalanceSum }}</td></tr>
{{- end }}
<tr><th></th><th>Total</th><th>{{ amount .Result.Revenue }}</th><th>{{ amount .Result.Expense }}</th><th>{{ amount .Result.Balance }}</th><th></th></tr>
</table>

{{- range .Years }}
<h2>{{ .Year }}</h2>
<table>
<tr><th>Month</th><th>Revenue</th><th>Expense</th><th>Balance</th></tr>
{{- $year := .Year }}
{{- range .SortedMonths }}
<tr><td>{{ $year }}-{{ printf "%02d" .Month }}</td><td class="revenue">{{ amount .Revenue }}</td><td class="expense">{{ amount .Expense }}</td><td class="balance {{ sign .Balance }}">{{ amount .Balance }}</td></tr>
{{- end }}
</table>
{{- end }}

<h2>Categories</h2>
<table>
<tr><th>Category</th><th>Revenue</th><th>Expense</th><th>Balance</th><th>Share</th></tr>
{{- range .Result.SortedCategories }}
<tr><td>{{ .Name }}</td><td class="revenue">{{ amount .Revenue }}</td><td class="expense">{{ amount .Expense }}</td><td class="balance {{ sign .Balance }}">{{ amount .Balance }}</td><td>{{ percent .BalancePercent }}</td></tr>
{{- end }}
</table>

<h2>Epics</h2>
<table>
<tr><th>Epic</th><th>Revenue</th><th>Expense</th><th>Balance</th></tr>
{{- range .Result.SortedEpics }}
<tr class="{{ epicClass .Handle }}"><td>{{ .Handle }}</td><td class="revenue">{{ amount .Revenue }}</td><td class="expense">{{ amount .Expense }}</td><td class="balance {{ sign .Balance }}">{{ amount .Balance }}</td></tr>
{{- end }}
</table>
</body>
</html>
`))

// Render implements ledger.Renderer.
func (h *HTML) Render(result *summary.Result, stylesheet string) error {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	p := &page{
		AppName:     AppName,
		AppVersion:  AppVersion,
		GeneratedAt: now().Format("2006-01-02 15:04:05 -0700"),
		Stylesheet:  fileStyle,
		Result:      result,
	}

	sum := 0.0
	for i, y := range result.SortedYears() {
		sum += y.Balance
		p.Years = append(p.Years, yearRow{Index: i + 1, BalanceSum: sum, YearSummary: y})
	}

	buf := &bytes.Buffer{}
	if err := index.Execute(buf, p); err != nil {
		return err
	}

	if err := os.MkdirAll(h.Dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(h.Dir, fileStyle), []byte(stylesheet), 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(h.Dir, fileIndex), buf.Bytes(), 0644)
}
