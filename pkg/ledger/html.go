package ledger

import (
	"fmt"
	"strings"

	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/summary"
)

// Renderer turns a filter result into a report.
type Renderer interface {
	Render(result *summary.Result, stylesheet string) error
}

const baseStylesheet = `body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { padding: 0.2em 0.6em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.revenue { color: #007700; }
.expense { color: #aa0000; }
.balance.negative { color: #aa0000; }
`

// Stylesheet returns the base rules plus a background rule for each registered epic.
func (w *Ledger) Stylesheet() (string, error) {
	epics, err := w.Epics()
	if err != nil {
		return "", err
	}
	return stylesheet(epics), nil
}

func stylesheet(epics []*domain.Epic) string {
	b := &strings.Builder{}
	b.WriteString(baseStylesheet)
	for _, e := range epics {
		fmt.Fprintf(b, ".%s { background-color: %s; }\n", domain.EpicClass(e.Handle), e.BgColor)
	}
	return b.String()
}

// HTML filters the entries and hands the result to the renderer along with the stylesheet.
func (w *Ledger) HTML(opts FilterOptions, r Renderer) (*summary.Result, error) {
	result, err := w.Filter(opts)
	if err != nil {
		return nil, err
	}

	css, err := w.Stylesheet()
	if err != nil {
		return nil, err
	}

	if err := r.Render(result, css); err != nil {
		return nil, err
	}

	w.log.Info().Int("entries", result.Len()).Msg("rendered report")
	return result, nil
}
