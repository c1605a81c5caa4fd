package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/summary"
)

const (
	titleLen      = 20
	titleLenShort = 10
)

type listCmd struct {
	Filter filterFlags `embed:""`

	Long  bool `short:"l" help:"Long lines."`
	Short bool `short:"s" help:"Short lines."`
}

func (c *listCmd) Run(a *app) error {
	opts, err := c.Filter.options(a)
	if err != nil {
		return err
	}

	res, err := a.ledger.Filter(opts)
	if err != nil {
		return err
	}

	return c.print(a.out, res)
}

func (c *listCmd) print(out io.Writer, res *summary.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	row := func(cols ...string) {
		fmt.Fprintln(w, strings.Join(cols, "\t")+"\t")
	}

	switch {
	case c.Long:
		row("DATE", "TITLE", "REVENUE", "EXPENSE", "BALANCE", "CATEGORY", "EPIC", "COMMENT", "ID")
		for _, e := range res.Entries {
			row(e.Date.YMD(), e.Title, amount(e.Revenue()), amount(e.Expense()), domain.FormatAmount(e.Balance()), e.Category, e.Epic, e.Comment, e.ID)
		}
		row("", "TOTAL", amount(res.Revenue), amount(res.Expense), domain.FormatAmount(res.Balance), "", "", "", "")
	case c.Short:
		row("DATE", "TITLE", "BALANCE")
		for _, e := range res.Entries {
			row(e.Date.YMD(), shortString(e.Title, titleLenShort), domain.FormatAmount(e.Balance()))
		}
		row("", "TOTAL", domain.FormatAmount(res.Balance))
	default:
		row("DATE", "TITLE", "REVENUE", "EXPENSE", "BALANCE", "CATEGORY", "EPIC")
		for _, e := range res.Entries {
			row(e.Date.YMD(), shortString(e.Title, titleLen), amount(e.Revenue()), amount(e.Expense()), domain.FormatAmount(e.Balance()), e.Category, e.Epic)
		}
		row("", "TOTAL", amount(res.Revenue), amount(res.Expense), domain.FormatAmount(res.Balance), "", "")
	}

	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "%d entries\n", res.Len())
	return err
}

// amount leaves zero revenue and expense cells empty.
func amount(v float64) string {
	if v == 0 {
		return ""
	}
	return domain.FormatAmount(v)
}

// shortString cuts s to max characters, the last three of which become "...". Nothing is cut
// when max is below 3.
func shortString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 3 {
		return s
	}
	return string(r[:max-3]) + "..."
}
