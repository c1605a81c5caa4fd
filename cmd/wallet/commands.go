package main

import (
	"fmt"

	"github.com/voidshard/wallet/pkg/date"
	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/export"
	"github.com/voidshard/wallet/pkg/ledger"
	"github.com/voidshard/wallet/pkg/report"
)

type varsCmd struct{}

func (c *varsCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "APP_NAME '%s'\n", report.AppName)
	fmt.Fprintf(a.out, "APP_VERSION '%s'\n", report.AppVersion)
	fmt.Fprintf(a.out, "WALLET_PATH '%s'\n", a.cfg.WalletPath)
	return nil
}

type initCmd struct{}

func (c *initCmd) Run(a *app) error {
	if err := a.ledger.Init(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Initialized wallet in %s\n", a.ledger.Path())
	return nil
}

type addCmd struct {
	Title    string `short:"t" help:"Title."`
	Revenue  string `short:"r" help:"Revenue, 1.23 or 1,23."`
	Expense  string `short:"e" help:"Expense, 1.23 or 1,23."`
	Category string `short:"c" help:"Category."`
	Comment  string `short:"o" help:"Comment."`
	Date     string `short:"d" help:"Date, missing parts are taken from today."`
	ID       string `name:"id" help:"ID, random when not given."`
	Force    bool   `short:"f" help:"Force add, even if ID already exists."`
	Epic     string `short:"x" help:"Epic handle."`
}

func (c *addCmd) entry(a *app) (*domain.Entry, error) {
	d := date.New()
	if c.Date != "" {
		var err error
		d, err = date.Parse(c.Date)
		if err != nil {
			return nil, err
		}
	}
	if err := d.Fill(a.now()); err != nil {
		return nil, err
	}

	opts := domain.EntryOptions{Date: &d}
	if c.Revenue != "" {
		v, err := domain.ParseAmount(c.Revenue)
		if err != nil {
			return nil, err
		}
		opts.Revenue = &v
	}
	if c.Expense != "" {
		v, err := domain.ParseAmount(c.Expense)
		if err != nil {
			return nil, err
		}
		opts.Expense = &v
	}
	if c.ID != "" {
		opts.ID = &c.ID
	}
	if c.Title != "" {
		opts.Title = &c.Title
	}
	if c.Category != "" {
		opts.Category = &c.Category
	}
	if c.Comment != "" {
		opts.Comment = &c.Comment
	}
	if c.Epic != "" {
		opts.Epic = &c.Epic
	}

	return domain.NewEntryFromOptions(opts), nil
}

func (c *addCmd) Run(a *app) error {
	e, err := c.entry(a)
	if err != nil {
		return err
	}

	res, err := a.ledger.Add(e, c.Force)
	if err != nil {
		return err
	}

	switch res.Status {
	case ledger.ExistsInIndex:
		fmt.Fprintf(a.out, "Entry %s already exists. Use --force to add it anyway.\n", e.ID)
	case ledger.Added:
		fmt.Fprintf(a.out, "Added entry %s (%s, %s) to %s\n", e.ID, e.Date.YMD(), domain.FormatAmount(e.Balance()), res.MonthFile)
	}
	return nil
}

type epicCmd struct {
	Handle  string `required:"" help:"Handle, for example 'myepic'."`
	Title   string `short:"t" help:"Title."`
	BgColor string `name:"bgcolor" help:"Background color (HTML)."`
}

func (c *epicCmd) Run(a *app) error {
	e := domain.NewEpic()
	e.Handle = c.Handle
	if c.Title != "" {
		e.Title = c.Title
	}
	if c.BgColor != "" {
		e.BgColor = c.BgColor
	}

	ok, err := a.ledger.AddEpic(e)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Fprintf(a.out, "Epic %s already exists.\n", e.Handle)
		return nil
	}
	fmt.Fprintf(a.out, "Added epic %s\n", e.Handle)
	return nil
}

// filterFlags are the options shared by the commands that read entries.
type filterFlags struct {
	Revenue  bool   `short:"r" help:"Filter only revenues."`
	Expense  bool   `short:"e" help:"Filter only expenses."`
	Category string `short:"c" help:"Category."`
	Date     string `short:"d" help:"Date: year, month or day to match."`
	Epic     string `short:"x" help:"Epic handle."`
}

// options builds the filter. Parts of the date that are not given are filled from today
// without becoming part of the match.
func (f *filterFlags) options(a *app) (ledger.FilterOptions, error) {
	opts := ledger.FilterOptions{
		Revenue:  f.Revenue,
		Expense:  f.Expense,
		Category: f.Category,
		Epic:     f.Epic,
	}
	if f.Date == "" {
		return opts, nil
	}

	d, err := date.Parse(f.Date)
	if err != nil {
		return opts, err
	}
	if err := d.RawFill(a.now()); err != nil {
		return opts, err
	}
	opts.Date = &d
	return opts, nil
}

type htmlCmd struct {
	Filter filterFlags `embed:""`
}

func (c *htmlCmd) Run(a *app) error {
	opts, err := c.Filter.options(a)
	if err != nil {
		return err
	}

	res, err := a.ledger.HTML(opts, &report.HTML{Dir: a.ledger.HTMLDir(), Now: a.now})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Wrote report of %d entries to %s\n", res.Len(), a.ledger.HTMLDir())
	return nil
}

type exportCmd struct {
	Filter filterFlags `embed:""`

	Out        string `help:"Where to write [jsonfile:/path/file.json es8:http://myelasticsearch:9200 xlsx:/path/file.xlsx sealed:/path/file] (default $WALLET_EXPORT_OUT)."`
	Passphrase string `help:"Passphrase for sealed output (default $WALLET_EXPORT_PASSPHRASE)."`
}

func (c *exportCmd) Run(a *app) error {
	opts, err := c.Filter.options(a)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = a.cfg.ExportOut
	}
	out = a.cfg.ResolveOut(out)

	passphrase := c.Passphrase
	if passphrase == "" {
		passphrase = a.cfg.ExportPassphrase
	}

	sink, err := export.New(out, passphrase)
	if err != nil {
		return err
	}
	if es, ok := sink.(*export.ElasticsearchV8); ok {
		es.WithLogger(a.log)
	}

	res, err := a.ledger.Filter(opts)
	if err != nil {
		return err
	}

	if err := sink.Write(res.Entries); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d entries to %s\n", res.Len(), out)
	return nil
}
