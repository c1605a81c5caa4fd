/*Basic command structure*/
package main

import (
	"io"
	"os"
	"time"

	"github.com/voidshard/wallet/pkg/config"
	"github.com/voidshard/wallet/pkg/ledger"
	"github.com/voidshard/wallet/pkg/logger"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
)

// context holds global options
type context struct {
	Wallet   string `short:"w" help:"Path to the wallet directory (default $WALLET_PATH or .)."`
	LogLevel string `name:"log-level" help:"Log level [debug info warn error] (default $WALLET_LOG_LEVEL or warn)."`
}

// cli commands / args available
var cli struct {
	Ctx context `embed:""`

	Vars   varsCmd   `cmd:"" help:"Print variables."`
	Init   initCmd   `cmd:"" help:"Initialize a new wallet."`
	Add    addCmd    `cmd:"" help:"Add a new entry."`
	Epic   epicCmd   `cmd:"" help:"Add a new epic."`
	List   listCmd   `cmd:"" help:"List entries."`
	HTML   htmlCmd   `cmd:"" name:"html" help:"Generate HTML output."`
	Export exportCmd `cmd:"" help:"Export entries [jsonfile:/path/file.json es8:http://myelasticsearch:9200 xlsx:/path/file.xlsx sealed:/path/file]."`
}

// app is what every command runs against.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	ledger *ledger.Ledger
	out    io.Writer
	now    func() time.Time
}

func newApp(c *context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.Wallet != "" {
		cfg.WalletPath = c.Wallet
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	return &app{
		cfg:    cfg,
		log:    log,
		ledger: ledger.New(cfg.WalletPath, ledger.WithLogger(log)),
		out:    os.Stdout,
		now:    time.Now,
	}, nil
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("wallet"), kong.Description("A personal ledger kept in flat YAML files."))

	a, err := newApp(&cli.Ctx)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}
