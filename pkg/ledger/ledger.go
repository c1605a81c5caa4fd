/*
Package ledger maps wallet operations onto the flat files under a wallet directory.

	<wallet>/data/index.yml           every entry id, used to reject duplicates
	<wallet>/data/epics.yml           registered epics
	<wallet>/data/month_YYYY_MM.yml   entries of one month, grouped by day
	<wallet>/html/                    rendered report
	<wallet>/tmp/                     scratch space, default export target

Each operation opens the files it needs, changes them and closes them before returning.
Nothing is locked: two processes working on the same wallet can lose each other's updates.
*/
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/store"

	"github.com/rs/zerolog"
)

const (
	dirData = "data"
	dirHTML = "html"
	dirTmp  = "tmp"

	fileIndex = "index.yml"
	fileEpics = "epics.yml"
)

// Status is the outcome of Add.
type Status int

const (
	// Added means the entry was written to a month file.
	Added Status = iota
	// ExistsInIndex means the id is already known and nothing was written. Retry with force.
	ExistsInIndex
)

func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case ExistsInIndex:
		return "exists in index"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

type AddResult struct {
	Status Status

	// MonthFile is the base name of the month file the entry went to, when Added.
	MonthFile string
}

type Ledger struct {
	path string
	log  zerolog.Logger
	now  func() time.Time
}

type Option func(*Ledger)

func WithLogger(l zerolog.Logger) Option {
	return func(w *Ledger) {
		w.log = l
	}
}

// WithClock replaces time.Now for month file timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Ledger) {
		w.now = now
	}
}

func New(path string, opts ...Option) *Ledger {
	w := &Ledger{
		path: path,
		log:  zerolog.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Ledger) Path() string    { return w.path }
func (w *Ledger) DataDir() string { return filepath.Join(w.path, dirData) }
func (w *Ledger) HTMLDir() string { return filepath.Join(w.path, dirHTML) }
func (w *Ledger) TmpDir() string  { return filepath.Join(w.path, dirTmp) }

// MonthFileName is the base name of the file holding entries of the given year and month.
func MonthFileName(rym string) string {
	return fmt.Sprintf("month_%s.yml", rym)
}

func (w *Ledger) storeOpts() []store.Option {
	return []store.Option{store.WithLogger(w.log), store.WithClock(w.now)}
}

// Init creates the wallet directories. It is safe to call on an existing wallet.
func (w *Ledger) Init() error {
	for _, dir := range []string{w.DataDir(), w.HTMLDir(), w.TmpDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &store.IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	w.log.Info().Str("path", w.path).Msg("initialised wallet")
	return nil
}

// Add writes the entry to the month file of its date. An id that is already in the index is
// rejected with ExistsInIndex unless force is set. An unknown epic handle is registered with
// default values.
func (w *Ledger) Add(e *domain.Entry, force bool) (*AddResult, error) {
	index, err := store.OpenIndex(filepath.Join(w.DataDir(), fileIndex), w.storeOpts()...)
	if err != nil {
		return nil, err
	}

	exists := index.Exists(e.ID)
	if exists && !force {
		w.log.Debug().Str("id", e.ID).Msg("entry exists in index")
		return &AddResult{Status: ExistsInIndex}, index.Close()
	}

	epics, err := store.OpenEpics(filepath.Join(w.DataDir(), fileEpics), w.storeOpts()...)
	if err != nil {
		return nil, err
	}

	name := MonthFileName(e.Date.RYM())
	month, err := store.OpenMonth(filepath.Join(w.DataDir(), name), w.storeOpts()...)
	if err != nil {
		return nil, err
	}

	if !exists {
		index.Add(e.ID)
	}

	if !epics.Exists(e.Epic) {
		stub := domain.NewEpic()
		stub.Handle = e.Epic
		if err := epics.Add(stub); err != nil {
			return nil, err
		}
		w.log.Info().Str("handle", e.Epic).Msg("registered epic")
	}

	if err := month.Add(e); err != nil {
		return nil, err
	}

	if err := store.CloseAll(index, epics, month); err != nil {
		return nil, err
	}

	w.log.Info().Str("id", e.ID).Str("file", name).Bool("force", force).Msg("added entry")
	return &AddResult{Status: Added, MonthFile: name}, nil
}

// AddEpic registers an epic. It returns false if the handle is taken.
func (w *Ledger) AddEpic(e *domain.Epic) (bool, error) {
	epics, err := store.OpenEpics(filepath.Join(w.DataDir(), fileEpics), w.storeOpts()...)
	if err != nil {
		return false, err
	}

	if epics.Exists(e.Handle) {
		return false, epics.Close()
	}

	if err := epics.Add(e); err != nil {
		return false, err
	}
	if err := epics.Close(); err != nil {
		return false, err
	}

	w.log.Info().Str("handle", e.Handle).Msg("registered epic")
	return true, nil
}

// Epics returns every registered epic.
func (w *Ledger) Epics() ([]*domain.Epic, error) {
	epics, err := store.OpenEpics(filepath.Join(w.DataDir(), fileEpics), w.storeOpts()...)
	if err != nil {
		return nil, err
	}
	// a missing file is not created for a read
	return epics.All(), nil
}
