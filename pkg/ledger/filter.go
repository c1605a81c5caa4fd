package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/voidshard/wallet/pkg/date"
	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/store"
	"github.com/voidshard/wallet/pkg/summary"
)

// FilterOptions narrows the entries returned by Filter. Every condition that is set must hold.
type FilterOptions struct {
	// Date matches on the most specific part it has: the whole date if it has a day, year and
	// month if it has a month, otherwise only the year. An empty date matches everything.
	Date *date.Date

	// Revenue keeps only entries with revenue.
	Revenue bool

	// Expense keeps only entries with an expense.
	Expense bool

	Category string
	Epic     string
}

// pattern is the glob over month file names that can hold matching entries.
func (o FilterOptions) pattern() string {
	d := o.Date
	switch {
	case d == nil:
		return MonthFileName("*")
	case d.HasYear() && d.HasMonth():
		return MonthFileName(d.RYM())
	case d.HasYear():
		return MonthFileName(fmt.Sprintf("%04d_*", d.Year()))
	}
	return MonthFileName("*")
}

func (o FilterOptions) match(e *domain.Entry) bool {
	if d := o.Date; d != nil {
		switch {
		case d.HasDay():
			if !d.Equal(e.Date) {
				return false
			}
		case d.HasMonth():
			if d.Year() != e.Date.Year() || d.Month() != e.Date.Month() {
				return false
			}
		case d.HasYear():
			if d.Year() != e.Date.Year() {
				return false
			}
		}
	}
	if o.Revenue && !e.HasRevenue() {
		return false
	}
	if o.Expense && !e.HasExpense() {
		return false
	}
	if o.Category != "" && o.Category != e.Category {
		return false
	}
	if o.Epic != "" && o.Epic != e.Epic {
		return false
	}
	return true
}

// Filter loads the month files that can hold matching entries, keeps the entries that match
// and folds them into a summary. Nothing is written.
func (w *Ledger) Filter(opts FilterOptions) (*summary.Result, error) {
	paths, err := w.monthFiles(opts.pattern())
	if err != nil {
		return nil, err
	}

	result := summary.New()
	seen := 0
	for _, path := range paths {
		month, err := store.OpenMonth(path, w.storeOpts()...)
		if err != nil {
			return nil, err
		}
		if month.Dirty() {
			// not a regular file, there is nothing to read
			w.log.Warn().Str("file", path).Msg("skipping month file")
			continue
		}

		for _, e := range month.Get() {
			seen++
			if opts.match(e) {
				result.Add(e)
			}
		}
	}
	result.PostCalc()

	w.log.Debug().Str("pattern", opts.pattern()).Int("files", len(paths)).Int("seen", seen).Int("matched", result.Len()).Msg("filtered entries")
	return result, nil
}

// monthFiles lists the files in the data directory whose name matches pattern, in name order.
// Only the names are matched so the wallet path itself may hold glob characters.
func (w *Ledger) monthFiles(pattern string) ([]string, error) {
	dir := w.DataDir()
	items, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, &store.IOError{Op: "read", Path: dir, Err: err}
	}

	paths := []string{}
	for _, item := range items {
		ok, err := filepath.Match(pattern, item.Name())
		if err != nil {
			return nil, &store.IOError{Op: "match", Path: pattern, Err: err}
		}
		if ok {
			paths = append(paths, filepath.Join(dir, item.Name()))
		}
	}
	return paths, nil
}
