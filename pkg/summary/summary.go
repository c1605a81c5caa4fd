/*
Package summary folds ledger entries into nested totals: year, month and day buckets plus
per-category and per-epic rollups at the year, month and top level.

Folding happens in two phases. Add accumulates; PostCalc derives the category percentages,
which need the finished grand total. BalancePercent is zero until PostCalc has run.
*/
package summary

import (
	"math"
	"sort"

	"github.com/voidshard/wallet/pkg/domain"
)

// Totals are the running sums every accumulator keeps.
type Totals struct {
	Revenue float64
	Expense float64
	Balance float64
}

func (t *Totals) add(e *domain.Entry) {
	t.Revenue += e.Revenue()
	t.Expense += e.Expense()
	t.Balance += e.Balance()
}

type CategorySummary struct {
	Totals
	Name string

	// BalancePercent is this category's share of the summed absolute category balances.
	BalancePercent float64
}

type EpicSummary struct {
	Totals
	Handle string
}

type DaySummary struct {
	Totals
	Day     int
	Entries []*domain.Entry
}

type MonthSummary struct {
	Totals
	Year  int
	Month int

	Days       map[int]*DaySummary
	Categories map[string]*CategorySummary
	Epics      map[string]*EpicSummary
}

type YearSummary struct {
	Totals
	Year int

	Months     map[int]*MonthSummary
	Categories map[string]*CategorySummary
	Epics      map[string]*EpicSummary
}

// Result is the outcome of a filter: every matching entry in load order and its rollups.
type Result struct {
	Totals
	Entries []*domain.Entry

	Years      map[int]*YearSummary
	Categories map[string]*CategorySummary
	Epics      map[string]*EpicSummary
}

func New() *Result {
	return &Result{
		Entries:    []*domain.Entry{},
		Years:      map[int]*YearSummary{},
		Categories: map[string]*CategorySummary{},
		Epics:      map[string]*EpicSummary{},
	}
}

// Add folds one entry into the result and every level below it.
func (r *Result) Add(e *domain.Entry) {
	r.Entries = append(r.Entries, e)
	r.Totals.add(e)

	y, ok := r.Years[e.Date.Year()]
	if !ok {
		y = newYear(e.Date.Year())
		r.Years[y.Year] = y
	}
	y.add(e)

	addCategory(r.Categories, e)
	addEpic(r.Epics, e)
}

// PostCalc computes BalancePercent for the top level categories. It is skipped when the
// category volume is zero.
func (r *Result) PostCalc() {
	volume := 0.0
	for _, c := range r.Categories {
		volume += math.Abs(c.Balance)
	}
	if volume == 0 {
		return
	}
	for _, c := range r.Categories {
		c.BalancePercent = math.Abs(c.Balance) / volume * 100
	}
}

// Len is the number of entries folded in.
func (r *Result) Len() int {
	return len(r.Entries)
}

// SortedYears returns the years in ascending order.
func (r *Result) SortedYears() []*YearSummary {
	out := make([]*YearSummary, 0, len(r.Years))
	for _, y := range r.Years {
		out = append(out, y)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func (r *Result) SortedCategories() []*CategorySummary {
	return sortedCategories(r.Categories)
}

func (r *Result) SortedEpics() []*EpicSummary {
	return sortedEpics(r.Epics)
}

func newYear(year int) *YearSummary {
	return &YearSummary{
		Year:       year,
		Months:     map[int]*MonthSummary{},
		Categories: map[string]*CategorySummary{},
		Epics:      map[string]*EpicSummary{},
	}
}

func (y *YearSummary) add(e *domain.Entry) {
	y.Totals.add(e)

	m, ok := y.Months[e.Date.Month()]
	if !ok {
		m = newMonth(y.Year, e.Date.Month())
		y.Months[m.Month] = m
	}
	m.add(e)

	addCategory(y.Categories, e)
	addEpic(y.Epics, e)
}

func (y *YearSummary) SortedMonths() []*MonthSummary {
	out := make([]*MonthSummary, 0, len(y.Months))
	for _, m := range y.Months {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func (y *YearSummary) SortedCategories() []*CategorySummary {
	return sortedCategories(y.Categories)
}

func (y *YearSummary) SortedEpics() []*EpicSummary {
	return sortedEpics(y.Epics)
}

func newMonth(year, month int) *MonthSummary {
	return &MonthSummary{
		Year:       year,
		Month:      month,
		Days:       map[int]*DaySummary{},
		Categories: map[string]*CategorySummary{},
		Epics:      map[string]*EpicSummary{},
	}
}

func (m *MonthSummary) add(e *domain.Entry) {
	m.Totals.add(e)

	d, ok := m.Days[e.Date.Day()]
	if !ok {
		d = &DaySummary{Day: e.Date.Day()}
		m.Days[d.Day] = d
	}
	d.Totals.add(e)
	d.Entries = append(d.Entries, e)

	addCategory(m.Categories, e)
	addEpic(m.Epics, e)
}

func (m *MonthSummary) SortedDays() []*DaySummary {
	out := make([]*DaySummary, 0, len(m.Days))
	for _, d := range m.Days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func (m *MonthSummary) SortedCategories() []*CategorySummary {
	return sortedCategories(m.Categories)
}

func (m *MonthSummary) SortedEpics() []*EpicSummary {
	return sortedEpics(m.Epics)
}

func addCategory(cats map[string]*CategorySummary, e *domain.Entry) {
	c, ok := cats[e.Category]
	if !ok {
		c = &CategorySummary{Name: e.Category}
		cats[c.Name] = c
	}
	c.add(e)
}

func addEpic(epics map[string]*EpicSummary, e *domain.Entry) {
	s, ok := epics[e.Epic]
	if !ok {
		s = &EpicSummary{Handle: e.Epic}
		epics[s.Handle] = s
	}
	s.add(e)
}

func sortedCategories(cats map[string]*CategorySummary) []*CategorySummary {
	out := make([]*CategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedEpics(epics map[string]*EpicSummary) []*EpicSummary {
	out := make([]*EpicSummary, 0, len(epics))
	for _, s := range epics {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}
