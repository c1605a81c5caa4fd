package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voidshard/wallet/pkg/date"
	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/store"
	"github.com/voidshard/wallet/pkg/summary"
)

var testNow = time.Date(2020, time.March, 4, 10, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) *Ledger {
	w := New(t.TempDir(), WithClock(func() time.Time { return testNow }))
	require.NoError(t, w.Init())
	return w
}

func newEntry(day string, revenue, expense float64) *domain.Entry {
	e := domain.NewEntry()
	e.Title = "Hi"
	e.Date = date.MustParse(day)
	e.SetRevenue(revenue)
	e.SetExpense(expense)
	return e
}

func dateOpt(s string) FilterOptions {
	d := date.MustParse(s)
	return FilterOptions{Date: &d}
}

func TestInit(t *testing.T) {
	w := New(t.TempDir())

	require.NoError(t, w.Init())
	require.NoError(t, w.Init())

	for _, dir := range []string{w.DataDir(), w.HTMLDir(), w.TmpDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestAdd(t *testing.T) {
	w := newTestLedger(t)
	e := newEntry("2001-01-01", 30, 0)

	res, err := w.Add(e, false)
	require.NoError(t, err)
	assert.Equal(t, Added, res.Status)
	assert.Equal(t, "month_2001_01.yml", res.MonthFile)

	index, err := store.OpenIndex(filepath.Join(w.DataDir(), "index.yml"))
	require.NoError(t, err)
	assert.True(t, index.Exists(e.ID))

	month, err := store.OpenMonth(filepath.Join(w.DataDir(), res.MonthFile))
	require.NoError(t, err)
	entries := month.Get()
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.Equal(t, 30.0, entries[0].Balance())

	epics, err := w.Epics()
	require.NoError(t, err)
	require.Len(t, epics, 1)
	assert.Equal(t, domain.DefaultEpic, epics[0].Handle)
}

func TestAddIdempotent(t *testing.T) {
	w := newTestLedger(t)
	e := newEntry("2001-01-01", 30, 0)

	res, err := w.Add(e, false)
	require.NoError(t, err)
	assert.Equal(t, Added, res.Status)

	for i := 0; i < 2; i++ {
		res, err = w.Add(e, false)
		require.NoError(t, err)
		assert.Equal(t, ExistsInIndex, res.Status)
		assert.Equal(t, "", res.MonthFile)
	}

	month, err := store.OpenMonth(filepath.Join(w.DataDir(), "month_2001_01.yml"))
	require.NoError(t, err)
	assert.Len(t, month.Get(), 1)
}

func TestAddForce(t *testing.T) {
	w := newTestLedger(t)
	e := newEntry("2001-01-01", 30, 0)

	_, err := w.Add(e, false)
	require.NoError(t, err)

	res, err := w.Add(e, true)
	require.NoError(t, err)
	assert.Equal(t, Added, res.Status)

	index, err := store.OpenIndex(filepath.Join(w.DataDir(), "index.yml"))
	require.NoError(t, err)
	assert.Equal(t, 1, index.Len())

	month, err := store.OpenMonth(filepath.Join(w.DataDir(), res.MonthFile))
	require.NoError(t, err)
	assert.Len(t, month.Get(), 2)
}

func TestAddRegistersEpic(t *testing.T) {
	w := newTestLedger(t)

	e := newEntry("2001-01-01", 0, 5)
	e.Epic = "trip"
	_, err := w.Add(e, false)
	require.NoError(t, err)

	e = newEntry("2001-01-02", 0, 5)
	e.Epic = "trip"
	_, err = w.Add(e, false)
	require.NoError(t, err)

	epics, err := w.Epics()
	require.NoError(t, err)
	require.Len(t, epics, 1)
	assert.Equal(t, "trip", epics[0].Handle)
	assert.Equal(t, "Default", epics[0].Title)
	assert.Equal(t, "#ffffff", epics[0].BgColor)
}

func TestAddWithoutInit(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"))

	_, err := w.Add(newEntry("2001-01-01", 1, 0), false)
	var ioErr *store.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestAddEpic(t *testing.T) {
	w := newTestLedger(t)

	ok, err := w.AddEpic(&domain.Epic{ID: "1", Handle: "trip", Title: "Trip", BgColor: "#ff0000"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = w.AddEpic(&domain.Epic{ID: "2", Handle: "trip", Title: "Other", BgColor: "#000000"})
	require.NoError(t, err)
	assert.False(t, ok)

	epics, err := w.Epics()
	require.NoError(t, err)
	require.Len(t, epics, 1)
	assert.Equal(t, "Trip", epics[0].Title)
}

func TestEpicsMissingFile(t *testing.T) {
	w := newTestLedger(t)

	epics, err := w.Epics()
	require.NoError(t, err)
	assert.Empty(t, epics)

	_, err = os.Stat(filepath.Join(w.DataDir(), "epics.yml"))
	assert.True(t, os.IsNotExist(err))
}

func TestFilterGranularity(t *testing.T) {
	w := newTestLedger(t)
	_, err := w.Add(newEntry("2001-01-01", 30, 0), false)
	require.NoError(t, err)

	for _, in := range []string{"2001", "2001-01", "2001-01-01"} {
		res, err := w.Filter(dateOpt(in))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Len(), in)
	}

	for _, in := range []string{"2001-02", "2002", "2001-01-02"} {
		res, err := w.Filter(dateOpt(in))
		require.NoError(t, err)
		assert.Equal(t, 0, res.Len(), in)
	}
}

func TestFilterGlobCharactersInPath(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "money[old]*?"), WithClock(func() time.Time { return testNow }))
	require.NoError(t, w.Init())

	for _, day := range []string{"2001-01-01", "2001-02-01", "2002-01-01"} {
		_, err := w.Add(newEntry(day, 1, 0), false)
		require.NoError(t, err)
	}

	res, err := w.Filter(FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Len())

	res, err = w.Filter(dateOpt("2001"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len())
}

func TestFilterRawFilledDay(t *testing.T) {
	w := newTestLedger(t)
	for _, day := range []string{"2020-03-21", "2020-03-22", "2020-04-21"} {
		_, err := w.Add(newEntry(day, 1, 0), false)
		require.NoError(t, err)
	}

	d := date.MustParse("21")
	require.NoError(t, d.RawFill(testNow))
	assert.Equal(t, "month_*.yml", FilterOptions{Date: &d}.pattern())

	res, err := w.Filter(FilterOptions{Date: &d})
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "2020-03-21", res.Entries[0].Date.String())
}

func TestFilterPattern(t *testing.T) {
	assert.Equal(t, "month_*.yml", FilterOptions{}.pattern())
	assert.Equal(t, "month_2001_02.yml", dateOpt("2001-02-03").pattern())
	assert.Equal(t, "month_2001_02.yml", dateOpt("2001-02").pattern())
	assert.Equal(t, "month_2001_*.yml", dateOpt("2001").pattern())
	assert.Equal(t, "month_*.yml", dateOpt("02-03").pattern())
}

func TestFilterConditions(t *testing.T) {
	w := newTestLedger(t)

	salary := newEntry("2001-01-01", 100, 0)
	salary.Category = "salary"
	food := newEntry("2001-01-02", 0, 10)
	food.Category = "food"
	food.Epic = "trip"
	both := newEntry("2001-01-03", 5, 5)

	for _, e := range []*domain.Entry{salary, food, both} {
		_, err := w.Add(e, false)
		require.NoError(t, err)
	}

	cases := []struct {
		name string
		opts FilterOptions
		ids  []string
	}{
		{"all", FilterOptions{}, []string{salary.ID, food.ID, both.ID}},
		{"revenue", FilterOptions{Revenue: true}, []string{salary.ID, both.ID}},
		{"expense", FilterOptions{Expense: true}, []string{food.ID, both.ID}},
		{"revenue and expense", FilterOptions{Revenue: true, Expense: true}, []string{both.ID}},
		{"category", FilterOptions{Category: "food"}, []string{food.ID}},
		{"epic", FilterOptions{Epic: "trip"}, []string{food.ID}},
		{"default epic", FilterOptions{Epic: domain.DefaultEpic}, []string{salary.ID, both.ID}},
		{"no match", FilterOptions{Category: "food", Revenue: true}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := w.Filter(tc.opts)
			require.NoError(t, err)

			ids := []string{}
			for _, e := range res.Entries {
				ids = append(ids, e.ID)
			}
			assert.ElementsMatch(t, tc.ids, ids)
		})
	}
}

func TestFilterEmptyWallet(t *testing.T) {
	w := New(t.TempDir())

	res, err := w.Filter(FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
}

func TestScenario(t *testing.T) {
	w := newTestLedger(t)

	for _, e := range []*domain.Entry{
		newEntry("2001-01-01", 30, 0),
		newEntry("2001-01-02", 0, 10),
		newEntry("2001-01-03", 0, 10),
		newEntry("2001-02-01", 0, 10),
		newEntry("2002-01-01", 0, 10),
	} {
		_, err := w.Add(e, false)
		require.NoError(t, err)
	}

	res, err := w.Filter(FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, 30.0, res.Revenue)
	assert.Equal(t, -40.0, res.Expense)
	assert.Equal(t, -10.0, res.Balance)

	require.Len(t, res.Years, 2)
	y2001 := res.Years[2001]
	require.Len(t, y2001.Months, 2)
	assert.Len(t, y2001.Months[1].Days, 3)
	assert.Len(t, y2001.Months[2].Days, 1)
	assert.Len(t, res.Years[2002].Months, 1)

	assert.InDelta(t, 100.0, res.Categories[domain.DefaultCategory].BalancePercent, 1e-9)
}

type fakeRenderer struct {
	result     *summary.Result
	stylesheet string
	err        error
}

func (f *fakeRenderer) Render(result *summary.Result, stylesheet string) error {
	f.result = result
	f.stylesheet = stylesheet
	return f.err
}

func TestHTML(t *testing.T) {
	w := newTestLedger(t)

	_, err := w.AddEpic(&domain.Epic{ID: "1", Handle: "trip", Title: "Trip", BgColor: "#ff0000"})
	require.NoError(t, err)
	_, err = w.Add(newEntry("2001-01-01", 30, 0), false)
	require.NoError(t, err)

	r := &fakeRenderer{}
	res, err := w.HTML(FilterOptions{}, r)
	require.NoError(t, err)
	assert.Same(t, res, r.result)
	assert.Equal(t, 1, res.Len())
	assert.Contains(t, r.stylesheet, ".epic-trip { background-color: #ff0000; }\n")
	assert.Contains(t, r.stylesheet, ".epic-default { background-color: #ffffff; }\n")

	_, err = w.AddEpic(&domain.Epic{ID: "2", Handle: "road trip}", Title: "Road", BgColor: "#00ff00"})
	require.NoError(t, err)
	_, err = w.HTML(FilterOptions{}, r)
	require.NoError(t, err)
	assert.Contains(t, r.stylesheet, ".epic-road-trip- { background-color: #00ff00; }\n")
	assert.NotContains(t, r.stylesheet, "road trip")

	r.err = errors.New("boom")
	_, err = w.HTML(FilterOptions{}, r)
	assert.Error(t, err)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "exists in index", ExistsInIndex.String())
	assert.Equal(t, "status(7)", Status(7).String())
}
