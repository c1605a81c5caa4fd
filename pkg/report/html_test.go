package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voidshard/wallet/pkg/date"
	"github.com/voidshard/wallet/pkg/domain"
	"github.com/voidshard/wallet/pkg/summary"
)

func entry(day string, revenue, expense float64, category string) *domain.Entry {
	e := domain.NewEntry()
	e.Date = date.MustParse(day)
	e.SetRevenue(revenue)
	e.SetExpense(expense)
	e.Category = category
	return e
}

func TestRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "html")
	h := &HTML{Dir: dir, Now: func() time.Time { return time.Date(2020, time.March, 4, 10, 0, 0, 0, time.UTC) }}

	r := summary.New()
	r.Add(entry("2001-01-01", 30, 0, "salary"))
	r.Add(entry("2001-02-01", 0, 10, "food"))
	rent := entry("2002-01-01", 0, 40, "<rent>")
	rent.Epic = "new flat}"
	r.Add(rent)
	r.PostCalc()

	require.NoError(t, h.Render(r, ".epic-trip { background-color: #ff0000; }\n"))

	css, err := os.ReadFile(filepath.Join(dir, "style.css"))
	require.NoError(t, err)
	assert.Equal(t, ".epic-trip { background-color: #ff0000; }\n", string(css))

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Generated at 2020-03-04 10:00:00 +0000, 3 entries.")
	assert.Contains(t, out, "<td>1</td><td>2001</td>")
	assert.Contains(t, out, "<td>2</td><td>2002</td>")
	// running balance over the years: 20.00 then -20.00
	assert.Contains(t, out, `<td class="balance positive">20.00</td><td class="balance positive">20.00</td>`)
	assert.Contains(t, out, `<td class="balance negative">-40.00</td><td class="balance negative">-20.00</td>`)
	assert.Contains(t, out, "<td>2001-02</td>")
	assert.Contains(t, out, "&lt;rent&gt;")
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, out, `<tr class="epic-default">`)
	assert.Contains(t, out, `<tr class="epic-new-flat-">`)
}

func TestRenderEmpty(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, (&HTML{Dir: dir}).Render(summary.New(), ""))

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "0 entries.")
}
