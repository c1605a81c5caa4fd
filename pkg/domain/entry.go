package domain

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/voidshard/wallet/pkg/date"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCategory = "default"
	DefaultEpic     = "default"
)

// Entry is a single ledger line.
//
// Revenue is never negative and expense never positive; balance is derived from both and is
// kept in step by the setters.
type Entry struct {
	ID       string
	Title    string
	Date     date.Date
	Category string
	Comment  string
	Epic     string

	revenue float64
	expense float64
	balance float64
}

// EntryOptions carries the optional fields of an entry. Nil fields keep their defaults.
type EntryOptions struct {
	ID       *string
	Date     *date.Date
	Title    *string
	Revenue  *float64
	Expense  *float64
	Category *string
	Comment  *string
	Epic     *string
}

// EntryRecord is the stored form of an entry. Field order is the on-disk order.
type EntryRecord struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Date     string `yaml:"date" json:"date"`
	Revenue  Amount `yaml:"revenue" json:"revenue"`
	Expense  Amount `yaml:"expense" json:"expense"`
	Balance  Amount `yaml:"balance" json:"balance"`
	Category string `yaml:"category" json:"category"`
	Comment  string `yaml:"comment" json:"comment"`
	Epic     string `yaml:"epic" json:"epic"`
}

// NewEntry returns an entry with a fresh random id and default category and epic.
func NewEntry() *Entry {
	return &Entry{
		ID:       uuid.NewString(),
		Date:     date.New(),
		Category: DefaultCategory,
		Epic:     DefaultEpic,
	}
}

// NewEntryFromOptions builds an entry applying only the options that are set.
func NewEntryFromOptions(o EntryOptions) *Entry {
	e := NewEntry()
	if o.ID != nil {
		e.ID = *o.ID
	}
	if o.Date != nil {
		e.Date = *o.Date
	}
	if o.Title != nil {
		e.Title = *o.Title
	}
	if o.Revenue != nil {
		e.SetRevenue(*o.Revenue)
	}
	if o.Expense != nil {
		e.SetExpense(*o.Expense)
	}
	if o.Category != nil {
		e.Category = *o.Category
	}
	if o.Comment != nil {
		e.Comment = *o.Comment
	}
	if o.Epic != nil {
		e.Epic = *o.Epic
	}
	return e
}

func (e *Entry) Revenue() float64 { return e.revenue }
func (e *Entry) Expense() float64 { return e.expense }
func (e *Entry) Balance() float64 { return e.balance }

// SetRevenue stores |v|.
func (e *Entry) SetRevenue(v float64) {
	e.revenue = math.Abs(v)
	e.calc()
}

// SetExpense stores -|v|.
func (e *Entry) SetExpense(v float64) {
	e.expense = -math.Abs(v)
	e.calc()
}

func (e *Entry) HasRevenue() bool {
	return e.revenue > 0
}

func (e *Entry) HasExpense() bool {
	return e.expense < 0
}

func (e *Entry) calc() {
	e.balance = e.revenue + e.expense
}

// Record returns the stored form of the entry.
func (e *Entry) Record() EntryRecord {
	return EntryRecord{
		ID:       e.ID,
		Title:    e.Title,
		Date:     e.Date.YMD(),
		Revenue:  Amount(e.revenue),
		Expense:  Amount(e.expense),
		Balance:  Amount(e.balance),
		Category: e.Category,
		Comment:  e.Comment,
		Epic:     e.Epic,
	}
}

// Node encodes the entry's record as a YAML mapping node.
func (e *Entry) Node() (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(e.Record()); err != nil {
		return nil, err
	}
	return n, nil
}

func (e *Entry) JSON() ([]byte, error) {
	return json.Marshal(e.Record())
}

// EntryFromNode decodes a stored record. It never fails: anything that is not a mapping yields
// a default entry.
func EntryFromNode(n *yaml.Node) *Entry {
	fields := map[string]interface{}{}
	if n != nil {
		_ = n.Decode(&fields)
	}
	return EntryFromRecord(fields)
}

// EntryFromRecord builds an entry from decoded record fields. Missing fields, or fields of an
// unexpected type, keep the entry defaults. A missing balance is derived from revenue and
// expense; a present one is taken as stored.
func EntryFromRecord(fields map[string]interface{}) *Entry {
	e := NewEntry()

	stringField(fields, "id", &e.ID)
	stringField(fields, "title", &e.Title)
	stringField(fields, "category", &e.Category)
	stringField(fields, "comment", &e.Comment)
	stringField(fields, "epic", &e.Epic)

	var ds string
	switch v := fields["date"].(type) {
	case string:
		ds = v
	case time.Time:
		ds = v.Format("2006-01-02")
	}
	if ds != "" {
		if d, err := date.Parse(ds); err == nil {
			e.Date = d
		}
	}

	numberField(fields, "revenue", &e.revenue)
	numberField(fields, "expense", &e.expense)
	if !numberField(fields, "balance", &e.balance) {
		e.calc()
	}

	return e
}

func stringField(fields map[string]interface{}, key string, out *string) bool {
	v, ok := fields[key].(string)
	if ok {
		*out = v
	}
	return ok
}

func numberField(fields map[string]interface{}, key string, out *float64) bool {
	switch v := fields[key].(type) {
	case float64:
		*out = v
	case int:
		*out = float64(v)
	case int64:
		*out = float64(v)
	case uint64:
		*out = float64(v)
	default:
		return false
	}
	return true
}
