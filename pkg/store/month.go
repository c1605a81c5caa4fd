package store

import (
	"sort"
	"time"

	"github.com/voidshard/wallet/pkg/domain"
	"gopkg.in/yaml.v3"
)

// MonthVersion is the lowest format version written to month files.
const MonthVersion = 3

type monthMeta struct {
	Version   int    `yaml:"version"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

type monthDoc struct {
	Meta monthMeta              `yaml:"meta"`
	Days map[string][]yaml.Node `yaml:"days"`
}

// MonthFile holds the entries of one calendar month, grouped by day.
type MonthFile struct {
	file
	doc monthDoc
}

var _ Handle = &MonthFile{}

func OpenMonth(path string, opts ...Option) (*MonthFile, error) {
	f := &MonthFile{file: newFile(path, opts)}
	if err := f.open(&f.doc); err != nil {
		return nil, err
	}
	if f.dirty {
		now := f.timestamp()
		f.doc.Meta = monthMeta{Version: MonthVersion, CreatedAt: now, UpdatedAt: now}
	}
	if f.doc.Days == nil {
		f.doc.Days = map[string][]yaml.Node{}
	}
	return f, nil
}

func (f *MonthFile) timestamp() string {
	return f.now().Format(time.RFC3339)
}

// Add appends the entry to the bucket of its day, creating the bucket if needed.
func (f *MonthFile) Add(e *domain.Entry) error {
	n, err := e.Node()
	if err != nil {
		return &IOError{Op: "encode", Path: f.path, Err: err}
	}

	day := e.Date.YMD()
	f.doc.Days[day] = append(f.doc.Days[day], *n)
	f.dirty = true
	return nil
}

// Days returns the day keys present in the file, sorted.
func (f *MonthFile) Days() []string {
	days := make([]string, 0, len(f.doc.Days))
	for day := range f.doc.Days {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Get returns every entry of the file. Days come in key order and entries of a day in the
// order they were added; that is not necessarily chronological.
func (f *MonthFile) Get() []*domain.Entry {
	var out []*domain.Entry
	for _, day := range f.Days() {
		nodes := f.doc.Days[day]
		for i := range nodes {
			out = append(out, domain.EntryFromNode(&nodes[i]))
		}
	}
	return out
}

// Version is the format version recorded in the file.
func (f *MonthFile) Version() int {
	return f.doc.Meta.Version
}

func (f *MonthFile) Close() error {
	if !f.dirty {
		return nil
	}

	if f.doc.Meta.Version < MonthVersion {
		f.doc.Meta.Version = MonthVersion
	}
	f.doc.Meta.UpdatedAt = f.timestamp()
	if f.doc.Meta.CreatedAt == "" {
		f.doc.Meta.CreatedAt = f.doc.Meta.UpdatedAt
	}

	return f.write(&f.doc)
}
