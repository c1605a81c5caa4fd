package store

import (
	"github.com/voidshard/wallet/pkg/domain"
	"gopkg.in/yaml.v3"
)

type epicsDoc struct {
	Epics []yaml.Node `yaml:"epics"`
}

// EpicsFile is the registry of epics, keyed by handle.
type EpicsFile struct {
	file
	doc epicsDoc
}

var _ Handle = &EpicsFile{}

func OpenEpics(path string, opts ...Option) (*EpicsFile, error) {
	f := &EpicsFile{file: newFile(path, opts)}
	if err := f.open(&f.doc); err != nil {
		return nil, err
	}
	if f.doc.Epics == nil {
		f.doc.Epics = []yaml.Node{}
	}
	return f, nil
}

func (f *EpicsFile) Add(e *domain.Epic) error {
	n, err := e.Node()
	if err != nil {
		return &IOError{Op: "encode", Path: f.path, Err: err}
	}
	f.doc.Epics = append(f.doc.Epics, *n)
	f.dirty = true
	return nil
}

// Exists reports whether an epic with the given handle is registered.
func (f *EpicsFile) Exists(handle string) bool {
	return f.Get(handle) != nil
}

// Get returns the first epic with the given handle, or nil.
func (f *EpicsFile) Get(handle string) *domain.Epic {
	for i := range f.doc.Epics {
		if e := domain.EpicFromNode(&f.doc.Epics[i]); e.Handle == handle {
			return e
		}
	}
	return nil
}

// All returns every registered epic in file order.
func (f *EpicsFile) All() []*domain.Epic {
	out := make([]*domain.Epic, 0, len(f.doc.Epics))
	for i := range f.doc.Epics {
		out = append(out, domain.EpicFromNode(&f.doc.Epics[i]))
	}
	return out
}

func (f *EpicsFile) Close() error {
	if !f.dirty {
		return nil
	}
	return f.write(&f.doc)
}
