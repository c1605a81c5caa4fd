package store

type indexDoc struct {
	Index []string `yaml:"index"`
}

// IndexFile is the global list of entry ids, used to reject duplicates.
type IndexFile struct {
	file
	doc indexDoc
}

var _ Handle = &IndexFile{}

func OpenIndex(path string, opts ...Option) (*IndexFile, error) {
	f := &IndexFile{file: newFile(path, opts)}
	if err := f.open(&f.doc); err != nil {
		return nil, err
	}
	if f.doc.Index == nil {
		f.doc.Index = []string{}
	}
	return f, nil
}

// Add appends id. It does not check for duplicates, callers ask Exists first.
func (f *IndexFile) Add(id string) {
	f.doc.Index = append(f.doc.Index, id)
	f.dirty = true
}

func (f *IndexFile) Exists(id string) bool {
	for _, v := range f.doc.Index {
		if v == id {
			return true
		}
	}
	return false
}

// Len is the number of ids held.
func (f *IndexFile) Len() int {
	return len(f.doc.Index)
}

func (f *IndexFile) Close() error {
	if !f.dirty {
		return nil
	}
	return f.write(&f.doc)
}
