package export

import (
	"encoding/json"
	"github.com/voidshard/wallet/pkg/domain"
	"os"
)

type JSONFile struct {
	filename string
}

func NewJSONFile(filename string) *JSONFile {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) Write(entries []*domain.Entry) error {
	data, err := marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(f.filename, data, 0644)
}

func marshal(entries []*domain.Entry) ([]byte, error) {
	records := make([]domain.EntryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record())
	}
	return json.Marshal(records)
}
