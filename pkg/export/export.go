/*
Package export writes filtered ledger entries to places outside the wallet directory.
*/
package export

import (
	"fmt"
	"strings"

	"github.com/voidshard/wallet/pkg/domain"
)

// Sink receives a batch of entries.
type Sink interface {
	Write([]*domain.Entry) error
}

// New parses an output description of the form kind:target.
//
//	jsonfile:/path/file.json
//	es8:http://myelasticsearch:9200
//	xlsx:/path/file.xlsx
//	sealed:/path/file.sealed   (requires a passphrase)
func New(out, passphrase string) (Sink, error) {
	bits := strings.SplitN(out, ":", 2)
	if len(bits) != 2 || bits[1] == "" {
		return nil, fmt.Errorf("invalid out %q, expected [jsonfile:/path/to/file.json] [es8:http://elasticsearch:9200] [xlsx:/path/to/file.xlsx] or [sealed:/path/to/file]", out)
	}

	switch bits[0] {
	case "jsonfile":
		return NewJSONFile(bits[1]), nil
	case "es8":
		return NewElasticsearchV8(bits[1]), nil
	case "xlsx":
		return NewXLSX(bits[1]), nil
	case "sealed":
		if passphrase == "" {
			return nil, fmt.Errorf("sealed output requires a passphrase")
		}
		return NewSealedFile(bits[1], passphrase), nil
	}

	return nil, fmt.Errorf("unknown output kind %q", bits[0])
}
