package export

import (
	"os"

	"github.com/voidshard/wallet/pkg/crypto"
	"github.com/voidshard/wallet/pkg/domain"
)

// SealedFile writes the same document as JSONFile, encrypted and signed with a key derived from
// a passphrase. Use crypto.Open to read it back.
type SealedFile struct {
	filename   string
	passphrase string
}

func NewSealedFile(filename, passphrase string) *SealedFile {
	return &SealedFile{filename: filename, passphrase: passphrase}
}

func (f *SealedFile) Write(entries []*domain.Entry) error {
	data, err := marshal(entries)
	if err != nil {
		return err
	}

	sealed, err := crypto.Seal(data, f.passphrase)
	if err != nil {
		return err
	}

	return os.WriteFile(f.filename, []byte(sealed), 0600)
}
