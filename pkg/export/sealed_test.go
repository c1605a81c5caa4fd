package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voidshard/wallet/pkg/crypto"
	"github.com/voidshard/wallet/pkg/domain"
)

func TestSealedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sealed")

	e := domain.NewEntry()
	e.ID = "1"
	e.Title = "secret"
	e.SetExpense(12.5)

	require.NoError(t, NewSealedFile(path, "hunter2").Write([]*domain.Entry{e}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	plain, err := crypto.Open(string(data), "hunter2")
	require.NoError(t, err)

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(plain, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "secret", out[0]["title"])
	assert.Equal(t, -12.5, out[0]["balance"])
}
