package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voidshard/wallet/pkg/domain"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	jf := NewJSONFile(path)

	e1 := domain.NewEntry()
	e1.ID = "1"
	e1.SetRevenue(30)
	e2 := domain.NewEntry()
	e2.ID = "2"
	e2.SetExpense(10)

	err := jf.Write([]*domain.Entry{e1, e2})
	require.Nil(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0]["id"])
	assert.Equal(t, 30.0, out[0]["balance"])
	assert.Equal(t, "2", out[1]["id"])
	assert.Equal(t, -10.0, out[1]["balance"])
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	require.NoError(t, NewJSONFile(path).Write(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestNew(t *testing.T) {
	s, err := New("jsonfile:/tmp/x.json", "")
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, s)

	s, err = New("es8:http://localhost:9200", "")
	require.NoError(t, err)
	assert.IsType(t, &ElasticsearchV8{}, s)

	s, err = New("xlsx:/tmp/x.xlsx", "")
	require.NoError(t, err)
	assert.IsType(t, &XLSX{}, s)

	s, err = New("sealed:/tmp/x.sealed", "hunter2")
	require.NoError(t, err)
	assert.IsType(t, &SealedFile{}, s)
}

func TestNewInvalid(t *testing.T) {
	for _, out := range []string{"", "jsonfile", "jsonfile:", "ftp:/x", "sealed:/tmp/x"} {
		_, err := New(out, "")
		assert.Error(t, err, out)
	}
}
