package openair

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, doc)

	doc, err = ReadDocument(strings.NewReader("AC"))
	require.NoError(t, err)
	assert.Equal(t, "AC", doc)
}

func TestReadDocumentLatin1(t *testing.T) {
	doc, err := ReadDocument(bytes.NewReader([]byte("AN M\xfcnchen CTR\n")))
	require.NoError(t, err)
	assert.Equal(t, "AN München CTR\n", doc)

	// Valid UTF-8 is left alone.
	doc, err = ReadDocument(strings.NewReader("AN München CTR\n"))
	require.NoError(t, err)
	assert.Equal(t, "AN München CTR\n", doc)
}

func TestReadDocumentZstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll([]byte(sampleDocument), nil)
	require.NoError(t, enc.Close())

	doc, err := ReadDocument(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, doc)
}

func TestLoadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(fileName, []byte(sampleDocument), 0o644))

	c, err := LoadFile(fileName, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, c.Airspaces, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"), DefaultConfig())
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openair.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer server.Close()

	c, err := Load(server.URL+"/openair.txt", DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, c.Airspaces, 2)

	_, err = Load(server.URL+"/missing.txt", DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
