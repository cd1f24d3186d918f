package openair

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/charmap"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ReadDocument reads an OpenAir document, decompressing it if it is zstd
// compressed. Documents that are not valid UTF-8 are decoded as
// ISO-8859-1, which is what most published OpenAir files use.
func ReadDocument(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return "", fmt.Errorf("failed to read zstd data: %w", err)
		}
		defer zr.Close()
		r = zr
	} else {
		r = br
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if utf8.Valid(b) {
		return string(b), nil
	}
	b, err = charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("failed to decode ISO-8859-1: %w", err)
	}
	return string(b), nil
}

// LoadFile reads and parses an OpenAir file.
func LoadFile(fileName string, cfg Config) (*Collection, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := ReadDocument(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return Parse(doc, cfg)
}

// Load fetches and parses an OpenAir document over HTTP.
func Load(url string, cfg Config) (*Collection, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", url, resp.Status)
	}

	doc, err := ReadDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return Parse(doc, cfg)
}
