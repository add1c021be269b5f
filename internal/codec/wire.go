package codec

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// seal serializes v to JSON, deflates it, and base64url-encodes the result
// without padding.
func seal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling state: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return "", fmt.Errorf("compressing state: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("flushing compressor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// unseal reverses seal. Payloads with stray padding still decode.
func unseal(encoded string) ([]byte, error) {
	encoded = strings.TrimRight(encoded, "=")

	compressed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer func() { _ = r.Close() }()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w", err)
	}
	return raw, nil
}
