package services

import (
	"encoding/base64"
	"fmt"
	"os"
)

// LoadImageAsBase64 reads the file at path and returns it base64-encoded for
// use in a data: URL.
func LoadImageAsBase64(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error loading image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
