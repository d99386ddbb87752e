// Package filex reads local files for upload.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// MaxImageSize bounds avatar uploads.
const MaxImageSize = 5 << 20

var (
	ErrTooLarge = errors.New("file too large")
	ErrNotImage = errors.New("file is not an image")
)

// ReadImage reads path and sniffs its content type, which must be image/*.
func ReadImage(path string, maxSize int64) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > maxSize {
		return nil, "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, fi.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, ct)
	}
	return data, ct, nil
}
