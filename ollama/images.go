package ollama

import (
	"encoding/base64"
	"fmt"
	"os"
	"slices"

	"github.com/randalmurphal/llmconnect/provider"
)

// EncodeImageFile reads the file at path and returns it base64-encoded.
// Read failures are returned as *provider.FileError carrying the path.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &provider.FileError{Path: path, Err: err}
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// prepareImages resolves exactly one image source into base64 payloads,
// preserving input order.
func prepareImages(paths, encoded []string) ([]string, error) {
	switch {
	case len(paths) > 0 && len(encoded) > 0:
		return nil, fmt.Errorf("%w: specify either image paths or base64 images, not both", provider.ErrConfiguration)
	case len(encoded) > 0:
		return slices.Clone(encoded), nil
	case len(paths) == 0:
		return nil, fmt.Errorf("%w: image paths or base64 images must be provided", provider.ErrConfiguration)
	}

	images := make([]string, 0, len(paths))
	for _, path := range paths {
		img, err := EncodeImageFile(path)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}
