package romloader

import (
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

// extractFromRAR extracts the first ROM file from a RAR archive
func extractFromRAR(path string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", loadError(err, "failed to open rar")
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", loadError(err, "failed to read rar entry")
		}

		if header.IsDir || !isROMFile(header.Name) {
			continue
		}

		data, err := limitedRead(r)
		if err != nil {
			return nil, "", loadError(err, "failed to read %v", header.Name)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoROMFile
}
