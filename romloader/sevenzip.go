package romloader

import (
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// extractFrom7z extracts the first ROM file from a 7z archive
func extractFrom7z(path string) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, "", loadError(err, "failed to open 7z")
	}
	defer r.Close()

	for _, file := range r.File {
		if file.FileInfo().IsDir() || !isROMFile(file.Name) {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, "", loadError(err, "failed to open %v", file.Name)
		}
		data, err := limitedRead(rc)
		rc.Close()
		if err != nil {
			return nil, "", loadError(err, "failed to read %v", file.Name)
		}
		return data, filepath.Base(file.Name), nil
	}

	return nil, "", ErrNoROMFile
}
