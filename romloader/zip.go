package romloader

import (
	"archive/zip"
	"path/filepath"
)

// extractFromZIP extracts the first ROM file from a ZIP archive
func extractFromZIP(path string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", loadError(err, "failed to open zip")
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
