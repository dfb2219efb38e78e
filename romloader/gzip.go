package romloader

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractFromGzip extracts a ROM from a gzip file. A gzipped tar archive
// yields its first ROM file; any other content is the ROM itself.
func extractFromGzip(path string) ([]byte, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", loadError(err, "failed to open file")
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, "", loadError(err, "failed to open gzip")
	}
	defer gz.Close()

	br := bufio.NewReader(gz)
	if isTar(br) {
		return extractFromTar(br)
	}

	data, err := limitedRead(br)
	if err != nil {
		return nil, "", loadError(err, "failed to read gzip")
	}

	name := gz.Name
	if len(name) == 0 {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return data, filepath.Base(name), nil
}

// isTar checks for the ustar magic in the first tar header block.
func isTar(br *bufio.Reader) bool {
	block, err := br.Peek(512)
	if err != nil {
		return false
	}
	return strings.HasPrefix(string(block[257:]), "ustar")
}

// extractFromTar extracts the first ROM file from a tar stream
func extractFromTar(r io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", loadError(err, "failed to read tar entry")
		}

		if header.Typeflag != tar.TypeReg || !isROMFile(header.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return nil, "", loadError(err, "failed to read %v", header.Name)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoROMFile
}
