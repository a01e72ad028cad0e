package motif

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// openInput opens a prediction file for reading, detecting gzip compression
// from the magic bytes rather than the extension. "-" reads stdin.
func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return bufio.NewReader(os.Stdin), func() error { return nil }, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, &genome.MissingInputError{Path: path, Err: err}
	}

	buf := make([]byte, 2)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, nil, err
	}

	// Gzip magic number (0x1f, 0x8b)
	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		closer := func() error {
			gz.Close()
			return file.Close()
		}
		return bufio.NewReader(gz), closer, nil
	}

	return bufio.NewReader(file), file.Close, nil
}
