package output

import (
	"bufio"
	"io"
)

// WriteGeneList writes a line-delimited gene ID list. Callers pass sorted
// IDs, so identical classified input always serializes byte-identically.
func WriteGeneList(w io.Writer, genes []string) error {
	bw := bufio.NewWriter(w)
	for _, id := range genes {
		if _, err := bw.WriteString(id + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
