package motif

// Parser is the common streaming interface of the prediction-file parsers.
// Next returns nil at end of input.
type Parser interface {
	Next() (*Motif, error)
	Stats() LoadStats
	Close() error
}

// LoadAll drains a parser and returns the retained motifs with the final
// load statistics.
func LoadAll(p Parser) ([]Motif, LoadStats, error) {
	var motifs []Motif
	for {
		m, err := p.Next()
		if err != nil {
			return nil, p.Stats(), err
		}
		if m == nil {
			break
		}
		motifs = append(motifs, *m)
	}
	return motifs, p.Stats(), nil
}
