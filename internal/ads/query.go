package ads

import "strings"

// DefaultChunkSize is the maximum number of identifiers per OR-group.
// The search endpoint has been observed to drop terms somewhere around 50;
// 20 leaves comfortable headroom.
const DefaultChunkSize = 20

// Chunk splits ids into groups of at most nmax, rendering each group as
// prefix+id joined by joiner. Order is preserved within and across chunks.
//
//	Chunk([]string{"a","b","c"}, "bibcode:", " OR ", 2)
//	  -> []string{"bibcode:a OR bibcode:b", "bibcode:c"}
func Chunk(ids []string, prefix, joiner string, nmax int) []string {
	if nmax <= 0 {
		nmax = DefaultChunkSize
	}

	var chunks []string
	for pos := 0; pos < len(ids); pos += nmax {
		end := pos + nmax
		if end > len(ids) {
			end = len(ids)
		}
		terms := make([]string, 0, end-pos)
		for _, id := range ids[pos:end] {
			terms = append(terms, prefix+id)
		}
		chunks = append(chunks, strings.Join(terms, joiner))
	}
	return chunks
}
