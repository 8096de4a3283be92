package nlp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/corpusscope/internal/model"
)

// tuplePattern matches a ('word', 'TAG') pair as written by the offline
// tagger. Either element may be double-quoted when it contains a quote.
var tuplePattern = regexp.MustCompile(`\(\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\s*,\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\s*\)`)

// leafPattern matches a (TAG word) leaf of a bracketed parse tree.
var leafPattern = regexp.MustCompile(`\(([^\s()]+)\s+([^\s()]+)\)`)

var unescaper = strings.NewReplacer(`\'`, `'`, `\"`, `"`, `\\`, `\`)

// ParseTagged reads a stored tagged POS string. Both the list-of-tuples
// form "[('The', 'DT'), ...]" and bracketed trees "(S (NP (DT The)) ...)"
// are accepted. Blank input yields no words.
func ParseTagged(s string) ([]model.TaggedWord, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	if matches := tuplePattern.FindAllStringSubmatch(s, -1); len(matches) > 0 {
		out := make([]model.TaggedWord, 0, len(matches))
		for _, m := range matches {
			out = append(out, model.TaggedWord{
				Word: unescaper.Replace(m[1] + m[2]),
				Tag:  unescaper.Replace(m[3] + m[4]),
			})
		}
		return out, nil
	}

	if matches := leafPattern.FindAllStringSubmatch(s, -1); len(matches) > 0 {
		out := make([]model.TaggedWord, 0, len(matches))
		for _, m := range matches {
			out = append(out, model.TaggedWord{Word: m[2], Tag: m[1]})
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: unrecognized tagged string %q", model.ErrArtifactMalformed, s)
}
