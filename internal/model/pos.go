package model

// pennTags is the Penn Treebank tag list offered by the words-by-POS section.
var pennTags = []string{
	"NN", "FW", "CD", "NNPS", "LS", "NNP", "JJ", "JJS", "VBZ", "RB", "VBD", "MD",
	"IN", "PRP$", "JJR", "UH", "PDT", "WP$", "WRB", "RBR", "DT", "POS", "RP",
	"EX", "NNS", "VBG", "WP", "TO", "VB", "RBS", "PRP", "WDT", "CC", "VBN",
	"VBP", "SYM",
}

// PennTags returns the selectable POS tags, "NN" first.
func PennTags() []string {
	out := make([]string, len(pennTags))
	copy(out, pennTags)
	return out
}

// IsPennTag reports whether tag is a selectable POS tag.
func IsPennTag(tag string) bool {
	for _, t := range pennTags {
		if t == tag {
			return true
		}
	}
	return false
}
