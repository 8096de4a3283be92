package model

// Token is one token of a parsed sentence. Index and Head are 1-based;
// Head is 0 for the root.
type Token struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Lemma  string `json:"lemma,omitempty"`
	Tag    string `json:"tag"`
	Entity string `json:"entity,omitempty"`
	Head   int    `json:"head"`
	Dep    string `json:"dep,omitempty"`
}

// Entity is a named-entity mention.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Arc is a dependency relation from the governor token to the dependent
// token, both 1-based.
type Arc struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label"`
}

// Parse is the NLP analysis of a single sentence.
type Parse struct {
	Sentence string   `json:"sentence"`
	Backend  string   `json:"backend"`
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities,omitempty"`
	Arcs     []Arc    `json:"arcs,omitempty"`
}
