package server

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/page"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").ParseFS(templateFS, "templates/page.html"))

// formParams lists the sidebar fields of each page.
var formParams = map[string][]string{
	page.NameOverview: {model.ParamDomain, model.ParamCategory, model.ParamFeature},
	page.NameWord: {
		model.ParamDomain, model.ParamWord, model.ParamTopN, model.ParamCumulativeN,
		model.ParamPOS, model.ParamPOSCount,
	},
	page.NameCollocation: {
		model.ParamTerm, model.ParamPhraseLength, model.ParamCollocationTop,
		model.ParamFieldA, model.ParamFieldB,
	},
	page.NameSentence: {
		model.ParamSentenceField, model.ParamBook, model.ParamSentenceSearch, model.ParamSentenceIndex,
	},
}

type field struct {
	Name  string
	Value string
}

type block struct {
	model.Block
	// ChartURL is set for chart blocks.
	ChartURL string
}

type view struct {
	Pages   []page.Info
	Current *model.Page
	Fields  []field
	Blocks  []block
}

// renderHTML writes the dashboard page. query is the raw query string the
// chart image URLs repeat.
func renderHTML(w io.Writer, p *model.Page, query string) error {
	v := view{Pages: page.Pages(), Current: p}

	values := p.Selection.Values()
	for _, name := range formParams[p.Name] {
		sep := ","
		if name == model.ParamBook {
			sep = "; "
		}
		v.Fields = append(v.Fields, field{Name: name, Value: strings.Join(values[name], sep)})
	}

	suffix := ""
	if query != "" {
		suffix = "?" + query
	}
	index := 0
	for _, b := range p.Blocks {
		vb := block{Block: b}
		if b.Kind == model.BlockChart {
			vb.ChartURL = "/pages/" + p.Name + "/charts/" + strconv.Itoa(index) + suffix
			index++
		}
		v.Blocks = append(v.Blocks, vb)
	}

	return pageTemplate.Execute(w, v)
}
