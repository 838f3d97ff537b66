package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/open-cli-collective/highlight-cli/pkg/highlight"
	"github.com/open-cli-collective/highlight-cli/pkg/md"
)

// Document is a split input ready to render.
type Document struct {
	Fragments []highlight.Fragment `json:"fragments"`
	Pattern   string               `json:"pattern"`
	// Markup is set when the fragments came from the HTML-aware splitter.
	Markup bool `json:"markup"`
}

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// RenderDocument writes the document in the renderer's format.
func (r *Renderer) RenderDocument(doc Document) error {
	switch r.format {
	case FormatJSON:
		return r.RenderJSON(doc)
	case FormatHTML:
		r.writeLine(r.documentHTML(doc, "<mark>", "</mark>"))
		return nil
	case FormatMarkdown:
		markdown, err := md.FromHTML(r.documentHTML(doc, "<strong>", "</strong>"))
		if err != nil {
			return fmt.Errorf("failed to convert to markdown: %w", err)
		}
		r.writeLine(markdown)
		return nil
	case FormatPlain:
		r.writeLine(r.documentMarked(doc, r.wrapMarkers))
		return nil
	default:
		if !r.colorEnabled() {
			r.writeLine(r.documentMarked(doc, r.wrapMarkers))
			return nil
		}
		r.writeLine(r.documentMarked(doc, r.highlight.Sprint))
		return nil
	}
}

func (r *Renderer) wrapMarkers(a ...interface{}) string {
	return r.markerOpen + fmt.Sprint(a...) + r.markerClose
}

// documentMarked joins the fragments, passing highlights through mark.
func (r *Renderer) documentMarked(doc Document, mark func(a ...interface{}) string) string {
	var sb strings.Builder
	for _, f := range doc.Fragments {
		if f.Type == highlight.FragmentHighlightedText {
			sb.WriteString(mark(f.Content))
			continue
		}
		sb.WriteString(f.Content)
	}
	return sb.String()
}

// documentHTML wraps highlights in open/close. Markup fragments pass through.
// In markup mode text is already HTML, so only angle brackets are escaped;
// this keeps demoted tags from rendering as live markup.
func (r *Renderer) documentHTML(doc Document, open, close string) string {
	escape := highlight.EncodeHTML
	if doc.Markup {
		escape = angleEscaper.Replace
	}

	var sb strings.Builder
	for _, f := range doc.Fragments {
		switch f.Type {
		case highlight.FragmentMarkup:
			sb.WriteString(f.Content)
		case highlight.FragmentHighlightedText:
			sb.WriteString(open + escape(f.Content) + close)
		default:
			sb.WriteString(escape(f.Content))
		}
	}
	return sb.String()
}

// RenderFragmentTable lists fragments one per row.
func (r *Renderer) RenderFragmentTable(doc Document) error {
	if r.format == FormatJSON {
		return r.RenderJSON(doc)
	}

	headers := []string{"INDEX", "TYPE", "CONTENT"}
	rows := make([][]string, 0, len(doc.Fragments))
	for i, f := range doc.Fragments {
		content := strconv.Quote(f.Content)
		if r.format != FormatPlain {
			content = Truncate(content, 60)
		}
		rows = append(rows, []string{strconv.Itoa(i), f.Type.String(), content})
	}
	r.RenderTable(headers, rows)
	return nil
}

func (r *Renderer) writeLine(s string) {
	if strings.HasSuffix(s, "\n") {
		fmt.Fprint(r.writer, s)
		return
	}
	fmt.Fprintln(r.writer, s)
}
