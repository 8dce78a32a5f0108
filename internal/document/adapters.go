package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// Adapter turns raw source bytes into plain text
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given file name or
	// URL and content type
	CanHandle(name string, contentType string) bool

	// Extract returns the document text and, when known, its title
	Extract(data []byte) (text string, title string, err error)
}

// Registry manages source adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the HTML and PDF adapters and the
// plain text adapter as fallback
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewPDFAdapter())
	registry.Register(NewHTMLAdapter())

	registry.generic = NewTextAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the best adapter for the given name and content type
func (r *Registry) FindAdapter(name string, contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(name, contentType) {
			return adapter
		}
	}
	return r.generic
}

func extension(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(filepath.Ext(name))
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// TextAdapter passes text through, replacing invalid UTF-8
type TextAdapter struct{}

// NewTextAdapter creates the plain text adapter
func NewTextAdapter() *TextAdapter { return &TextAdapter{} }

// Name returns the adapter name
func (a *TextAdapter) Name() string { return "text" }

// CanHandle always returns true (fallback adapter)
func (a *TextAdapter) CanHandle(string, string) bool { return true }

// Extract returns the bytes as text
func (a *TextAdapter) Extract(data []byte) (string, string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return "", "", fmt.Errorf("binary content is not plain text")
	}
	return strings.ToValidUTF8(string(data), "�"), "", nil
}

// HTMLAdapter extracts visible text from HTML pages
type HTMLAdapter struct{}

// NewHTMLAdapter creates the HTML adapter
func NewHTMLAdapter() *HTMLAdapter { return &HTMLAdapter{} }

// Name returns the adapter name
func (a *HTMLAdapter) Name() string { return "html" }

// CanHandle matches HTML content types and extensions
func (a *HTMLAdapter) CanHandle(name string, contentType string) bool {
	switch mediaType(contentType) {
	case "text/html", "application/xhtml+xml":
		return true
	}
	switch extension(name) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// Extract returns the text of the main content area with block elements
// on their own lines, so section headers stay on separate lines
func (a *HTMLAdapter) Extract(data []byte) (string, string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("parse HTML: %w", err)
	}

	title := ""
	if node := findFirst(doc, isElement("title")); node != nil {
		title = strings.Join(strings.Fields(visibleText(node)), " ")
	}

	main := findFirst(doc, isElement("main"))
	if main == nil {
		main = findFirst(doc, func(n *html.Node) bool {
			return isElement("article")(n) || attr(n, "role") == "main"
		})
	}
	if main == nil {
		if body := findFirst(doc, isElement("body")); body != nil {
			main = body
		} else {
			main = doc
		}
	}

	return visibleText(main), title, nil
}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"br": true, "tr": true, "table": true, "ul": true, "ol": true,
	"header": true, "footer": true, "blockquote": true, "pre": true, "dt": true, "dd": true,
}

// visibleText concatenates text nodes, skipping non-rendered elements
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template", "head":
				return
			}
			if blockElements[n.Data] {
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteString("\n")
		}
	}

	walk(n)
	return buf.String()
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	if predicate(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, predicate); found != nil {
			return found
		}
	}
	return nil
}

// PDFAdapter extracts the plain text of every page
type PDFAdapter struct{}

// NewPDFAdapter creates the PDF adapter
func NewPDFAdapter() *PDFAdapter { return &PDFAdapter{} }

// Name returns the adapter name
func (a *PDFAdapter) Name() string { return "pdf" }

// CanHandle matches the PDF content type and extension
func (a *PDFAdapter) CanHandle(name string, contentType string) bool {
	return mediaType(contentType) == "application/pdf" || extension(name) == ".pdf"
}

// Extract reads pages in order. Pages that fail to decode are skipped;
// a document with no readable page is an error.
func (a *PDFAdapter) Extract(data []byte) (text string, title string, err error) {
	defer func() {
		// The PDF decoder panics on some malformed streams
		if r := recover(); r != nil {
			text, title, err = "", "", fmt.Errorf("decode PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", "", fmt.Errorf("open PDF: %w", err)
	}

	var buf strings.Builder
	read := 0
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		read++
		buf.WriteString(content)
		buf.WriteString("\n")
	}

	if read == 0 {
		return "", "", fmt.Errorf("no readable pages in PDF")
	}

	out := buf.String()
	if !utf8.ValidString(out) {
		out = strings.ToValidUTF8(out, "�")
	}
	return out, "", nil
}
