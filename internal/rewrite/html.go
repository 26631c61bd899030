package rewrite

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/unitlens/internal/conversion"
)

// RewriteHTML rewrites the text nodes of an HTML fragment, such as the
// output of a markdown renderer, and writes the resulting fragment to w.
// Tags, attributes and comments are never touched.
func (r *Rewriter) RewriteHTML(rd io.Reader, w io.Writer, opts conversion.DisplayOptions) (Stats, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(rd, context)
	if err != nil {
		return Stats{}, fmt.Errorf("parsing html fragment: %w", err)
	}

	var stats Stats
	for _, n := range nodes {
		stats.add(r.rewriteNode(n, opts))
	}
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return stats, fmt.Errorf("rendering html: %w", err)
		}
	}

	r.logger.Debug("rewrote html fragment",
		zap.Int("converted", stats.Converted),
		zap.Int("failed", stats.Failed))
	return stats, nil
}

// RewriteHTMLDocument rewrites the text nodes of a complete HTML document.
func (r *Rewriter) RewriteHTMLDocument(rd io.Reader, w io.Writer, opts conversion.DisplayOptions) (Stats, error) {
	doc, err := html.Parse(rd)
	if err != nil {
		return Stats{}, fmt.Errorf("parsing html document: %w", err)
	}

	stats := r.rewriteNode(doc, opts)
	if err := html.Render(w, doc); err != nil {
		return stats, fmt.Errorf("rendering html: %w", err)
	}
	return stats, nil
}

// rewriteNode walks n depth first and rewrites every text node in place.
func (r *Rewriter) rewriteNode(n *html.Node, opts conversion.DisplayOptions) Stats {
	var stats Stats
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return stats
		}
		out, s := r.RewriteWithStats(n.Data, opts)
		n.Data = out
		return s
	case html.ElementNode:
		if r.skip[strings.ToLower(n.Data)] {
			return stats
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stats.add(r.rewriteNode(c, opts))
	}
	return stats
}
