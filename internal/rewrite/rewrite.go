// Package rewrite replaces conversion requests in finished text.
//
// Unlike the live overlay, the rewriter has no notion of an active line: the
// target is not editable, so every request is replaced. Requests that cannot
// be converted are left as written.
package rewrite

import (
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/unitlens/internal/conversion"
	"github.com/dshills/unitlens/internal/notation"
)

// Stats counts the requests seen by a rewrite.
type Stats struct {
	Converted int
	Failed    int
}

// Total returns the number of requests found.
func (s Stats) Total() int {
	return s.Converted + s.Failed
}

func (s *Stats) add(o Stats) {
	s.Converted += o.Converted
	s.Failed += o.Failed
}

// Rewriter replaces conversion requests with their rendered conversions.
type Rewriter struct {
	grammar   *notation.Grammar
	formatter *conversion.Formatter
	logger    *zap.Logger
	skip      map[string]bool
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Rewriter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGrammar overrides the grammar. Defaults to notation.Default.
func WithGrammar(g *notation.Grammar) Option {
	return func(r *Rewriter) {
		if g != nil {
			r.grammar = g
		}
	}
}

// WithSkipElements adds HTML elements whose text is left untouched by
// RewriteHTML, in addition to code, pre, script and style.
func WithSkipElements(tags ...string) Option {
	return func(r *Rewriter) {
		for _, tag := range tags {
			r.skip[strings.ToLower(tag)] = true
		}
	}
}

// New creates a rewriter.
func New(formatter *conversion.Formatter, opts ...Option) *Rewriter {
	r := &Rewriter{
		grammar:   notation.Default,
		formatter: formatter,
		logger:    zap.NewNop(),
		skip:      map[string]bool{"code": true, "pre": true, "script": true, "style": true},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite returns text with every conversion request replaced.
func (r *Rewriter) Rewrite(text string, opts conversion.DisplayOptions) string {
	out, _ := r.RewriteWithStats(text, opts)
	return out
}

// RewriteWithStats rewrites text and reports how many requests were found.
// Offsets always refer to the original text; replaced output is never
// scanned again. Text without requests is returned as is.
func (r *Rewriter) RewriteWithStats(text string, opts conversion.DisplayOptions) (string, Stats) {
	var stats Stats
	it := r.grammar.Scan(text)

	tok, ok := it.Next()
	if !ok {
		return text, stats
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for ; ok; tok, ok = it.Next() {
		sb.WriteString(text[last:tok.Start])

		rendered, err := r.formatter.TryFormatToken(tok, opts)
		if err != nil {
			stats.Failed++
			r.logger.Debug("leaving request unconverted",
				zap.String("token", tok.Text),
				zap.Int("offset", tok.Start),
				zap.Error(err))
			rendered = tok.Text
		} else {
			stats.Converted++
		}
		sb.WriteString(rendered)
		last = tok.End
	}
	sb.WriteString(text[last:])
	return sb.String(), stats
}
