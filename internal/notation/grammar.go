package notation

import "regexp"

// Pattern fragments of the conversion syntax [<value><fromUnit>|<toUnit>].
const (
	numberPattern = `\d+(?:\.\d+)?`

	// ValuePattern matches a plain decimal, W-F or W-I-F mixed notation.
	ValuePattern = numberPattern + `(?:-` + numberPattern + `(?:-` + numberPattern + `)?(?:/` + numberPattern + `)?)?`

	// UnitPattern matches a unit id.
	UnitPattern = `[A-Za-z0-9\-/]+`

	tokenPattern  = `\[(` + ValuePattern + `)(` + UnitPattern + `)\|(` + UnitPattern + `)\]`
	prefixPattern = `\[(` + ValuePattern + `)(` + UnitPattern + `)\|([A-Za-z0-9\-/]*)$`
)

// Token is one complete conversion request found in a text.
// Offsets are byte offsets; End is exclusive.
type Token struct {
	// Text is the matched source, brackets included.
	Text string

	// RawValue is the value segment as written, e.g. "1-1/2".
	RawValue string

	FromUnit string
	ToUnit   string

	Start int
	End   int
}

// Len returns the length of the matched source in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Prefix is an open conversion being typed: "[2ft|in" with the caret at
// its end and no closing bracket yet.
type Prefix struct {
	RawValue string
	FromUnit string

	// Partial is the destination unit typed so far, possibly empty.
	Partial string

	// PartialStart is the byte offset of Partial within the scanned text;
	// Partial ends at the end of the text.
	PartialStart int
}

// Grammar recognizes the conversion syntax. A Grammar holds no mutable
// state and can be shared by any number of scanners.
type Grammar struct {
	token  *regexp.Regexp
	prefix *regexp.Regexp
}

// Default is the grammar shared by the rewriter, the overlay engine and the
// autosuggest controller.
var Default = NewGrammar()

// NewGrammar compiles the conversion syntax.
func NewGrammar() *Grammar {
	return &Grammar{
		token:  regexp.MustCompile(tokenPattern),
		prefix: regexp.MustCompile(prefixPattern),
	}
}

// Scan returns an iterator over the tokens of text.
func (g *Grammar) Scan(text string) *Iterator {
	return g.ScanAt(text, 0)
}

// ScanAt returns an iterator whose token offsets are shifted by base.
// It is used for slices of a larger document.
func (g *Grammar) ScanAt(text string, base int) *Iterator {
	return &Iterator{re: g.token, text: text, base: base}
}

// All returns every token of text in order.
func (g *Grammar) All(text string) []Token {
	return g.ScanAt(text, 0).Collect()
}

// Match reports whether text contains at least one complete conversion.
func (g *Grammar) Match(text string) bool {
	return g.token.MatchString(text)
}

// MatchPrefix matches an open conversion ending exactly at the end of text.
func (g *Grammar) MatchPrefix(text string) (Prefix, bool) {
	m := g.prefix.FindStringSubmatchIndex(text)
	if m == nil {
		return Prefix{}, false
	}
	return Prefix{
		RawValue:     text[m[2]:m[3]],
		FromUnit:     text[m[4]:m[5]],
		Partial:      text[m[6]:m[7]],
		PartialStart: m[6],
	}, true
}

// Iterator walks the tokens of a text from left to right.
// Each iterator carries its own cursor, so concurrent or interleaved scans
// never affect one another.
type Iterator struct {
	re   *regexp.Regexp
	text string
	base int
	pos  int
}

// Next returns the next token, or false when the text is exhausted.
func (it *Iterator) Next() (Token, bool) {
	if it.pos > len(it.text) {
		return Token{}, false
	}
	m := it.re.FindStringSubmatchIndex(it.text[it.pos:])
	if m == nil {
		it.pos = len(it.text) + 1
		return Token{}, false
	}

	off := it.pos
	tok := Token{
		Text:     it.text[off+m[0] : off+m[1]],
		RawValue: it.text[off+m[2] : off+m[3]],
		FromUnit: it.text[off+m[4] : off+m[5]],
		ToUnit:   it.text[off+m[6] : off+m[7]],
		Start:    it.base + off + m[0],
		End:      it.base + off + m[1],
	}
	it.pos = off + m[1]
	return tok, true
}

// Reset rewinds the iterator to the start of its text.
func (it *Iterator) Reset() {
	it.pos = 0
}

// Collect drains the iterator.
func (it *Iterator) Collect() []Token {
	var tokens []Token
	for {
		tok, ok := it.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
