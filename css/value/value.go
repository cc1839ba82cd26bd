package value

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// CSSType discriminates the variants of Value.
type CSSType uint8

// Variants of values.
const (
	Typed CSSType = iota
	Proxy
	List
	Keyword
)

func (t CSSType) String() string {
	switch t {
	case Typed:
		return "TYPED"
	case Proxy:
		return "PROXY"
	case List:
		return "LIST"
	case Keyword:
		return "KEYWORD"
	}
	return "?"
}

// Primitive discriminates typed values.
type Primitive uint8

// Primitive kinds of typed values. Non-typed values report Unknown.
const (
	Unknown Primitive = iota
	Numeric
	Color
	Expression
	Function
	String
	Ident
	UnicodeRange
	URI
	Attr
)

var primitiveNames = [...]string{"UNKNOWN", "NUMERIC", "COLOR", "EXPRESSION", "FUNCTION", "STRING",
	"IDENT", "UNICODE_RANGE", "URI", "ATTR"}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "?"
}

// Value is a CSS value.
type Value interface {
	CSSType() CSSType
	Primitive() Primitive
	CSSText() string
	// MinifiedCSSText returns the shortest text for the value. propertyName is
	// a hint for the context of the value and may be empty.
	MinifiedCSSText(propertyName string) string
	Clone() Value
	Equals(other Value) bool
}

// Hash returns a hash value for v, consistent with Equals:
// equal values have equal hashes.
func Hash(v Value) uint64 {
	if v == nil {
		return 0
	}
	if c, ok := v.(Canonical); ok {
		return xxhash.Sum64String(c.CanonicalText())
	}
	return xxhash.Sum64String(v.CSSText())
}

// Canonical is implemented by values which remember the syntax they were
// written in. CanonicalText is the same for all equal values.
type Canonical interface {
	CanonicalText() string
}

// Equal compares two values, either of which may be nil.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// Pending is implemented by values whose concrete value depends on a
// substitution which has not taken place.
type Pending interface {
	IsPending() bool
}

// IsPending is true if v is a proxy, an attr() or contains one of them.
func IsPending(v Value) bool {
	if v == nil {
		return false
	}
	if v.CSSType() == Proxy {
		return true
	}
	if p, ok := v.(Pending); ok {
		return p.IsPending()
	}
	return false
}

// --- Keywords --------------------------------------------------------------

// KeywordValue is a CSS-wide keyword.
type KeywordValue struct {
	Name string // lower case
}

var cssWideKeywords = map[string]bool{
	"inherit": true, "initial": true, "unset": true, "revert": true, "revert-layer": true,
}

// IsCSSWideKeyword is true for inherit, initial, unset, revert and revert-layer.
func IsCSSWideKeyword(name string) bool {
	return cssWideKeywords[strings.ToLower(name)]
}

// NewKeyword creates a keyword value. It returns nil if name is not a CSS-wide keyword.
func NewKeyword(name string) *KeywordValue {
	name = strings.ToLower(name)
	if !cssWideKeywords[name] {
		return nil
	}
	return &KeywordValue{Name: name}
}

func (k *KeywordValue) CSSType() CSSType              { return Keyword }
func (k *KeywordValue) Primitive() Primitive          { return Unknown }
func (k *KeywordValue) CSSText() string               { return k.Name }
func (k *KeywordValue) MinifiedCSSText(string) string { return k.Name }
func (k *KeywordValue) Clone() Value                  { return &KeywordValue{Name: k.Name} }
func (k *KeywordValue) Equals(other Value) bool {
	o, ok := other.(*KeywordValue)
	return ok && o.Name == k.Name
}

// --- Identifiers -----------------------------------------------------------

// IdentValue is an identifier.
type IdentValue struct {
	Name string
}

func (id *IdentValue) CSSType() CSSType              { return Typed }
func (id *IdentValue) Primitive() Primitive          { return Ident }
func (id *IdentValue) CSSText() string               { return id.Name }
func (id *IdentValue) MinifiedCSSText(string) string { return id.Name }
func (id *IdentValue) Clone() Value                  { return &IdentValue{Name: id.Name} }
func (id *IdentValue) Equals(other Value) bool {
	o, ok := other.(*IdentValue)
	return ok && o.Name == id.Name
}

// --- Strings ---------------------------------------------------------------

// StringValue is a quoted string.
type StringValue struct {
	S string
}

func (s *StringValue) CSSType() CSSType     { return Typed }
func (s *StringValue) Primitive() Primitive { return String }

// CSSText returns the string in double quotes.
func (s *StringValue) CSSText() string {
	return quote(s.S, '"')
}

// MinifiedCSSText chooses the quote character needing fewer escapes.
func (s *StringValue) MinifiedCSSText(string) string {
	if strings.Count(s.S, "\"") > strings.Count(s.S, "'") {
		return quote(s.S, '\'')
	}
	return quote(s.S, '"')
}

func (s *StringValue) Clone() Value { return &StringValue{S: s.S} }

func (s *StringValue) Equals(other Value) bool {
	o, ok := other.(*StringValue)
	return ok && o.S == s.S
}

func quote(s string, q byte) string {
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		if s[i] == q || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(q)
	return b.String()
}

// --- URIs ------------------------------------------------------------------

// URIValue is a url().
type URIValue struct {
	URL string
}

func (u *URIValue) CSSType() CSSType     { return Typed }
func (u *URIValue) Primitive() Primitive { return URI }
func (u *URIValue) CSSText() string      { return "url(" + quote(u.URL, '"') + ")" }

// MinifiedCSSText drops the quotes if the URL does not need them.
func (u *URIValue) MinifiedCSSText(string) string {
	if strings.ContainsAny(u.URL, " \t\n\"'()\\") {
		return u.CSSText()
	}
	return "url(" + u.URL + ")"
}

func (u *URIValue) Clone() Value { return &URIValue{URL: u.URL} }

func (u *URIValue) Equals(other Value) bool {
	o, ok := other.(*URIValue)
	return ok && o.URL == u.URL
}

// --- Unicode ranges --------------------------------------------------------

// UnicodeRangeValue is a unicode range like U+0025-00FF or U+4??.
type UnicodeRangeValue struct {
	Range string // without the leading "U+", upper case
}

func (r *UnicodeRangeValue) CSSType() CSSType              { return Typed }
func (r *UnicodeRangeValue) Primitive() Primitive          { return UnicodeRange }
func (r *UnicodeRangeValue) CSSText() string               { return "U+" + r.Range }
func (r *UnicodeRangeValue) MinifiedCSSText(string) string { return "U+" + r.Range }
func (r *UnicodeRangeValue) Clone() Value                  { return &UnicodeRangeValue{Range: r.Range} }
func (r *UnicodeRangeValue) Equals(other Value) bool {
	o, ok := other.(*UnicodeRangeValue)
	return ok && o.Range == r.Range
}

// --- Lists -----------------------------------------------------------------

// Separator separates the items of a list.
type Separator uint8

// List separators.
const (
	SpaceSeparated Separator = iota
	CommaSeparated
	SlashSeparated
)

// ListValue is a list of values.
type ListValue struct {
	Items []Value
	Sep   Separator
}

func (l *ListValue) CSSType() CSSType     { return List }
func (l *ListValue) Primitive() Primitive { return Unknown }

func (l *ListValue) CSSText() string {
	sep := [...]string{" ", ", ", " / "}[l.Sep]
	var b strings.Builder
	for i, item := range l.Items {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(item.CSSText())
	}
	return b.String()
}

func (l *ListValue) MinifiedCSSText(prop string) string {
	sep := [...]string{" ", ",", "/"}[l.Sep]
	var b strings.Builder
	for i, item := range l.Items {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(item.MinifiedCSSText(prop))
	}
	return b.String()
}

func (l *ListValue) Clone() Value {
	items := make([]Value, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.Clone()
	}
	return &ListValue{Items: items, Sep: l.Sep}
}

func (l *ListValue) Equals(other Value) bool {
	o, ok := other.(*ListValue)
	if !ok || o.Sep != l.Sep || len(o.Items) != len(l.Items) {
		return false
	}
	for i := range l.Items {
		if !Equal(l.Items[i], o.Items[i]) {
			return false
		}
	}
	return true
}

// IsPending is true if any item is pending.
func (l *ListValue) IsPending() bool {
	for _, item := range l.Items {
		if IsPending(item) {
			return true
		}
	}
	return false
}

// --- Proxies ---------------------------------------------------------------

// ProxyValue is a value containing an unresolved var(). The lexical text is
// preserved verbatim.
type ProxyValue struct {
	Text string
}

func (p *ProxyValue) CSSType() CSSType              { return Proxy }
func (p *ProxyValue) Primitive() Primitive          { return Unknown }
func (p *ProxyValue) CSSText() string               { return p.Text }
func (p *ProxyValue) MinifiedCSSText(string) string { return p.Text }
func (p *ProxyValue) Clone() Value                  { return &ProxyValue{Text: p.Text} }
func (p *ProxyValue) IsPending() bool               { return true }
func (p *ProxyValue) Equals(other Value) bool {
	o, ok := other.(*ProxyValue)
	return ok && o.Text == p.Text
}
