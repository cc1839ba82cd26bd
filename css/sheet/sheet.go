package sheet

import (
	"fmt"
	"io"
	"strings"

	dcss "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/value"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrorHandler is told about every declaration which has been dropped.
type ErrorHandler interface {
	DeclarationError(selector string, d *Declaration, err error)
}

// ErrorHandlerFunc adapts a function to an ErrorHandler.
type ErrorHandlerFunc func(selector string, d *Declaration, err error)

// DeclarationError calls f.
func (f ErrorHandlerFunc) DeclarationError(selector string, d *Declaration, err error) {
	f(selector, d, err)
}

// Declaration is a property declaration together with its value.
type Declaration struct {
	Property  string
	Text      string // value as written, without !important
	Value     value.Value
	Important bool
}

func (d *Declaration) String() string {
	s := d.Property + ": " + d.Text
	if d.Important {
		s += " !important"
	}
	return s
}

// Rule is a rule of a style sheet. Qualified rules have a selector and
// declarations, at-rules like @media have a name and may contain rules.
type Rule struct {
	Name         string // at-rule name, e.g. "@media"; empty for qualified rules
	Selector     string // the prelude / selectors of the rule
	Declarations []*Declaration
	Rules        []*Rule
}

// Properties returns the property keys of a rule, e.g. "margin-top".
func (r *Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

func (r *Rule) declaration(key string) *Declaration {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == key {
			return r.Declarations[i]
		}
	}
	return nil
}

// Value returns the value for property key, or nil. Later declarations
// win over earlier ones.
func (r *Rule) Value(key string) value.Value {
	if d := r.declaration(key); d != nil {
		return d.Value
	}
	return nil
}

// IsImportant returns true if a property is marked as important ("!").
func (r *Rule) IsImportant(key string) bool {
	if d := r.declaration(key); d != nil {
		return d.Important
	}
	return false
}

// StyleSheet is a list of rules.
type StyleSheet struct {
	rules []*Rule
}

// Empty checks if this stylesheet contains any rules.
func (s *StyleSheet) Empty() bool {
	return len(s.rules) == 0
}

// AppendRules appends rules from another stylesheet.
func (s *StyleSheet) AppendRules(other *StyleSheet) {
	if other != nil {
		s.rules = append(s.rules, other.rules...)
	}
}

// Rules returns all the rules of a stylesheet.
func (s *StyleSheet) Rules() []*Rule {
	return s.rules
}

// Declarations calls f for every declaration of the sheet, including
// those of nested rules.
func (s *StyleSheet) Declarations(f func(r *Rule, d *Declaration)) {
	var walk func([]*Rule)
	walk = func(rules []*Rule) {
		for _, r := range rules {
			for _, d := range r.Declarations {
				f(r, d)
			}
			walk(r.Rules)
		}
	}
	walk(s.rules)
}

// --- Loading ---------------------------------------------------------------

// Loader creates style sheets with values.
type Loader struct {
	factory *value.Factory
	handler ErrorHandler
}

// NewLoader creates a loader which creates values with f. handler may be nil.
func NewLoader(f *value.Factory, handler ErrorHandler) *Loader {
	if f == nil {
		f = value.NewFactory(nil)
	}
	return &Loader{factory: f, handler: handler}
}

// Parse reads a style sheet. Declarations whose value cannot be created
// are dropped and their errors returned combined, together with the sheet.
func (l *Loader) Parse(text string) (*StyleSheet, error) {
	ds, err := parser.Parse(text)
	if err != nil {
		return nil, csserr.Wrap(csserr.SyntaxErr, err, "cannot parse style sheet")
	}
	sheet := &StyleSheet{}
	var errs error
	for _, r := range ds.Rules {
		sheet.rules = append(sheet.rules, l.rule(r, &errs))
	}
	return sheet, errs
}

// ParseDeclarations reads a declaration block, e.g. the content of a style
// attribute, into a rule without selector.
func (l *Loader) ParseDeclarations(text string) (*Rule, error) {
	// douceur drops the value of an unterminated last declaration
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") && !strings.HasSuffix(text, "}") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, csserr.Wrap(csserr.SyntaxErr, err, "cannot parse declarations")
	}
	r := &Rule{}
	var errs error
	l.declarations(r, decls, &errs)
	return r, errs
}

func (l *Loader) rule(dr *dcss.Rule, errs *error) *Rule {
	r := &Rule{Name: dr.Name, Selector: dr.Prelude}
	l.declarations(r, dr.Declarations, errs)
	for _, sub := range dr.Rules {
		r.Rules = append(r.Rules, l.rule(sub, errs))
	}
	return r
}

func (l *Loader) declarations(r *Rule, decls []*dcss.Declaration, errs *error) {
	for _, dd := range decls {
		d := &Declaration{
			Property:  strings.ToLower(dd.Property),
			Text:      strings.TrimSpace(dd.Value),
			Important: dd.Important,
		}
		if err := l.createValue(d); err != nil {
			tracer().Infof("dropping declaration %s: %v", d, err)
			if l.handler != nil {
				l.handler.DeclarationError(r.Selector, d, err)
			}
			*errs = multierr.Append(*errs, fmt.Errorf("%s { %s }: %w", r.Selector, d, err))
			continue
		}
		r.Declarations = append(r.Declarations, d)
	}
}

func (l *Loader) createValue(d *Declaration) error {
	if strings.HasPrefix(d.Property, "--") {
		d.Value = &value.ProxyValue{Text: d.Text}
		return nil
	}
	v, err := l.factory.Parse(d.Text)
	if err != nil {
		return err
	}
	d.Value = v
	return nil
}

// --- HTML ------------------------------------------------------------------

// ParseHTML reads an HTML document and loads the style sheets of all its
// <style> elements into one sheet.
func (l *Loader) ParseHTML(r io.Reader) (*StyleSheet, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	sheet := &StyleSheet{}
	var errs error
	for _, text := range ExtractStyleElements(doc) {
		s, err := l.Parse(text)
		if s == nil {
			return nil, err
		}
		errs = multierr.Append(errs, err)
		sheet.AppendRules(s)
	}
	return sheet, errs
}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements.
func ExtractStyleElements(htmldoc *html.Node) []string {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	return append(extractStyles(head), extractStyles(body)...)
}

func extractStyles(h *html.Node) []string {
	if h == nil {
		return nil
	}
	var styles []string
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Style && ch.FirstChild != nil {
			styles = append(styles, ch.FirstChild.Data)
		}
	}
	return styles
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
