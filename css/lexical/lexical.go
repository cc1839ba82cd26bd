package lexical

import (
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind is the type of a lexical unit.
type Kind uint8

// Kinds of lexical units.
const (
	Number Kind = iota
	Percentage
	Dimension
	Ident
	String
	Hash
	URL
	UnicodeRange
	Function // name(params…)
	Block    // (params…)
	Operator // + - * /
	Comma
)

var kindNames = [...]string{"Number", "Percentage", "Dimension", "Ident", "String", "Hash", "URL",
	"UnicodeRange", "Function", "Block", "Operator", "Comma"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Unit is a lexical unit.
type Unit struct {
	Kind        Kind
	Raw         string  // lexeme as written; for functions the name including '('
	Name        string  // function name (lower case), ident, string content, hash digits, unit suffix
	Value       float64 // magnitude for Number, Percentage and Dimension
	Op          byte    // operator for kind Operator
	Params      []*Unit // parameters of functions and blocks
	SpaceBefore bool    // whitespace precedes this unit
}

// IsOperator is true if u is the operator op.
func (u *Unit) IsOperator(op byte) bool {
	return u != nil && u.Kind == Operator && u.Op == op
}

// IsFunction is true if u is a function named name (case-insensitive).
func (u *Unit) IsFunction(name string) bool {
	return u != nil && u.Kind == Function && u.Name == strings.ToLower(name)
}

// IsNumeric is true for numbers, percentages and dimensions.
func (u *Unit) IsNumeric() bool {
	return u != nil && (u.Kind == Number || u.Kind == Percentage || u.Kind == Dimension)
}

// String returns the unit as CSS text, parameters included.
func (u *Unit) String() string {
	var b strings.Builder
	u.write(&b)
	return b.String()
}

func (u *Unit) write(b *strings.Builder) {
	b.WriteString(u.Raw)
	if u.Kind == Function || u.Kind == Block {
		writeSequence(b, u.Params)
		b.WriteByte(')')
	}
}

// Text returns the CSS text of a sequence of units, separated as written.
func Text(seq []*Unit) string {
	var b strings.Builder
	writeSequence(&b, seq)
	return b.String()
}

func writeSequence(b *strings.Builder, seq []*Unit) {
	for i, u := range seq {
		if i > 0 && u.SpaceBefore {
			b.WriteByte(' ')
		}
		u.write(b)
	}
}

// Parse tokenizes the text of a property value into a sequence of lexical
// units. Malformed input results in a SYNTAX_ERR.
func Parse(text string) ([]*Unit, error) {
	lexer := css.NewLexer(parse.NewInputString(text))
	root := &Unit{Kind: Block}
	stack := []*Unit{root}
	space := false
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != io.EOF {
				return nil, csserr.Wrap(csserr.SyntaxErr, err, "cannot tokenize %q", text)
			}
			break
		}
		top := stack[len(stack)-1]
		lexeme := string(data)
		var u *Unit
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			space = true
			continue
		case css.NumberToken:
			u = &Unit{Kind: Number, Raw: lexeme}
			if err := u.parseNumber(data); err != nil {
				return nil, err
			}
		case css.PercentageToken:
			u = &Unit{Kind: Percentage, Raw: lexeme, Name: "%"}
			if err := u.parseNumber(data); err != nil {
				return nil, err
			}
		case css.DimensionToken:
			u = &Unit{Kind: Dimension, Raw: lexeme}
			if err := u.parseNumber(data); err != nil {
				return nil, err
			}
		case css.IdentToken, css.CustomPropertyNameToken:
			u = &Unit{Kind: Ident, Raw: lexeme, Name: lexeme}
		case css.StringToken:
			u = &Unit{Kind: String, Raw: lexeme, Name: unquote(lexeme)}
		case css.HashToken:
			u = &Unit{Kind: Hash, Raw: lexeme, Name: lexeme[1:]}
		case css.URLToken:
			u = &Unit{Kind: URL, Raw: lexeme, Name: urlContent(lexeme)}
		case css.UnicodeRangeToken:
			u = &Unit{Kind: UnicodeRange, Raw: lexeme, Name: lexeme[2:]}
		case css.FunctionToken:
			name := strings.ToLower(lexeme[:len(lexeme)-1])
			u = &Unit{Kind: Function, Raw: lexeme, Name: name}
		case css.LeftParenthesisToken:
			u = &Unit{Kind: Block, Raw: "("}
		case css.RightParenthesisToken:
			if len(stack) == 1 {
				return nil, csserr.Syntax("unbalanced ')' in %q", text)
			}
			stack = stack[:len(stack)-1]
			space = false
			continue
		case css.CommaToken:
			u = &Unit{Kind: Comma, Raw: ","}
		case css.DelimToken:
			switch c := data[0]; c {
			case '+', '-', '*', '/':
				u = &Unit{Kind: Operator, Raw: lexeme, Op: c}
			default:
				return nil, csserr.Syntax("unexpected %q in %q", lexeme, text)
			}
		default:
			return nil, csserr.Syntax("unexpected token %s %q in %q", tt, lexeme, text)
		}
		u.SpaceBefore = space
		space = false
		top.Params = append(top.Params, u)
		if u.Kind == Function || u.Kind == Block {
			stack = append(stack, u)
		}
	}
	if len(stack) > 1 {
		return nil, csserr.Syntax("unclosed %q in %q", stack[len(stack)-1].Raw, text)
	}
	tracer().Debugf("lexical: %q -> %d units", text, len(root.Params))
	return root.Params, nil
}

func (u *Unit) parseNumber(b []byte) error {
	num, dim := parse.Dimension(b)
	if num == 0 {
		return csserr.Syntax("malformed number %q", string(b))
	}
	x, err := strconv.ParseFloat(string(b[:num]), 64)
	if err != nil {
		return csserr.Wrap(csserr.SyntaxErr, err, "malformed number %q", string(b))
	}
	u.Value = x
	if u.Kind == Dimension {
		if dim == 0 || num+dim != len(b) {
			return csserr.Syntax("malformed dimension %q", string(b))
		}
		u.Name = string(b[num:])
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	esc := false
	for _, r := range s {
		if esc {
			b.WriteRune(r)
			esc = false
			continue
		}
		if r == '\\' {
			esc = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func urlContent(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[i+1 : len(s)-1])
		if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
			s = unquote(s)
		}
	}
	return s
}
