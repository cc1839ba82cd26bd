package value

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// DumpExpression returns a tree view of an expression for debugging.
// Inverse children are marked with a leading '-' in sums and '/' in products.
func DumpExpression(e Expr) string {
	p := tp.New()
	dump(p, e, "")
	return p.String()
}

func dump(p tp.Tree, e Expr, mark string) {
	switch n := e.(type) {
	case *Operand:
		if n.Value == nil {
			p.AddNode(mark + "<nil>")
			return
		}
		p.AddNode(fmt.Sprintf("%s%s (%s)", mark, n.Value.CSSText(), n.Value.Primitive()))
	case *Sum:
		branch := p.AddBranch(mark + "Sum")
		for _, t := range n.Terms {
			dump(branch, t, pick(t.IsInverse(), "-", "+"))
		}
	case *Product:
		branch := p.AddBranch(mark + "Product")
		for _, f := range n.Factors {
			dump(branch, f, pick(f.IsInverse(), "/", "*"))
		}
	default:
		p.AddNode(fmt.Sprintf("%s%v", mark, e))
	}
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
