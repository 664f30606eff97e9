// Package calc parses and evaluates the arithmetic typed into the launcher:
// + - * / ^ with the usual precedence, parentheses, unary signs, and the
// functions ln(x), log(x) and log(base, x).
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type UnaryOp int

const (
	Plus UnaryOp = iota
	Minus
)

type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Pow
)

func (op BinOp) String() string {
	return [...]string{"+", "-", "*", "/", "^"}[op]
}

// Expr is a parsed arithmetic expression.
type Expr interface {
	// Eval returns the value of the expression, or false when some part of
	// it has no value (an unknown function or a wrong argument count).
	// Division by zero and logs of negatives follow IEEE-754.
	Eval() (float64, bool)
	String() string
}

type Number float64

type Unary struct {
	Op      UnaryOp
	Operand Expr
}

type Binary struct {
	Op       BinOp
	LHS, RHS Expr
}

type Call struct {
	Name string
	Args []Expr
}

func (n Number) Eval() (float64, bool) { return float64(n), true }

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

func (u Unary) Eval() (float64, bool) {
	v, ok := u.Operand.Eval()
	if !ok {
		return 0, false
	}
	if u.Op == Minus {
		return -v, true
	}
	return v, true
}

func (u Unary) String() string {
	if u.Op == Minus {
		return "(-" + u.Operand.String() + ")"
	}
	return "(+" + u.Operand.String() + ")"
}

func (b Binary) Eval() (float64, bool) {
	l, ok := b.LHS.Eval()
	if !ok {
		return 0, false
	}
	r, ok := b.RHS.Eval()
	if !ok {
		return 0, false
	}
	switch b.Op {
	case Add:
		return l + r, true
	case Sub:
		return l - r, true
	case Mul:
		return l * r, true
	case Div:
		return l / r, true
	case Pow:
		return math.Pow(l, r), true
	}
	return 0, false
}

func (b Binary) String() string {
	return "(" + b.LHS.String() + " " + b.Op.String() + " " + b.RHS.String() + ")"
}

func (c Call) Eval() (float64, bool) {
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, ok := a.Eval()
		if !ok {
			return 0, false
		}
		args[i] = v
	}

	switch c.Name {
	case "ln":
		if len(args) != 1 {
			return 0, false
		}
		return math.Log(args[0]), true
	case "log":
		switch len(args) {
		case 1:
			return math.Log10(args[0]), true
		case 2:
			return math.Log(args[1]) / math.Log(args[0]), true
		}
	}
	return 0, false
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Parse reads a complete expression. Trailing input after a full expression
// is an error.
func Parse(input string) (Expr, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEnd {
		return nil, fmt.Errorf("unexpected token: %s", p.cur)
	}
	return expr, nil
}

// Evaluate parses and evaluates input in one step.
func Evaluate(input string) (float64, bool) {
	expr, err := Parse(input)
	if err != nil {
		return 0, false
	}
	return expr.Eval()
}

// FormatResult renders a value the way the calculator result shows it.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
