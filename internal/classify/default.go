package classify

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"

	"builder-generator/internal/diagnostic"
)

// normalizeDefault validates a default attribute payload against the
// field's value type and returns the normalized expression.
//
// For pointer fields the payload is an expression of the inner type
// (there is no pointer literal in Go); the special payload `nil` means
// the field explicitly starts empty.
func normalizeDefault(record, field string, inner types.Type, optional bool, raw string) (string, bool, error) {
	expr := strings.TrimSpace(raw)
	if expr == "" {
		return "", false, diagnostic.Errorf(diagnostic.CodeInvalidDefaultExpression, record, field,
			"default attribute has an empty payload")
	}

	if optional && expr == "nil" {
		return "", true, nil
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		return "", false, diagnostic.Errorf(diagnostic.CodeInvalidDefaultExpression, record, field,
			"default %q is not a valid expression: %v", expr, err)
	}

	if err := checkLiteral(node, inner); err != nil {
		return "", false, diagnostic.Errorf(diagnostic.CodeInvalidDefaultExpression, record, field,
			"default %q: %v", expr, err)
	}

	return expr, false, nil
}

// checkLiteral rejects literal payloads that can never fit the target
// type. Non-literal expressions (identifiers, calls, composites) are
// deferred to the compiler, which sees the generated code anyway; the
// point here is that a plainly-wrong literal fails at generation time,
// not at first construction.
func checkLiteral(node ast.Expr, target types.Type) error {
	basic, ok := target.Underlying().(*types.Basic)
	if !ok {
		return nil
	}

	switch e := node.(type) {
	case *ast.BasicLit:
		return checkBasicLit(e, basic)

	case *ast.UnaryExpr:
		if lit, ok := e.X.(*ast.BasicLit); ok && (e.Op == token.SUB || e.Op == token.ADD) {
			return checkBasicLit(lit, basic)
		}

	case *ast.Ident:
		if (e.Name == "true" || e.Name == "false") && basic.Info()&types.IsBoolean == 0 {
			return fmt.Errorf("boolean literal is not assignable to %s", basic.Name())
		}
	}

	return nil
}

// checkBasicLit checks one literal token against a basic target type.
func checkBasicLit(lit *ast.BasicLit, basic *types.Basic) error {
	info := basic.Info()

	switch lit.Kind {
	case token.STRING:
		if info&types.IsString == 0 {
			return fmt.Errorf("string literal is not assignable to %s", basic.Name())
		}

	case token.INT, token.CHAR:
		if info&types.IsNumeric == 0 {
			return fmt.Errorf("numeric literal is not assignable to %s", basic.Name())
		}

	case token.FLOAT:
		if info&(types.IsFloat|types.IsComplex) == 0 {
			return fmt.Errorf("float literal is not assignable to %s", basic.Name())
		}

	case token.IMAG:
		if info&types.IsComplex == 0 {
			return fmt.Errorf("imaginary literal is not assignable to %s", basic.Name())
		}
	}

	return nil
}
