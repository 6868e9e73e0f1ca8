package goalgebra

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(exprToMap(e))
	return string(b), err
}

// ParseJSON decodes an expression from its JSON text.
func ParseJSON(s string) (Expr, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(data)
}

// ExprToMap is the generic-map form of ToJSON.
func ExprToMap(e Expr) map[string]interface{} { return exprToMap(e) }

func exprToMap(e Expr) map[string]interface{} {
	switch v := e.(type) {
	case Term:
		vars := make([]interface{}, 0, v.vars.Len())
		v.vars.Each(func(x Variable, exp Num) {
			m := map[string]interface{}{"letter": string(x.Letter), "exponent": exp.RatString()}
			if x.Label != "" {
				m["label"] = x.Label
			}
			vars = append(vars, m)
		})
		return map[string]interface{}{"type": "term", "coefficient": v.coef.RatString(), "variables": vars}
	case *Binary:
		return map[string]interface{}{"type": v.Op.String(), "left": exprToMap(v.Left), "right": exprToMap(v.Right)}
	case *Nested:
		return map[string]interface{}{"type": "nested", "inner": exprToMap(v.Inner)}
	case *Function:
		return map[string]interface{}{"type": "func", "name": v.Name, "arg": exprToMap(v.Arg), "negated": v.Negated}
	}
	return map[string]interface{}{"type": "custom", "string": e.String()}
}

func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subExpr := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "term", "num", "sym":
		t, err := TermFromJSON(data)
		if err != nil {
			return nil, err
		}
		return t, nil

	case "nested":
		inner, err := subExpr("inner")
		if err != nil {
			return nil, err
		}
		return Paren(inner), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		arg, err := subExpr("arg")
		if err != nil {
			return nil, err
		}
		negated, _ := data["negated"].(bool)
		return &Function{Name: name, Arg: arg, Negated: negated}, nil
	}

	if op, ok := ParseOperator(typ); ok {
		left, err := subExpr("left")
		if err != nil {
			return nil, err
		}
		right, err := subExpr("right")
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// TermFromJSON decodes a term. Besides the full "term" form it accepts the
// shorthands {"type":"num","value":"5/2"} and {"type":"sym","name":"x"}.
func TermFromJSON(data map[string]interface{}) (Term, error) {
	typ, _ := data["type"].(string)
	switch typ {
	case "num":
		n, err := numField(data, "value")
		if err != nil {
			return Term{}, fmt.Errorf("num: %w", err)
		}
		return Const(n), nil
	case "sym":
		v, err := VariableFromJSON(data, "name")
		if err != nil {
			return Term{}, fmt.Errorf("sym: %w", err)
		}
		return Symbol(v), nil
	case "term", "":
	default:
		return Term{}, fmt.Errorf("expected a term, got %q", typ)
	}

	coef := N(1)
	if _, ok := data["coefficient"]; ok {
		n, err := numField(data, "coefficient")
		if err != nil {
			return Term{}, fmt.Errorf("term: %w", err)
		}
		coef = n
	}
	var pairs []VarPower
	if raw, ok := data["variables"]; ok && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return Term{}, fmt.Errorf("term: 'variables' must be an array")
		}
		for i, it := range list {
			m, ok := it.(map[string]interface{})
			if !ok {
				return Term{}, fmt.Errorf("term: variables[%d] must be an object", i)
			}
			v, err := VariableFromJSON(m, "letter")
			if err != nil {
				return Term{}, fmt.Errorf("term: variables[%d]: %w", i, err)
			}
			exp := N(1)
			if _, ok := m["exponent"]; ok {
				if exp, err = numField(m, "exponent"); err != nil {
					return Term{}, fmt.Errorf("term: variables[%d]: %w", i, err)
				}
			}
			pairs = append(pairs, VarPower{Var: v, Exp: exp})
		}
	}
	return NewTerm(coef, NewVariables(pairs...)), nil
}

// VariableFromJSON reads a single-letter variable from data[field] with an
// optional "label".
func VariableFromJSON(data map[string]interface{}, field string) (Variable, error) {
	s, ok := data[field].(string)
	if !ok || utf8.RuneCountInString(s) != 1 {
		return Variable{}, fmt.Errorf("%q must be a single letter", field)
	}
	r, _ := utf8.DecodeRuneInString(s)
	label, _ := data["label"].(string)
	return Variable{Letter: r, Label: label}, nil
}

// numField accepts exact strings ("5/2", "2.5") and JSON numbers.
func numField(data map[string]interface{}, field string) (Num, error) {
	switch v := data[field].(type) {
	case string:
		return ParseNum(v)
	case float64:
		return NFloat(v), nil
	case json.Number:
		return ParseNum(v.String())
	case nil:
		return Num{}, fmt.Errorf("missing %q", field)
	}
	return Num{}, fmt.Errorf("%q must be a number or numeric string", field)
}

// ============================================================
// Equation JSON
// ============================================================

func EquationToMap(e Equation) map[string]interface{} {
	return map[string]interface{}{
		"left":     exprToMap(e.Left),
		"relation": e.Relation.String(),
		"right":    exprToMap(e.Right),
	}
}

func EquationToJSON(e Equation) (string, error) {
	b, err := json.Marshal(EquationToMap(e))
	return string(b), err
}

func EquationFromJSON(data map[string]interface{}) (Equation, error) {
	if data == nil {
		return Equation{}, fmt.Errorf("equation must be an object")
	}
	side := func(field string) (Expr, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("equation: %q must be an object", field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("equation: %s: %w", field, err)
		}
		return e, nil
	}
	left, err := side("left")
	if err != nil {
		return Equation{}, err
	}
	right, err := side("right")
	if err != nil {
		return Equation{}, err
	}
	relText, _ := data["relation"].(string)
	rel, err := ParseRelation(relText)
	if err != nil {
		return Equation{}, fmt.Errorf("equation: %w", err)
	}
	return Equation{Left: left, Relation: rel, Right: right}, nil
}
