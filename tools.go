package goalgebra

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool" validate:"required"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ToolOptions tunes tool execution.
type ToolOptions struct {
	// MaxSteps bounds make_subject; zero means DefaultMaxSteps. A request
	// may lower it with the max_steps param.
	MaxSteps int
}

func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallWithOptions(req, ToolOptions{})
}

func HandleToolCallWithOptions(req ToolRequest, opts ToolOptions) ToolResponse {
	return HandleToolCallContext(context.Background(), req, opts)
}

// HandleToolCallContext runs one tool call. Rearrangement stops early once
// ctx is done.
func HandleToolCallContext(ctx context.Context, req ToolRequest, opts ToolOptions) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		e, err := FromJSON(val)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return e, nil
	}
	getPair := func() (Expr, Expr, error) {
		a, err := getExpr("a")
		if err != nil {
			return nil, nil, err
		}
		b, err := getExpr("b")
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}
	getVariable := func(key string) (Variable, error) {
		v, ok := req.Params[key]
		if !ok {
			return Variable{}, fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return Variable{}, fmt.Errorf("param %s must be a string", key)
		}
		return ParseVariable(s)
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: exprToMap(e), LaTeX: LaTeX(e), String: String(e)}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "combine_terms":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(CombineTerms(e))

	case "add", "sub", "mul", "div", "distribute":
		a, b, err := getPair()
		if err != nil {
			return fail(err)
		}
		ops := map[string]func(Expr, Expr) Expr{
			"add": Add, "sub": Sub, "mul": Mul, "div": Div, "distribute": Distribute,
		}
		return respond(ops[req.Tool](a, b))

	case "cancel":
		a, b, err := getPair()
		if err != nil {
			return fail(err)
		}
		na, nb := Cancel(a, b)
		return ToolResponse{
			Result: map[string]interface{}{"a": exprToMap(na), "b": exprToMap(nb)},
			LaTeX:  na.LaTeX() + `,\ ` + nb.LaTeX(),
			String: na.String() + ", " + nb.String(),
		}

	case "neg":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(Neg(e))

	case "pow":
		base, err := getExpr("base")
		if err != nil {
			return fail(err)
		}
		exp, err := getExpr("exp")
		if err != nil {
			return fail(err)
		}
		return respond(Pow(base, exp))

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getVariable("var")
		if err != nil {
			return fail(err)
		}
		value, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(Substitute(e, v, value))

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		values, err := parseValues(req.Params["values"])
		if err != nil {
			return fail(err)
		}
		n, ok := Eval(e, values)
		if !ok {
			return ToolResponse{Error: "expression cannot be evaluated with the given values"}
		}
		return ToolResponse{Result: n.RatString(), LaTeX: n.LaTeX(), String: n.String()}

	case "free_variables":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		vars := FreeVariables(e)
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = v.String()
		}
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: LaTeX(e), LaTeX: LaTeX(e), String: String(e)}

	case "make_subject":
		return makeSubjectTool(ctx, req, opts)

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func makeSubjectTool(ctx context.Context, req ToolRequest, opts ToolOptions) ToolResponse {
	eqRaw, ok := req.Params["equation"].(map[string]interface{})
	if !ok {
		return ToolResponse{Error: "missing param: equation"}
	}
	eq, err := EquationFromJSON(eqRaw)
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	targetRaw, ok := req.Params["target"].(map[string]interface{})
	if !ok {
		return ToolResponse{Error: "missing param: target"}
	}
	target, err := TermFromJSON(targetRaw)
	if err != nil {
		return ToolResponse{Error: fmt.Sprintf("param target: %v", err)}
	}

	limit := opts.MaxSteps
	if f, ok := req.Params["max_steps"].(float64); ok && f > 0 && (limit <= 0 || int(f) < limit) {
		limit = int(f)
	}
	var steps []interface{}
	r := Rearranger{MaxSteps: limit, Observe: func(s Step) {
		steps = append(steps, map[string]interface{}{
			"kind":     s.Kind.String(),
			"detail":   s.Detail,
			"equation": s.Equation.String(),
		})
	}}
	result, err := r.MakeSubjectContext(ctx, eq, target)
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	return ToolResponse{
		Result: map[string]interface{}{"equation": EquationToMap(result), "steps": steps},
		LaTeX:  result.LaTeX(),
		String: result.String(),
	}
}

// parseValues reads {"x": "2", "y{1}": 0.5} into variable bindings.
func parseValues(raw interface{}) (map[Variable]Num, error) {
	if raw == nil {
		return map[Variable]Num{}, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("param values must be an object")
	}
	out := make(map[Variable]Num, len(m))
	for name := range m {
		v, err := ParseVariable(name)
		if err != nil {
			return nil, fmt.Errorf("param values: %w", err)
		}
		n, err := numField(m, name)
		if err != nil {
			return nil, fmt.Errorf("param values: %s: %w", name, err)
		}
		out[v] = n
	}
	return out, nil
}

// ============================================================
// MCP spec
// ============================================================

// ToolNames lists every tool HandleToolCall accepts, sorted.
func ToolNames() []string {
	names := make([]string, len(toolSpecs))
	for i, t := range toolSpecs {
		names[i] = t["name"].(string)
	}
	sort.Strings(names)
	return names
}

var toolSpecs = []map[string]interface{}{
	ts("combine_terms", "Merge like terms across sums", []string{"expr"}, map[string]string{"expr": "object"}),
	ts("add", "a + b with like terms merged", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
	ts("sub", "a - b with like terms merged", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
	ts("mul", "a * b, distributed and merged", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
	ts("div", "a / b with common factors cancelled", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
	ts("distribute", "Raw distributed product before merging", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
	ts("cancel", "Divide a and b by their common content", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
	ts("neg", "Negate an expression", []string{"expr"}, map[string]string{"expr": "object"}),
	ts("pow", "Term raised to a term", []string{"base", "exp"}, map[string]string{"base": "object", "exp": "object"}),
	ts("substitute", "Replace var (x or x{label}) with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
	ts("evaluate", "Evaluate with values {var: number}", []string{"expr"}, map[string]string{"expr": "object", "values": "object"}),
	ts("free_variables", "Variables occurring in expr", []string{"expr"}, map[string]string{"expr": "object"}),
	ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
	ts("make_subject", "Rearrange equation so target is the subject; returns the step trace", []string{"equation", "target"}, map[string]string{"equation": "object", "target": "object", "max_steps": "integer"}),
	ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
}

func MCPToolSpec() string {
	spec := map[string]interface{}{"tools": toolSpecs}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
