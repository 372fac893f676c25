package astio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tacgen/internal/ast"
	"tacgen/internal/typesys"
)

// Encode writes prog as a YAML document that Decode reads back.
// Multi-name declarations are split into one entry per name.
func Encode(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("encode ast: nil program")
	}
	doc, err := encodeProgram(prog)
	if err != nil {
		return fmt.Errorf("encode ast: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode ast: %w", err)
	}
	return enc.Close()
}

func mapping(flow bool, kv ...*yaml.Node) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: kv}
	if flow {
		n.Style = yaml.FlowStyle
	}
	return n
}

func sequence(flow bool, items ...*yaml.Node) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
	if flow {
		n.Style = yaml.FlowStyle
	}
	return n
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// formatFloat keeps a decimal point so the value reads back as a float.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func encodeProgram(prog *ast.Program) (*yaml.Node, error) {
	decls := sequence(false)
	for _, d := range prog.Declarations {
		for _, name := range d.Names {
			decls.Content = append(decls.Content, mapping(true,
				str("name"), str(name.Value),
				str("type"), str(d.Type.String()),
			))
		}
	}

	body := sequence(false)
	if prog.Body != nil {
		for _, s := range prog.Body.Statements {
			n, err := encodeStatement(s)
			if err != nil {
				return nil, err
			}
			body.Content = append(body.Content, n)
		}
	}
	return mapping(false, str("declarations"), decls, str("body"), body), nil
}

func encodeExpression(e ast.Expression) (*yaml.Node, error) {
	switch e := e.(type) {
	case *ast.NumberLiteral:
		if e == nil {
			break
		}
		if e.Kind == typesys.Float {
			return mapping(true, str("num"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(e.Float)}), nil
		}
		return mapping(true, str("num"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(e.Int, 10)}), nil
	case *ast.Identifier:
		if e == nil {
			break
		}
		return mapping(true, str("id"), str(e.Value)), nil
	case *ast.InfixExpression:
		if e == nil {
			break
		}
		if !e.Operator.Valid() {
			return nil, fmt.Errorf("invalid arithmetic operator %s", e.Operator)
		}
		left, err := encodeExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return mapping(true, str("op"), str(e.Operator.String()), str("left"), left, str("right"), right), nil
	}
	return nil, fmt.Errorf("cannot encode expression %T", e)
}

func encodeCondition(b ast.BoolExpression) (*yaml.Node, error) {
	switch b := b.(type) {
	case *ast.RelationalExpression:
		if b == nil {
			break
		}
		if !b.Operator.Valid() {
			return nil, fmt.Errorf("invalid relational operator %s", b.Operator)
		}
		left, err := encodeExpression(b.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpression(b.Right)
		if err != nil {
			return nil, err
		}
		return mapping(true, str("rel"), str(b.Operator.String()), str("left"), left, str("right"), right), nil
	case *ast.OrExpression:
		if b == nil {
			break
		}
		return encodePair("or", b.Left, b.Right)
	case *ast.AndExpression:
		if b == nil {
			break
		}
		return encodePair("and", b.Left, b.Right)
	case *ast.NotExpression:
		if b == nil {
			break
		}
		operand, err := encodeCondition(b.Operand)
		if err != nil {
			return nil, err
		}
		return mapping(true, str("not"), operand), nil
	}
	return nil, fmt.Errorf("cannot encode condition %T", b)
}

// encodePair keeps the tree shape: nested or/and nodes are not flattened.
func encodePair(key string, l, r ast.BoolExpression) (*yaml.Node, error) {
	left, err := encodeCondition(l)
	if err != nil {
		return nil, err
	}
	right, err := encodeCondition(r)
	if err != nil {
		return nil, err
	}
	return mapping(true, str(key), sequence(true, left, right)), nil
}

func encodeAssign(as *ast.AssignStatement) (*yaml.Node, error) {
	if as == nil || as.Name == nil {
		return nil, fmt.Errorf("cannot encode assignment without a target")
	}
	value, err := encodeExpression(as.Value)
	if err != nil {
		return nil, err
	}
	return mapping(false, str("target"), str(as.Name.Value), str("value"), value), nil
}

func encodeStatement(s ast.Statement) (*yaml.Node, error) {
	switch s := s.(type) {
	case *ast.AssignStatement:
		n, err := encodeAssign(s)
		if err != nil {
			return nil, err
		}
		return mapping(false, str("assign"), n), nil
	case *ast.IfStatement:
		if s == nil {
			break
		}
		cond, err := encodeCondition(s.Condition)
		if err != nil {
			return nil, err
		}
		then, err := encodeStatement(s.Consequence)
		if err != nil {
			return nil, err
		}
		fields := []*yaml.Node{str("cond"), cond, str("then"), then}
		if s.Alternative != nil {
			els, err := encodeStatement(s.Alternative)
			if err != nil {
				return nil, err
			}
			fields = append(fields, str("else"), els)
		}
		return mapping(false, str("if"), mapping(false, fields...)), nil
	case *ast.WhileStatement:
		if s == nil {
			break
		}
		cond, err := encodeCondition(s.Condition)
		if err != nil {
			return nil, err
		}
		body, err := encodeStatement(s.Body)
		if err != nil {
			return nil, err
		}
		return mapping(false, str("while"), mapping(false, str("cond"), cond, str("body"), body)), nil
	case *ast.ForStatement:
		if s == nil {
			break
		}
		init, err := encodeAssign(s.Init)
		if err != nil {
			return nil, err
		}
		cond, err := encodeCondition(s.Condition)
		if err != nil {
			return nil, err
		}
		step, err := encodeAssign(s.Periodic)
		if err != nil {
			return nil, err
		}
		body, err := encodeStatement(s.Body)
		if err != nil {
			return nil, err
		}
		return mapping(false, str("for"), mapping(false,
			str("init"), init,
			str("cond"), cond,
			str("step"), step,
			str("body"), body,
		)), nil
	case *ast.BlockStatement:
		if s == nil {
			break
		}
		items := sequence(false)
		for _, inner := range s.Statements {
			n, err := encodeStatement(inner)
			if err != nil {
				return nil, err
			}
			items.Content = append(items.Content, n)
		}
		return mapping(false, str("block"), items), nil
	}
	return nil, fmt.Errorf("cannot encode statement %T", s)
}
