// Package astio reads and writes programs as YAML documents.
//
// A document has a declarations list and a body list:
//
//	declarations:
//	  - {name: a, type: int}
//	body:
//	  - assign: {target: a, value: {op: "+", left: {id: a}, right: {num: 1}}}
//	  - while:
//	      cond: {rel: "<", left: {id: a}, right: {num: 10}}
//	      body: {assign: {target: a, value: {num: 0}}}
//
// Expressions are {num: N}, {id: name} or {op: "+", left: E, right: E}.
// Conditions are {rel: "<", left: E, right: E}, {or: [C, C, ...]},
// {and: [C, C, ...]} or {not: C}. Statements are single-key mappings named
// assign, if, while, for or block.
package astio

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tacgen/internal/ast"
	"tacgen/internal/diag"
	"tacgen/internal/token"
	"tacgen/internal/typesys"
)

// DecodeError collects every problem found in a document.
type DecodeError struct {
	Diagnostics []diag.CodeError
}

func (e *DecodeError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "; ")
}

// Decode reads one YAML document from r. Identifier types are not set;
// run symtab.Resolve on the result.
func Decode(r io.Reader) (*ast.Program, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &ast.Program{Body: &ast.BlockStatement{}}, nil
		}
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	d := &decoder{}
	// An alias would be walked again at every reference, so a chain of
	// anchors expands exponentially.
	d.rejectAliases(&doc)
	if len(d.errs) > 0 {
		return nil, &DecodeError{Diagnostics: d.errs}
	}
	prog := d.program(doc.Content[0])
	if len(d.errs) > 0 {
		return nil, &DecodeError{Diagnostics: d.errs}
	}
	return prog, nil
}

type decoder struct {
	errs []diag.CodeError
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) {
	d.errs = append(d.errs, diag.Errorf(n.Line, n.Column, format, args...))
}

// rejectAliases reports every alias in the tree without following it.
func (d *decoder) rejectAliases(n *yaml.Node) {
	if n.Kind == yaml.AliasNode {
		d.errorf(n, "yaml aliases are not supported (*%s)", n.Value)
		return
	}
	for _, c := range n.Content {
		d.rejectAliases(c)
	}
}

// fields returns the keys of a mapping node. Anything else is reported.
func (d *decoder) fields(n *yaml.Node, what string) map[string]*yaml.Node {
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "%s must be a mapping", what)
		return nil
	}
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if _, dup := out[key]; dup {
			d.errorf(n.Content[i], "duplicate key %q in %s", key, what)
			continue
		}
		out[key] = n.Content[i+1]
	}
	return out
}

func (d *decoder) required(parent *yaml.Node, f map[string]*yaml.Node, key, what string) *yaml.Node {
	n, ok := f[key]
	if !ok {
		d.errorf(parent, "%s is missing %q", what, key)
		return nil
	}
	return n
}

func (d *decoder) scalar(n *yaml.Node, what string) (string, bool) {
	if n == nil {
		return "", false
	}
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		d.errorf(n, "%s must be a non-empty scalar", what)
		return "", false
	}
	return n.Value, true
}

func (d *decoder) program(n *yaml.Node) *ast.Program {
	prog := &ast.Program{Body: &ast.BlockStatement{Statements: []ast.Statement{}}}
	f := d.fields(n, "document")
	if f == nil {
		return prog
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := n.Content[i]; key.Value != "declarations" && key.Value != "body" {
			d.errorf(key, "unknown document key %q", key.Value)
		}
	}
	if decls, ok := f["declarations"]; ok {
		prog.Declarations = d.declarations(decls)
	}
	if body, ok := f["body"]; ok {
		prog.Body.Statements = d.statements(body, "body")
	}
	return prog
}

func (d *decoder) declarations(n *yaml.Node) []*ast.Declaration {
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "declarations must be a list")
		return nil
	}
	var out []*ast.Declaration
	for _, item := range n.Content {
		f := d.fields(item, "declaration")
		if f == nil {
			continue
		}
		name, ok := d.scalar(d.required(item, f, "name", "declaration"), "declaration name")
		if !ok {
			continue
		}
		typeName, ok := d.scalar(d.required(item, f, "type", "declaration"), "declaration type")
		if !ok {
			continue
		}
		t, ok := typesys.ParseTypeName(typeName)
		if !ok {
			d.errorf(f["type"], "unknown type %q", typeName)
			continue
		}
		out = append(out, &ast.Declaration{
			Token: token.Token{Type: token.LookupIdent(typeName), Literal: typeName, Line: item.Line, Column: item.Column},
			Type:  t,
			Names: []*ast.Identifier{identAt(f["name"], name)},
		})
	}
	return out
}

func identAt(n *yaml.Node, name string) *ast.Identifier {
	return &ast.Identifier{
		Token: token.Token{Type: token.IDENT, Literal: name, Line: n.Line, Column: n.Column},
		Value: name,
	}
}

func (d *decoder) expression(n *yaml.Node) ast.Expression {
	if n == nil {
		return nil
	}
	f := d.fields(n, "expression")
	if f == nil {
		return nil
	}
	switch {
	case f["num"] != nil:
		return d.number(f["num"])
	case f["id"] != nil:
		name, ok := d.scalar(f["id"], "identifier")
		if !ok {
			return nil
		}
		return identAt(f["id"], name)
	case f["op"] != nil:
		opName, ok := d.scalar(f["op"], "operator")
		if !ok {
			return nil
		}
		op, ok := ast.LookupArithOp(opName)
		if !ok {
			d.errorf(f["op"], "unknown arithmetic operator %q", opName)
			return nil
		}
		left := d.expression(d.required(n, f, "left", "operation"))
		right := d.expression(d.required(n, f, "right", "operation"))
		if left == nil || right == nil {
			return nil
		}
		return &ast.InfixExpression{
			Token:    token.Token{Type: token.TokenType(opName), Literal: opName, Line: f["op"].Line, Column: f["op"].Column},
			Operator: op,
			Left:     left,
			Right:    right,
		}
	default:
		d.errorf(n, "expression needs one of num, id or op")
		return nil
	}
}

func (d *decoder) number(n *yaml.Node) ast.Expression {
	tok := token.Token{Line: n.Line, Column: n.Column}
	switch n.ShortTag() {
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			d.errorf(n, "could not parse %q as integer", n.Value)
			return nil
		}
		tok.Type, tok.Literal = token.INT, strconv.FormatInt(v, 10)
		return &ast.NumberLiteral{Token: tok, Kind: typesys.Int, Int: v}
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			d.errorf(n, "could not parse %q as float", n.Value)
			return nil
		}
		tok.Type, tok.Literal = token.FLOAT, formatFloat(v)
		return &ast.NumberLiteral{Token: tok, Kind: typesys.Float, Float: v}
	default:
		d.errorf(n, "num must be an int or a float, got %q", n.Value)
		return nil
	}
}

func (d *decoder) condition(n *yaml.Node) ast.BoolExpression {
	if n == nil {
		return nil
	}
	f := d.fields(n, "condition")
	if f == nil {
		return nil
	}
	switch {
	case f["rel"] != nil:
		opName, ok := d.scalar(f["rel"], "relational operator")
		if !ok {
			return nil
		}
		op, ok := ast.LookupRelOp(opName)
		if !ok {
			d.errorf(f["rel"], "unknown relational operator %q", opName)
			return nil
		}
		left := d.expression(d.required(n, f, "left", "comparison"))
		right := d.expression(d.required(n, f, "right", "comparison"))
		if left == nil || right == nil {
			return nil
		}
		return &ast.RelationalExpression{
			Token:    token.Token{Type: token.TokenType(opName), Literal: opName, Line: f["rel"].Line, Column: f["rel"].Column},
			Operator: op,
			Left:     left,
			Right:    right,
		}
	case f["or"] != nil:
		return d.logical(f["or"], token.OR)
	case f["and"] != nil:
		return d.logical(f["and"], token.AND)
	case f["not"] != nil:
		operand := d.condition(f["not"])
		if operand == nil {
			return nil
		}
		return &ast.NotExpression{Token: token.Token{Type: token.BANG, Literal: "!", Line: n.Line, Column: n.Column}, Operand: operand}
	default:
		d.errorf(n, "condition needs one of rel, or, and or not")
		return nil
	}
}

// logical folds a list of two or more conditions to the left.
func (d *decoder) logical(n *yaml.Node, kind token.TokenType) ast.BoolExpression {
	if n.Kind != yaml.SequenceNode || len(n.Content) < 2 {
		d.errorf(n, "%s needs a list of at least two conditions", kind)
		return nil
	}
	var acc ast.BoolExpression
	for _, item := range n.Content {
		c := d.condition(item)
		if c == nil {
			return nil
		}
		if acc == nil {
			acc = c
			continue
		}
		tok := token.Token{Type: kind, Literal: string(kind), Line: item.Line, Column: item.Column}
		if kind == token.AND {
			acc = &ast.AndExpression{Token: tok, Left: acc, Right: c}
		} else {
			acc = &ast.OrExpression{Token: tok, Left: acc, Right: c}
		}
	}
	return acc
}

func (d *decoder) statements(n *yaml.Node, what string) []ast.Statement {
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "%s must be a list of statements", what)
		return nil
	}
	out := []ast.Statement{}
	for _, item := range n.Content {
		if s := d.statement(item); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) statement(n *yaml.Node) ast.Statement {
	if n == nil {
		return nil
	}
	f := d.fields(n, "statement")
	if f == nil {
		return nil
	}
	if len(f) != 1 {
		d.errorf(n, "statement must have exactly one key, got %d", len(f))
		return nil
	}
	tok := token.Token{Line: n.Line, Column: n.Column}
	for kind, v := range f {
		switch kind {
		case "assign":
			s := d.assign(v)
			if s == nil {
				return nil
			}
			return s
		case "if":
			return d.ifStatement(v, tok)
		case "while":
			g := d.fields(v, "while")
			if g == nil {
				return nil
			}
			cond := d.condition(d.required(v, g, "cond", "while"))
			body := d.statement(d.required(v, g, "body", "while"))
			if cond == nil || body == nil {
				return nil
			}
			tok.Type, tok.Literal = token.WHILE, "while"
			return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
		case "for":
			return d.forStatement(v, tok)
		case "block":
			tok.Type, tok.Literal = token.LBRACE, "{"
			return &ast.BlockStatement{Token: tok, Statements: d.statements(v, "block")}
		default:
			d.errorf(n, "unknown statement %q", kind)
		}
	}
	return nil
}

func (d *decoder) assign(n *yaml.Node) *ast.AssignStatement {
	f := d.fields(n, "assign")
	if f == nil {
		return nil
	}
	target, ok := d.scalar(d.required(n, f, "target", "assign"), "assign target")
	if !ok {
		return nil
	}
	value := d.expression(d.required(n, f, "value", "assign"))
	if value == nil {
		return nil
	}
	name := identAt(f["target"], target)
	return &ast.AssignStatement{Token: name.Token, Name: name, Value: value}
}

func (d *decoder) ifStatement(n *yaml.Node, tok token.Token) ast.Statement {
	f := d.fields(n, "if")
	if f == nil {
		return nil
	}
	tok.Type, tok.Literal = token.IF, "if"
	stmt := &ast.IfStatement{Token: tok}
	stmt.Condition = d.condition(d.required(n, f, "cond", "if"))
	stmt.Consequence = d.statement(d.required(n, f, "then", "if"))
	if els, ok := f["else"]; ok {
		stmt.Alternative = d.statement(els)
		if stmt.Alternative == nil {
			return nil
		}
	} else {
		stmt.Alternative = &ast.BlockStatement{Token: tok, Statements: []ast.Statement{}}
	}
	if stmt.Condition == nil || stmt.Consequence == nil {
		return nil
	}
	return stmt
}

func (d *decoder) forStatement(n *yaml.Node, tok token.Token) ast.Statement {
	f := d.fields(n, "for")
	if f == nil {
		return nil
	}
	tok.Type, tok.Literal = token.FOR, "for"
	var init, step *ast.AssignStatement
	if v := d.required(n, f, "init", "for"); v != nil {
		init = d.assign(v)
	}
	cond := d.condition(d.required(n, f, "cond", "for"))
	if v := d.required(n, f, "step", "for"); v != nil {
		step = d.assign(v)
	}
	body := d.statement(d.required(n, f, "body", "for"))
	if init == nil || cond == nil || step == nil || body == nil {
		return nil
	}
	return &ast.ForStatement{Token: tok, Init: init, Condition: cond, Periodic: step, Body: body}
}
