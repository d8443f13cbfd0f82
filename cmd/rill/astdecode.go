// astdecode.go turns the JSON document `rill run`/`rill watch` accept
// into an *ast.Script. Since the lexer/parser are non-goals of the
// runtime itself (spec.md §1), this CLI's input contract IS a
// pre-parsed tree: every node is a JSON object carrying a "type"
// discriminator (the unqualified ast Go type name) plus its fields, and
// this file is the one place that knows the mapping. A producer (a
// future lexer/parser, a test fixture, a hand-written script) emits
// this shape directly; the CLI never re-derives it from source text.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/opal-lang/rill/ast"
)

type wireEnvelope struct {
	Type string          `json:"type"`
	Span wireSpan        `json:"span"`
	Raw  json.RawMessage `json:"-"`
}

type wireSpan struct {
	Start wirePos `json:"start"`
	End   wirePos `json:"end"`
}

type wirePos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (p wirePos) toAST() ast.Position {
	return ast.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func (s wireSpan) toAST() ast.Span {
	return ast.Span{Start: s.Start.toAST(), End: s.End.toAST()}
}

func peekEnvelope(raw json.RawMessage) (wireEnvelope, error) {
	var env wireEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return wireEnvelope{}, err
	}
	env.Raw = raw
	return env, nil
}

// DecodeScript is the entry point: a whole program document.
func DecodeScript(raw json.RawMessage) (*ast.Script, error) {
	env, err := peekEnvelope(raw)
	if err != nil {
		return nil, err
	}
	if env.Type != "" && env.Type != "Script" {
		return nil, fmt.Errorf("ast: expected top-level Script, got %q", env.Type)
	}
	var body struct {
		Statements []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	stmts := make([]*ast.Statement, len(body.Statements))
	for i, s := range body.Statements {
		st, err := decodeStatement(s)
		if err != nil {
			return nil, fmt.Errorf("ast: statement %d: %w", i, err)
		}
		stmts[i] = st
	}
	script := &ast.Script{Statements: stmts}
	script.Span = env.Span.toAST()
	return script, nil
}

func decodeStatement(raw json.RawMessage) (*ast.Statement, error) {
	var body struct {
		Pipe json.RawMessage `json:"pipe"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	pipe, err := decodePipeChain(body.Pipe)
	if err != nil {
		return nil, err
	}
	return &ast.Statement{Pipe: pipe}, nil
}

func decodePipeChain(raw json.RawMessage) (*ast.PipeChain, error) {
	var body struct {
		Head       json.RawMessage   `json:"head"`
		Targets    []json.RawMessage `json:"targets"`
		Terminator json.RawMessage   `json:"terminator"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	head, err := decodeExpr(body.Head)
	if err != nil {
		return nil, fmt.Errorf("pipe head: %w", err)
	}
	targets := make([]ast.PipeTarget, len(body.Targets))
	for i, t := range body.Targets {
		target, err := decodePipeTarget(t)
		if err != nil {
			return nil, fmt.Errorf("pipe target %d: %w", i, err)
		}
		targets[i] = target
	}
	var term ast.Terminator
	if len(body.Terminator) > 0 {
		term, err = decodeTerminator(body.Terminator)
		if err != nil {
			return nil, err
		}
	}
	return &ast.PipeChain{Head: head, Targets: targets, Terminator: term}, nil
}

func decodeExpr(raw json.RawMessage) (ast.Expression, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	env, err := peekEnvelope(raw)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case "PipeChain":
		return decodePipeChain(raw)

	case "StringLiteral":
		var body struct {
			Parts []struct {
				Text string          `json:"text"`
				Expr json.RawMessage `json:"expr"`
			} `json:"parts"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		parts := make([]ast.StringPart, len(body.Parts))
		for i, p := range body.Parts {
			part := ast.StringPart{Text: p.Text}
			if len(p.Expr) > 0 {
				e, err := decodeExpr(p.Expr)
				if err != nil {
					return nil, err
				}
				part.Expr = e
			}
			parts[i] = part
		}
		return &ast.StringLiteral{Parts: parts}, nil

	case "NumberLiteral":
		var body struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Value: body.Value}, nil

	case "BoolLiteral":
		var body struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: body.Value}, nil

	case "NullLiteral":
		return &ast.NullLiteral{}, nil

	case "ListLiteral":
		var body struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		elems := make([]ast.Expression, len(body.Elements))
		for i, e := range body.Elements {
			v, err := decodeExpr(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ast.ListLiteral{Elements: elems}, nil

	case "DictLiteral":
		var body struct {
			Entries []struct {
				Keys  []json.RawMessage `json:"keys"`
				Value json.RawMessage   `json:"value"`
			} `json:"entries"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		entries := make([]ast.DictEntry, len(body.Entries))
		for i, e := range body.Entries {
			keys := make([]ast.Expression, len(e.Keys))
			for j, k := range e.Keys {
				kv, err := decodeExpr(k)
				if err != nil {
					return nil, err
				}
				keys[j] = kv
			}
			val, err := decodeExpr(e.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = ast.DictEntry{Keys: keys, Value: val}
		}
		return &ast.DictLiteral{Entries: entries}, nil

	case "ClosureLiteral":
		var body struct {
			Params      []wireParam                `json:"params"`
			Body        json.RawMessage             `json:"body"`
			Annotations map[string]json.RawMessage `json:"annotations"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		params, err := decodeParams(body.Params)
		if err != nil {
			return nil, err
		}
		bodyNode, err := decodeBody(body.Body)
		if err != nil {
			return nil, err
		}
		annotations := make(map[string]ast.Expression, len(body.Annotations))
		for k, v := range body.Annotations {
			av, err := decodeExpr(v)
			if err != nil {
				return nil, err
			}
			annotations[k] = av
		}
		return &ast.ClosureLiteral{Params: params, Body: bodyNode, Annotations: annotations}, nil

	case "SpreadExpr":
		var body struct {
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(body.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.SpreadExpr{Operand: operand}, nil

	case "Variable":
		v, err := decodeVariableBody(raw)
		if err != nil {
			return nil, err
		}
		return v, nil

	case "ExistenceExpr":
		var body struct {
			Name          string            `json:"name"`
			Chain         []json.RawMessage `json:"chain"`
			TypeQualifier string            `json:"typeQualifier"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		chain, err := decodeAccessChain(body.Chain)
		if err != nil {
			return nil, err
		}
		return &ast.ExistenceExpr{Name: body.Name, Chain: chain, TypeQualifier: body.TypeQualifier}, nil

	case "FunctionCall":
		var body struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		args, err := decodeExprList(body.Args)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Name: body.Name, Args: args}, nil

	case "VariableCall":
		var body struct {
			Callee json.RawMessage   `json:"callee"`
			Args   []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		callee, err := decodeVariableBody(body.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(body.Args)
		if err != nil {
			return nil, err
		}
		return &ast.VariableCall{Callee: callee, Args: args}, nil

	case "BareMethodCall":
		var body struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		args, err := decodeExprList(body.Args)
		if err != nil {
			return nil, err
		}
		return &ast.BareMethodCall{Name: body.Name, Args: args}, nil

	case "Postfix":
		var body struct {
			Primary json.RawMessage   `json:"primary"`
			Calls   []json.RawMessage `json:"calls"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		primary, err := decodeExpr(body.Primary)
		if err != nil {
			return nil, err
		}
		calls := make([]ast.MethodCallSuffix, len(body.Calls))
		for i, c := range body.Calls {
			var cb struct {
				Name string            `json:"name"`
				Args []json.RawMessage `json:"args"`
			}
			if err := json.Unmarshal(c, &cb); err != nil {
				return nil, err
			}
			args, err := decodeExprList(cb.Args)
			if err != nil {
				return nil, err
			}
			calls[i] = ast.MethodCallSuffix{Name: cb.Name, Args: args}
		}
		return &ast.Postfix{Primary: primary, Calls: calls}, nil

	case "Block":
		node, err := decodeBlockBody(raw)
		return node, err

	case "Conditional":
		return decodeConditional(raw)

	case "While":
		var body struct {
			MaxIterations json.RawMessage `json:"maxIterations"`
			Cond          json.RawMessage `json:"cond"`
			Body          json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		var maxIter ast.Expression
		if len(body.MaxIterations) > 0 {
			maxIter, err = decodeExpr(body.MaxIterations)
			if err != nil {
				return nil, err
			}
		}
		cond, err := decodeBoolExpr(body.Cond)
		if err != nil {
			return nil, err
		}
		bodyNode, err := decodeBody(body.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{MaxIterations: maxIter, Cond: cond, Body: bodyNode}, nil

	case "DoWhile":
		var body struct {
			Cond json.RawMessage `json:"cond"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		cond, err := decodeBoolExpr(body.Cond)
		if err != nil {
			return nil, err
		}
		bodyNode, err := decodeBody(body.Body)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhile{Cond: cond, Body: bodyNode}, nil

	case "For":
		var body struct {
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		bodyNode, err := decodeBody(body.Body)
		if err != nil {
			return nil, err
		}
		return &ast.For{Body: bodyNode}, nil

	case "GroupedExpr":
		var body struct {
			Head       json.RawMessage   `json:"head"`
			Targets    []json.RawMessage `json:"targets"`
			Terminator json.RawMessage   `json:"terminator"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		head, err := decodeExpr(body.Head)
		if err != nil {
			return nil, err
		}
		targets := make([]ast.PipeTarget, len(body.Targets))
		for i, t := range body.Targets {
			target, err := decodePipeTarget(t)
			if err != nil {
				return nil, err
			}
			targets[i] = target
		}
		var term ast.Terminator
		if len(body.Terminator) > 0 {
			term, err = decodeTerminator(body.Terminator)
			if err != nil {
				return nil, err
			}
		}
		return &ast.GroupedExpr{Head: head, Targets: targets, Terminator: term}, nil

	case "BinaryArith":
		var body struct {
			Left  json.RawMessage `json:"left"`
			Op    string          `json:"op"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		left, err := decodeExpr(body.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(body.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryArith{Left: left, Op: body.Op, Right: right}, nil

	case "UnaryMinus":
		var body struct {
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(body.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryMinus{Operand: operand}, nil

	default:
		return nil, fmt.Errorf("ast: unknown expression type %q", env.Type)
	}
}

func decodeExprList(raws []json.RawMessage) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(raws))
	for i, r := range raws {
		v, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeVariableBody(raw json.RawMessage) (*ast.Variable, error) {
	var body struct {
		Name    string            `json:"name"`
		Chain   []json.RawMessage `json:"chain"`
		Default json.RawMessage   `json:"default"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	chain, err := decodeAccessChain(body.Chain)
	if err != nil {
		return nil, err
	}
	var def ast.Expression
	if len(body.Default) > 0 {
		def, err = decodeExpr(body.Default)
		if err != nil {
			return nil, err
		}
	}
	return &ast.Variable{Name: body.Name, Chain: chain, Default: def}, nil
}

func decodeAccessChain(raws []json.RawMessage) ([]ast.AccessLink, error) {
	out := make([]ast.AccessLink, len(raws))
	for i, r := range raws {
		link, err := decodeAccessLink(r)
		if err != nil {
			return nil, err
		}
		out[i] = link
	}
	return out, nil
}

func decodeAccessLink(raw json.RawMessage) (ast.AccessLink, error) {
	env, err := peekEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var base struct {
		Default json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, err
	}
	var def ast.Expression
	if len(base.Default) > 0 {
		def, err = decodeExpr(base.Default)
		if err != nil {
			return nil, err
		}
	}
	switch env.Type {
	case "FieldAccess":
		var body struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		link := &ast.FieldAccess{Name: body.Name}
		link.Default = def
		return link, nil
	case "VarKeyAccess":
		var body struct {
			KeyVar string `json:"keyVar"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		link := &ast.VarKeyAccess{KeyVar: body.KeyVar}
		link.Default = def
		return link, nil
	case "ComputedKeyAccess":
		var body struct {
			Key json.RawMessage `json:"key"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		key, err := decodeExpr(body.Key)
		if err != nil {
			return nil, err
		}
		link := &ast.ComputedKeyAccess{Key: key}
		link.Default = def
		return link, nil
	case "IndexAccess":
		var body struct {
			Index json.RawMessage `json:"index"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		idx, err := decodeExpr(body.Index)
		if err != nil {
			return nil, err
		}
		link := &ast.IndexAccess{Index: idx}
		link.Default = def
		return link, nil
	case "AltAccess":
		var body struct {
			Names []string `json:"names"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		link := &ast.AltAccess{Names: body.Names}
		link.Default = def
		return link, nil
	case "AnnotationAccess":
		var body struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		link := &ast.AnnotationAccess{Name: body.Name}
		link.Default = def
		return link, nil
	default:
		return nil, fmt.Errorf("ast: unknown access link type %q", env.Type)
	}
}

func decodeBody(raw json.RawMessage) (ast.Node, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	env, err := peekEnvelope(raw)
	if err != nil {
		return nil, err
	}
	if env.Type == "Block" {
		return decodeBlockBody(raw)
	}
	return decodeExpr(raw)
}

func decodeBlockBody(raw json.RawMessage) (*ast.Block, error) {
	var body struct {
		Statements []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	stmts := make([]*ast.Statement, len(body.Statements))
	for i, s := range body.Statements {
		st, err := decodeStatement(s)
		if err != nil {
			return nil, err
		}
		stmts[i] = st
	}
	return &ast.Block{Statements: stmts}, nil
}

func decodeConditional(raw json.RawMessage) (*ast.Conditional, error) {
	var body struct {
		Cond  json.RawMessage `json:"cond"`
		Then  json.RawMessage `json:"then"`
		Elifs []struct {
			Cond json.RawMessage `json:"cond"`
			Then json.RawMessage `json:"then"`
		} `json:"elifs"`
		Else json.RawMessage `json:"else"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	cond, err := decodeBoolExpr(body.Cond)
	if err != nil {
		return nil, err
	}
	then, err := decodeBody(body.Then)
	if err != nil {
		return nil, err
	}
	elifs := make([]ast.ElifClause, len(body.Elifs))
	for i, e := range body.Elifs {
		ec, err := decodeBoolExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		et, err := decodeBody(e.Then)
		if err != nil {
			return nil, err
		}
		elifs[i] = ast.ElifClause{Cond: ec, Then: et}
	}
	var elseNode ast.Node
	if len(body.Else) > 0 {
		elseNode, err = decodeBody(body.Else)
		if err != nil {
			return nil, err
		}
	}
	return &ast.Conditional{Cond: cond, Then: then, Elifs: elifs, Else: elseNode}, nil
}

func decodeBoolExpr(raw json.RawMessage) (ast.BoolExpr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	env, err := peekEnvelope(raw)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case "OrExpr":
		var body struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		left, err := decodeBoolExpr(body.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeBoolExpr(body.Right)
		if err != nil {
			return nil, err
		}
		return &ast.OrExpr{Left: left, Right: right}, nil
	case "AndExpr":
		var body struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		left, err := decodeBoolExpr(body.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeBoolExpr(body.Right)
		if err != nil {
			return nil, err
		}
		return &ast.AndExpr{Left: left, Right: right}, nil
	case "NotExpr":
		var body struct {
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		operand, err := decodeBoolExpr(body.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.NotExpr{Operand: operand}, nil
	case "ComparisonExpr":
		var body struct {
			Left  json.RawMessage `json:"left"`
			Op    string          `json:"op"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		left, err := decodeExpr(body.Left)
		if err != nil {
			return nil, err
		}
		var right ast.Expression
		if len(body.Right) > 0 {
			right, err = decodeExpr(body.Right)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ComparisonExpr{Left: left, Op: body.Op, Right: right}, nil
	default:
		// A bare expression node degenerates to isTruthy(Left) (spec §4.10).
		expr, err := decodeExpr(raw)
		if err != nil {
			return nil, fmt.Errorf("ast: bool expr: %w", err)
		}
		return &ast.ComparisonExpr{Left: expr}, nil
	}
}

func decodePipeTarget(raw json.RawMessage) (ast.PipeTarget, error) {
	env, err := peekEnvelope(raw)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case "LiteralTarget":
		var body struct {
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(body.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralTarget{Expr: expr}, nil
	case "InvokeTarget":
		var body struct {
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		args, err := decodeExprList(body.Args)
		if err != nil {
			return nil, err
		}
		return &ast.InvokeTarget{Args: args}, nil
	case "ParallelSpreadTarget":
		var body struct {
			Target json.RawMessage `json:"target"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		target, err := decodeExpr(body.Target)
		if err != nil {
			return nil, err
		}
		return &ast.ParallelSpreadTarget{Target: target}, nil
	case "ParallelFilterTarget":
		var body struct {
			Predicate json.RawMessage `json:"predicate"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		pred, err := decodeBody(body.Predicate)
		if err != nil {
			return nil, err
		}
		return &ast.ParallelFilterTarget{Predicate: pred}, nil
	case "SequentialSpreadTarget":
		var body struct {
			Target json.RawMessage `json:"target"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		target, err := decodeExpr(body.Target)
		if err != nil {
			return nil, err
		}
		return &ast.SequentialSpreadTarget{Target: target}, nil
	case "DestructureTarget":
		var body struct {
			Pattern wirePattern `json:"pattern"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		pattern, err := decodePattern(body.Pattern)
		if err != nil {
			return nil, err
		}
		return &ast.DestructureTarget{Pattern: pattern}, nil
	case "SliceTarget":
		var body struct {
			Start json.RawMessage `json:"start"`
			Stop  json.RawMessage `json:"stop"`
			Step  json.RawMessage `json:"step"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		start, err := decodeExpr(body.Start)
		if err != nil {
			return nil, err
		}
		stop, err := decodeExpr(body.Stop)
		if err != nil {
			return nil, err
		}
		step, err := decodeExpr(body.Step)
		if err != nil {
			return nil, err
		}
		return &ast.SliceTarget{Start: start, Stop: stop, Step: step}, nil
	case "EnumerateTarget":
		return &ast.EnumerateTarget{}, nil
	case "SpreadTarget":
		return &ast.SpreadTarget{}, nil
	default:
		return nil, fmt.Errorf("ast: unknown pipe target type %q", env.Type)
	}
}

func decodeTerminator(raw json.RawMessage) (ast.Terminator, error) {
	env, err := peekEnvelope(raw)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case "CaptureTerm":
		var body struct {
			Name string `json:"name"`
			Type string `json:"type_"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return &ast.CaptureTerm{Name: body.Name, Type: body.Type}, nil
	case "BreakTerm":
		return &ast.BreakTerm{}, nil
	case "ReturnTerm":
		return &ast.ReturnTerm{}, nil
	default:
		return nil, fmt.Errorf("ast: unknown terminator type %q", env.Type)
	}
}

type wireParam struct {
	Name    string          `json:"name"`
	Type    string          `json:"type_"`
	Default json.RawMessage `json:"default"`
}

func decodeParams(wire []wireParam) ([]ast.Param, error) {
	out := make([]ast.Param, len(wire))
	for i, p := range wire {
		var def ast.Expression
		if len(p.Default) > 0 {
			d, err := decodeExpr(p.Default)
			if err != nil {
				return nil, err
			}
			def = d
		}
		out[i] = ast.Param{Name: p.Name, Type: p.Type, Default: def}
	}
	return out, nil
}

type wirePattern struct {
	Elements []json.RawMessage `json:"elements"`
}

func decodePattern(wire wirePattern) (ast.DestructurePattern, error) {
	elems := make([]ast.DestructureElement, len(wire.Elements))
	for i, raw := range wire.Elements {
		env, err := peekEnvelope(raw)
		if err != nil {
			return ast.DestructurePattern{}, err
		}
		switch env.Type {
		case "SkipElement":
			elems[i] = ast.SkipElement{}
		case "BindElement":
			var body struct {
				Key  string `json:"key"`
				Name string `json:"name"`
				Type string `json:"type_"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return ast.DestructurePattern{}, err
			}
			elems[i] = ast.BindElement{Key: body.Key, Name: body.Name, Type: body.Type}
		case "NestedElement":
			var body struct {
				Pattern wirePattern `json:"pattern"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return ast.DestructurePattern{}, err
			}
			nested, err := decodePattern(body.Pattern)
			if err != nil {
				return ast.DestructurePattern{}, err
			}
			elems[i] = ast.NestedElement{Pattern: nested}
		default:
			return ast.DestructurePattern{}, fmt.Errorf("ast: unknown destructure element type %q", env.Type)
		}
	}
	return ast.DestructurePattern{Elements: elems}, nil
}
