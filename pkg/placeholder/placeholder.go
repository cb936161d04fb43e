// Package placeholder expands named placeholders in text templates.
//
// Templates use text/template syntax with the value map as dot, so a
// placeholder is written {{.name}}. Every placeholder a template references
// must be present in the value map; values the template does not reference
// are ignored.
package placeholder

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
	"text/template/parse"
)

// ErrUnresolved is matched by every *UnresolvedError.
var ErrUnresolved = errors.New("unresolved placeholder")

// UnresolvedError reports a placeholder referenced by a template but absent
// from the value map.
type UnresolvedError struct {
	Template string
	Name     string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("template %s: unresolved placeholder %q", e.Template, e.Name)
}

func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolved
}

// Expand renders text with values. name only labels errors.
func Expand(name, text string, values map[string]string) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	for _, ref := range References(tmpl) {
		if _, ok := values[ref]; !ok {
			return "", &UnresolvedError{Template: name, Name: ref}
		}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// References lists the placeholder names a parsed template refers to, in
// order of first appearance. Only fields of the top-level dot count: inside
// {{with}} and {{range}} bodies the dot is rebound, so only $.name there
// refers to the value map.
func References(tmpl *template.Template) []string {
	if tmpl == nil || tmpl.Tree == nil || tmpl.Tree.Root == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	// top reports whether dot is still the value map.
	var walk func(n parse.Node, top bool)
	walkPipe := func(p *parse.PipeNode, top bool) {
		if p == nil {
			return
		}
		for _, cmd := range p.Cmds {
			for _, arg := range cmd.Args {
				walk(arg, top)
			}
		}
	}
	walk = func(n parse.Node, top bool) {
		switch t := n.(type) {
		case *parse.ListNode:
			if t == nil {
				return
			}
			for _, child := range t.Nodes {
				walk(child, top)
			}
		case *parse.ActionNode:
			walkPipe(t.Pipe, top)
		case *parse.PipeNode:
			walkPipe(t, top)
		case *parse.ChainNode:
			walk(t.Node, top)
		case *parse.IfNode:
			walkPipe(t.Pipe, top)
			walk(t.List, top)
			walk(t.ElseList, top)
		case *parse.RangeNode:
			walkPipe(t.Pipe, top)
			walk(t.List, false)
			walk(t.ElseList, top)
		case *parse.WithNode:
			walkPipe(t.Pipe, top)
			walk(t.List, false)
			walk(t.ElseList, top)
		case *parse.TemplateNode:
			walkPipe(t.Pipe, top)
		case *parse.FieldNode:
			if top && len(t.Ident) > 0 {
				add(t.Ident[0])
			}
		case *parse.VariableNode:
			if len(t.Ident) > 1 && t.Ident[0] == "$" {
				add(t.Ident[1])
			}
		}
	}
	walk(tmpl.Tree.Root, true)
	return out
}
