package grammar

import (
	"fmt"
	"unicode"
)

// ValidationError marks a defect that makes a grammar unsafe to run:
// parsing may panic-equivalent (a structural *parse.Error) or silently
// misbehave if the grammar is used anyway.
type ValidationError struct {
	// Kind is one of: NodeNotFound, EnumeratorNotFound, VariableNotFound,
	// GlobalNotFound, CantUseVariable, EmptyToken, TokenNotFound, LabelNotFound.
	Kind     string
	NodeName string
	Name     string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: node %q: %s", e.Kind, e.NodeName, e.Name)
}

// ValidationWarning marks something unusual but not unsafe: a deprecated
// construct, an unused attribute, or a token literal with an odd shape.
type ValidationWarning struct {
	Kind     string // UnusedVariable, UsedDebug, UsedPrint, UsedDeprecated, UnusualToken
	NodeName string
	Name     string
}

func (w ValidationWarning) Error() string {
	return fmt.Sprintf("%s: node %q: %s", w.Kind, w.NodeName, w.Name)
}

// ValidationResult is the outcome of Validate: the errors and warnings
// collected across every node, enumerator, and command in the grammar.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Pass reports whether the grammar has no errors (warnings are tolerated).
func (r ValidationResult) Pass() bool { return len(r.Errors) == 0 }

// Success reports whether the grammar has neither errors nor warnings.
func (r ValidationResult) Success() bool { return len(r.Errors) == 0 && len(r.Warnings) == 0 }

// validator accumulates a ValidationResult while walking a Grammar.
type validator struct {
	g      *Grammar
	tokens map[string]bool // declared lexer literal set, for TokenNotFound checks
	result ValidationResult
}

// Validate statically checks a grammar for structural defects: references
// to nodes, enumerators, labels, and attributes that don't exist; misuse of
// an attribute incompatible with its declared VariableKind; and token
// literals with unusual shapes. declaredTokens is the lexer's literal
// alphabet (lex.Config.TokenKinds), used to flag MatchToken.Token
// references to literals the paired lexer never declares.
//
// Grounded on _examples/original_source/src/grammar.rs's embedded
// validator module (Grammar::validate, validate_node, validate_rule,
// validate_token, validate_parameters).
func Validate(g *Grammar, declaredTokens []string) ValidationResult {
	v := &validator{g: g, tokens: make(map[string]bool, len(declaredTokens))}
	for _, t := range declaredTokens {
		v.tokens[t] = true
	}

	for name, def := range g.Nodes {
		v.validateNode(name, def)
	}
	for _, lit := range declaredTokens {
		if lit == "" {
			v.result.Errors = append(v.result.Errors, ValidationError{Kind: "EmptyToken", NodeName: "<lexer>", Name: "''"})
			continue
		}
		if len(lit) > 2 || startsWithDigit(lit) || containsWhitespace(lit) || !isASCII(lit) {
			v.result.Warnings = append(v.result.Warnings, ValidationWarning{Kind: "UnusualToken", NodeName: "<lexer>", Name: lit})
		}
	}
	return v.result
}

func startsWithDigit(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsDigit(r[0])
}

func containsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func (v *validator) validateNode(name string, def *NodeDef) {
	labels := collectLabels(def.Rules)
	used := make(map[string]bool)
	for _, r := range def.Rules {
		v.validateRule(name, def, r, labels, used)
	}
	for varName := range def.Variables {
		if !used[varName] {
			v.result.Warnings = append(v.result.Warnings, ValidationWarning{Kind: "UnusedVariable", NodeName: name, Name: varName})
		}
	}
}

// collectLabels gathers every label name declared directly in a rule list.
// Validate checks a Goto command against one such set only: the labels of
// the rule list the Goto sits in (for a Goto inside a Compare command's
// rules, the list holding that Compare). Labels of enclosing rule lists are
// not searched, so a Goto the interpreter would resolve by propagating
// outward is still reported as LabelNotFound.
func collectLabels(rules []Rule) map[string]bool {
	labels := make(map[string]bool)
	for _, r := range rules {
		if r.Kind == "command" && r.Command != nil && r.Command.Kind == "label" {
			labels[r.Command.Label] = true
		}
	}
	return labels
}

func (v *validator) validateRule(nodeName string, def *NodeDef, r Rule, labels map[string]bool, used map[string]bool) {
	switch r.Kind {
	case "is", "isnt", "while", "until":
		v.validateToken(nodeName, *r.Token)
		v.validateParams(nodeName, def, r.Params, used)
		for _, nested := range r.Rules {
			v.validateRule(nodeName, def, nested, collectLabels(r.Rules), used)
		}
	case "maybe":
		v.validateToken(nodeName, *r.Token)
		v.validateParams(nodeName, def, r.Params, used)
		for _, nested := range r.IsRules {
			v.validateRule(nodeName, def, nested, collectLabels(r.IsRules), used)
		}
		for _, nested := range r.IsntRules {
			v.validateRule(nodeName, def, nested, collectLabels(r.IsntRules), used)
		}
	case "is_one_of", "until_one_of":
		for _, alt := range r.Alts {
			v.validateToken(nodeName, alt.Token)
			v.validateParams(nodeName, def, alt.Params, used)
			for _, nested := range alt.Rules {
				v.validateRule(nodeName, def, nested, collectLabels(alt.Rules), used)
			}
		}
	case "maybe_one_of":
		for _, alt := range r.Alts {
			v.validateToken(nodeName, alt.Token)
			v.validateParams(nodeName, def, alt.Params, used)
			for _, nested := range alt.Rules {
				v.validateRule(nodeName, def, nested, collectLabels(alt.Rules), used)
			}
		}
		for _, nested := range r.IsntRules {
			v.validateRule(nodeName, def, nested, collectLabels(r.IsntRules), used)
		}
	case "loop":
		for _, nested := range r.Rules {
			v.validateRule(nodeName, def, nested, collectLabels(r.Rules), used)
		}
	case "command":
		v.validateCommand(nodeName, def, *r.Command, labels, used)
	}
}

func (v *validator) validateCommand(nodeName string, def *NodeDef, c Command, labels map[string]bool, used map[string]bool) {
	switch c.Kind {
	case "compare":
		used[c.Left] = true
		used[c.Right] = true
		leftKind, leftOk := def.Variables[c.Left]
		rightKind, rightOk := def.Variables[c.Right]
		if !leftOk {
			v.result.Errors = append(v.result.Errors, ValidationError{Kind: "VariableNotFound", NodeName: nodeName, Name: c.Left})
		}
		if !rightOk {
			v.result.Errors = append(v.result.Errors, ValidationError{Kind: "VariableNotFound", NodeName: nodeName, Name: c.Right})
		}
		if leftOk && rightOk && leftKind == KindNumber && rightKind != KindNumber ||
			leftOk && rightOk && rightKind == KindNumber && leftKind != KindNumber {
			v.result.Errors = append(v.result.Errors, ValidationError{Kind: "CantUseVariable", NodeName: nodeName, Name: c.Left + "/" + c.Right})
		}
		for _, nested := range c.Rules {
			v.validateRule(nodeName, def, nested, labels, used)
		}
	case "goto":
		if !labels[c.Label] {
			v.result.Errors = append(v.result.Errors, ValidationError{Kind: "LabelNotFound", NodeName: nodeName, Name: c.Label})
		}
	case "print":
		v.result.Warnings = append(v.result.Warnings, ValidationWarning{Kind: "UsedPrint", NodeName: nodeName, Name: c.Message})
	}
}

func (v *validator) validateToken(nodeName string, mt MatchToken) {
	switch mt.Kind {
	case "token":
		if mt.TokenKind.Tag == "literal" {
			if mt.TokenKind.Literal == "" {
				v.result.Errors = append(v.result.Errors, ValidationError{Kind: "EmptyToken", NodeName: nodeName, Name: "''"})
			} else if !v.tokens[mt.TokenKind.Literal] {
				v.result.Errors = append(v.result.Errors, ValidationError{Kind: "TokenNotFound", NodeName: nodeName, Name: mt.TokenKind.Literal})
			}
		}
	case "node":
		if _, ok := v.g.Nodes[mt.Name]; !ok {
			v.result.Errors = append(v.result.Errors, ValidationError{Kind: "NodeNotFound", NodeName: nodeName, Name: mt.Name})
		}
	case "enumerator":
		enum, ok := v.g.Enumerators[mt.Name]
		if !ok {
			v.result.Errors = append(v.result.Errors, ValidationError{Kind: "EnumeratorNotFound", NodeName: nodeName, Name: mt.Name})
			return
		}
		for _, val := range enum.Values {
			v.validateToken(nodeName, val)
		}
	case "any":
		v.result.Warnings = append(v.result.Warnings, ValidationWarning{Kind: "UsedDeprecated", NodeName: nodeName, Name: "Any"})
	}
}

func (v *validator) validateParams(nodeName string, def *NodeDef, params []Parameter, used map[string]bool) {
	for _, p := range params {
		switch p.Kind {
		case "set", "increment", "decrement", "true", "false":
			used[p.Name] = true
			kind, ok := def.Variables[p.Name]
			if !ok {
				v.result.Errors = append(v.result.Errors, ValidationError{Kind: "VariableNotFound", NodeName: nodeName, Name: p.Name})
				continue
			}
			v.checkKindCompat(nodeName, p.Kind, p.Name, kind)
		case "global", "increment_global", "decrement_global", "true_global", "false_global":
			kind, ok := v.g.Globals[p.Name]
			if !ok {
				v.result.Errors = append(v.result.Errors, ValidationError{Kind: "GlobalNotFound", NodeName: nodeName, Name: p.Name})
				continue
			}
			v.checkKindCompat(nodeName, p.Kind, p.Name, kind)
		case "back":
			v.result.Warnings = append(v.result.Warnings, ValidationWarning{Kind: "UsedDeprecated", NodeName: nodeName, Name: "Back"})
		case "debug":
			v.result.Warnings = append(v.result.Warnings, ValidationWarning{Kind: "UsedDebug", NodeName: nodeName, Name: ""})
		case "print":
			v.result.Warnings = append(v.result.Warnings, ValidationWarning{Kind: "UsedPrint", NodeName: nodeName, Name: p.Message})
		}
	}
}

func (v *validator) checkKindCompat(nodeName, paramKind, varName string, kind VariableKind) {
	numeric := paramKind == "increment" || paramKind == "decrement" || paramKind == "increment_global" || paramKind == "decrement_global"
	boolean := paramKind == "true" || paramKind == "false" || paramKind == "true_global" || paramKind == "false_global"
	settable := paramKind == "set" || paramKind == "global"
	if numeric && kind != KindNumber {
		v.result.Errors = append(v.result.Errors, ValidationError{Kind: "CantUseVariable", NodeName: nodeName, Name: varName})
	}
	if boolean && kind != KindBoolean {
		v.result.Errors = append(v.result.Errors, ValidationError{Kind: "CantUseVariable", NodeName: nodeName, Name: varName})
	}
	if settable && kind != KindNode && kind != KindNodeList {
		v.result.Errors = append(v.result.Errors, ValidationError{Kind: "CantUseVariable", NodeName: nodeName, Name: varName})
	}
}
