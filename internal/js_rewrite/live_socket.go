package js_rewrite

import (
	"fmt"
	"strings"

	"github.com/jsmend/jsmend/internal/js_ast"
)

// LocatorOptions configures the live-socket locator. Zero values select the
// conventional names from a LiveView client bootstrap file.
type LocatorOptions struct {
	Variable    string // binding name, default "liveSocket"
	Constructor string // constructor identifier, default "LiveSocket"
}

func (o LocatorOptions) withDefaults() LocatorOptions {
	if o.Variable == "" {
		o.Variable = "liveSocket"
	}
	if o.Constructor == "" {
		o.Constructor = "LiveSocket"
	}
	return o
}

type locatorState uint8

const (
	stateNotFound locatorState = iota
	stateFound
	stateFoundError
)

// The locator matches a variable declarator binding the configured name to
// a new-expression of the configured constructor. The first match wins and
// stops the walk; the options object is the constructor's last argument,
// which must be an inline object literal. Expressions other than the
// matched initializer are never descended into, so a declarator inside an
// arrow or function expression cannot shadow the real one.
type liveSocketLocator struct {
	js_ast.NoopVisitor
	opts LocatorOptions

	state   locatorState
	options *js_ast.EObject
	reason  string
}

func (l *liveSocketLocator) VisitStmt(stmt *js_ast.Stmt) bool {
	if l.state != stateNotFound {
		return false
	}

	local, ok := stmt.Data.(*js_ast.SLocal)
	if !ok {
		return true
	}

	for _, decl := range local.Decls {
		id, ok := decl.Binding.Data.(*js_ast.BIdentifier)
		if !ok || id.Name != l.opts.Variable || decl.Value == nil {
			continue
		}
		newExpr, ok := decl.Value.Data.(*js_ast.ENew)
		if !ok {
			continue
		}
		callee, ok := newExpr.Target.Data.(*js_ast.EIdentifier)
		if !ok || callee.Name != l.opts.Constructor {
			continue
		}

		if len(newExpr.Args) == 0 {
			l.state = stateFoundError
			l.reason = fmt.Sprintf("\"new %s(...)\" has no arguments, expected a trailing options object", l.opts.Constructor)
			return false
		}
		object, ok := newExpr.Args[len(newExpr.Args)-1].Data.(*js_ast.EObject)
		if !ok {
			l.state = stateFoundError
			l.reason = fmt.Sprintf("the last argument of \"new %s(...)\" is not an object literal", l.opts.Constructor)
			return false
		}

		l.state = stateFound
		l.options = object
		return false
	}

	return true
}

func (l *liveSocketLocator) VisitExpr(expr *js_ast.Expr) bool {
	return false
}

func (l *liveSocketLocator) err() error {
	switch l.state {
	case stateNotFound:
		return fmt.Errorf("no %q binding initialized with \"new %s(...)\": %w",
			l.opts.Variable, l.opts.Constructor, ErrNotFound)
	case stateFoundError:
		return fmt.Errorf("%s: %w", l.reason, ErrMalformed)
	}
	return nil
}

func locateLiveSocket(tree *js_ast.AST, opts LocatorOptions) *liveSocketLocator {
	locator := &liveSocketLocator{opts: opts.withDefaults()}
	js_ast.WalkStmts(locator, tree.Body)
	return locator
}

// FindLiveSocket reports whether the tree contains a well-formed live-socket
// declaration. Not-found and malformed both report false with the error
// saying which.
func FindLiveSocket(tree *js_ast.AST, opts LocatorOptions) error {
	return locateLiveSocket(tree, opts).err()
}

// ExtendHooks adds the given members to the "hooks" property of the options
// object. A name of the form "...X" is a spread of the identifier X; any
// other name is a shorthand property. Members already present are not added
// again. When the hooks value is an identifier it is replaced by an object
// literal spreading that identifier; when it is any other non-object
// expression the call succeeds without changing it. A missing hooks
// property is created.
func ExtendHooks(tree *js_ast.AST, opts LocatorOptions, names []string) error {
	locator := locateLiveSocket(tree, opts)
	if err := locator.err(); err != nil {
		return err
	}
	options := locator.options

	prop := findHooksProperty(options)
	if prop == nil {
		value := js_ast.Expr{Data: hookObject(nil, names)}
		options.Properties = append(options.Properties, js_ast.Property{
			Key:   js_ast.Expr{Data: &js_ast.EIdentifier{Name: "hooks"}},
			Value: &value,
		})
		return nil
	}

	switch value := prop.Value.Data.(type) {
	case *js_ast.EObject:
		appendHookMembers(value, names)

	case *js_ast.EIdentifier:
		// "hooks: hooks" becomes "hooks: { ...hooks, ... }"
		replacement := js_ast.Expr{Data: hookObject(value, names)}
		prop.Value = &replacement
	}

	return nil
}

// RemoveHookMembers removes the named shorthand members and identifier
// spreads ("...X") from an inline hooks object literal. Key-value and
// computed properties are never removed, and a hooks value that is not an
// inline object literal is left alone.
func RemoveHookMembers(tree *js_ast.AST, opts LocatorOptions, names []string) error {
	locator := locateLiveSocket(tree, opts)
	if err := locator.err(); err != nil {
		return err
	}

	prop := findHooksProperty(locator.options)
	if prop == nil {
		return nil
	}
	object, ok := prop.Value.Data.(*js_ast.EObject)
	if !ok {
		return nil
	}

	doomed := map[string]bool{}
	for _, name := range names {
		doomed[name] = true
	}

	kept := object.Properties[:0]
	for _, property := range object.Properties {
		if name, ok := shorthandName(property); ok && doomed[name] {
			continue
		}
		if name, ok := identifierSpreadName(property); ok && doomed["..."+name] {
			continue
		}
		kept = append(kept, property)
	}
	object.Properties = kept
	return nil
}

// The non-computed property named "hooks", whether the key is an identifier
// or a string literal.
func findHooksProperty(object *js_ast.EObject) *js_ast.Property {
	for i := range object.Properties {
		property := &object.Properties[i]
		if property.Kind != js_ast.PropertyNormal || property.IsComputed || property.Value == nil {
			continue
		}
		switch key := property.Key.Data.(type) {
		case *js_ast.EIdentifier:
			if key.Name == "hooks" {
				return property
			}
		case *js_ast.EString:
			if utf16EqualsString(key.Value, "hooks") {
				return property
			}
		}
	}
	return nil
}

// Builds a hooks object literal: an optional leading spread of base plus
// the named members, deduplicated left to right.
func hookObject(base *js_ast.EIdentifier, names []string) *js_ast.EObject {
	object := &js_ast.EObject{}
	if base != nil {
		value := js_ast.Expr{Data: &js_ast.EIdentifier{Name: base.Name}}
		object.Properties = append(object.Properties, js_ast.Property{
			Kind:  js_ast.PropertySpread,
			Value: &value,
		})
	}
	appendHookMembers(object, names)
	return object
}

func appendHookMembers(object *js_ast.EObject, names []string) {
	for _, name := range names {
		if symbol, isSpread := strings.CutPrefix(name, "..."); isSpread {
			if hasIdentifierSpread(object, symbol) {
				continue
			}
			value := js_ast.Expr{Data: &js_ast.EIdentifier{Name: symbol}}
			object.Properties = append(object.Properties, js_ast.Property{
				Kind:  js_ast.PropertySpread,
				Value: &value,
			})
			continue
		}

		if hasShorthand(object, name) {
			continue
		}
		value := js_ast.Expr{Data: &js_ast.EIdentifier{Name: name}}
		object.Properties = append(object.Properties, js_ast.Property{
			Key:          js_ast.Expr{Data: &js_ast.EIdentifier{Name: name}},
			Value:        &value,
			WasShorthand: true,
		})
	}
}

func hasShorthand(object *js_ast.EObject, name string) bool {
	for _, property := range object.Properties {
		if got, ok := shorthandName(property); ok && got == name {
			return true
		}
	}
	return false
}

func hasIdentifierSpread(object *js_ast.EObject, symbol string) bool {
	for _, property := range object.Properties {
		if got, ok := identifierSpreadName(property); ok && got == symbol {
			return true
		}
	}
	return false
}

// A property whose key and value are the same identifier reads as a
// shorthand regardless of how the source spelled it.
func shorthandName(property js_ast.Property) (string, bool) {
	if property.Kind != js_ast.PropertyNormal || property.IsComputed ||
		property.IsMethod || property.Value == nil {
		return "", false
	}
	key, ok := property.Key.Data.(*js_ast.EIdentifier)
	if !ok {
		return "", false
	}
	value, ok := property.Value.Data.(*js_ast.EIdentifier)
	if !ok || value.Name != key.Name {
		return "", false
	}
	return key.Name, true
}

func identifierSpreadName(property js_ast.Property) (string, bool) {
	if property.Kind != js_ast.PropertySpread || property.Value == nil {
		return "", false
	}
	spread, ok := property.Value.Data.(*js_ast.ESpread)
	var inner js_ast.Expr
	if ok {
		inner = spread.Value
	} else {
		inner = *property.Value
	}
	id, ok := inner.Data.(*js_ast.EIdentifier)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func utf16EqualsString(text []uint16, str string) bool {
	i := 0
	for _, c := range str {
		if c > 0xFFFF {
			return false
		}
		if i >= len(text) || text[i] != uint16(c) {
			return false
		}
		i++
	}
	return i == len(text)
}
