package format

import (
	"fmt"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"

	"github.com/jsmend/jsmend/internal/js_parser"
	"github.com/jsmend/jsmend/internal/js_printer"
	"github.com/jsmend/jsmend/internal/logger"
)

// JS reformats JavaScript source into the printer's canonical shape.
// Comments survive; the original whitespace layout does not.
func JS(source string) (string, error) {
	log := logger.NewDeferLog()
	src := logger.Source{PrettyPath: "<source>", Contents: source}
	tree, ok := js_parser.Parse(log, src, js_parser.Options{})
	if !ok {
		return "", fmt.Errorf("parsing javascript: %s", logger.MsgsToText(log.Done(), &src))
	}
	return js_printer.Print(tree), nil
}

// JSFormatted reports whether the source is already in canonical shape,
// ignoring leading and trailing whitespace.
func JSFormatted(source string) (bool, error) {
	formatted, err := JS(source)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(formatted) == strings.TrimSpace(source), nil
}

// CSS reformats stylesheet text through the esbuild transform pipeline,
// non-minified.
func CSS(source string) (string, error) {
	result := esbuild.Transform(source, esbuild.TransformOptions{
		Loader: esbuild.LoaderCSS,
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("formatting css: %s", result.Errors[0].Text)
	}
	if len(result.Warnings) > 0 {
		return "", fmt.Errorf("formatting css: %s", result.Warnings[0].Text)
	}
	return string(result.Code), nil
}

// CSSFormatted reports whether the stylesheet is already formatted,
// ignoring leading and trailing whitespace.
func CSSFormatted(source string) (bool, error) {
	formatted, err := CSS(source)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(formatted) == strings.TrimSpace(source), nil
}
