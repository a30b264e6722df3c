package mdpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// newMarkdown builds the goldmark instance used for all conversions.
// GFM covers tables, strikethrough, task lists and autolinks. Raw HTML
// passes through so reports can embed custom markup.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// Render converts markdown source to a complete standalone HTML
// document styled with css. Relative image destinations are resolved
// against baseDir so the document renders correctly from any location;
// a destination is only rewritten when the resolved file exists.
// An empty baseDir leaves image destinations untouched.
func Render(src []byte, baseDir, css string) (string, error) {
	md := newMarkdown()

	doc := md.Parser().Parse(text.NewReader(src))
	if baseDir != "" {
		resolveImages(doc, baseDir)
	}

	var body bytes.Buffer
	if err := md.Renderer().Render(&body, src, doc); err != nil {
		return "", fmt.Errorf("mdpdf: rendering markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n<style>\n")
	b.WriteString(css)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("\n</body>\n</html>\n")
	return b.String(), nil
}

// resolveImages rewrites relative image destinations in the parsed
// document to absolute paths under baseDir.
func resolveImages(doc ast.Node, baseDir string) {
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}
		if resolved, ok := resolvePath(string(img.Destination), baseDir); ok {
			img.Destination = []byte(resolved)
		}
		return ast.WalkContinue, nil
	})
}

// resolvePath resolves dest against baseDir. It reports false when the
// destination is already absolute, points at a remote or data resource,
// or does not exist on disk.
func resolvePath(dest, baseDir string) (string, bool) {
	if dest == "" || filepath.IsAbs(dest) {
		return "", false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "data:") {
		return "", false
	}
	resolved := filepath.Join(baseDir, filepath.FromSlash(dest))
	if _, err := os.Stat(resolved); err != nil {
		return "", false
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(abs), true
}
