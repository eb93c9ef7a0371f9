package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/matzehuels/chartkit/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/doc.html"))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type docConfig struct {
	preview []byte
}

// DocOption configures [RenderDoc].
type DocOption func(*docConfig)

// WithPreview embeds a rendered SVG below the documentation body.
func WithPreview(svg []byte) DocOption {
	return func(c *docConfig) { c.preview = svg }
}

// Markdown returns the documentation page of c as GitHub-flavored markdown:
// description, props table, examples and installation steps.
func Markdown(c Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", c.Title, c.Description)
	fmt.Fprintf(&b, "**Category:** %s", c.Category)
	if c.Renderable() {
		fmt.Fprintf(&b, " · **Kind:** `%s`", c.Kind)
	}
	b.WriteString("\n\n")

	if len(c.Props) > 0 {
		b.WriteString("## Props\n\n| Name | Type | Required | Default | Description |\n|---|---|---|---|---|\n")
		for _, p := range c.Props {
			req := ""
			if p.Required {
				req = "yes"
			}
			fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s | %s |\n",
				p.Name, cell(p.Type), req, cell(p.Default), cell(p.Description))
		}
		b.WriteString("\n")
	}

	if len(c.Examples) > 0 {
		b.WriteString("## Examples\n\n")
		for _, ex := range c.Examples {
			fmt.Fprintf(&b, "### %s\n\n", ex.Title)
			if ex.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", ex.Description)
			}
			fmt.Fprintf(&b, "```yaml\n%s```\n\n", ensureNewline(ex.Code))
		}
	}

	if inst := c.Installation; len(inst.Dependencies) > 0 || len(inst.Steps) > 0 {
		b.WriteString("## Installation\n\n")
		for _, d := range inst.Dependencies {
			fmt.Fprintf(&b, "- `%s`\n", d)
		}
		if len(inst.Dependencies) > 0 {
			b.WriteString("\n")
		}
		for i, s := range inst.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	return b.String()
}

// cell escapes pipes so a value stays inside its table cell.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// RenderDoc renders the documentation page of c as a standalone HTML page.
func RenderDoc(c Component, opts ...DocOption) ([]byte, error) {
	var cfg docConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(c)), &body); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert docs for %s", c.ID)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Title   string
		Body    template.HTML
		Preview template.HTML
	}{
		Title: c.Title,
		// goldmark escapes raw HTML by default; the preview is our own SVG.
		Body:    template.HTML(body.String()),
		Preview: template.HTML(cfg.preview),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render docs page for %s", c.ID)
	}
	return page.Bytes(), nil
}

// RenderDocByID looks up id and renders its page.
func RenderDocByID(id string, opts ...DocOption) ([]byte, error) {
	c, err := ByID(id)
	if err != nil {
		return nil, err
	}
	return RenderDoc(c, opts...)
}
