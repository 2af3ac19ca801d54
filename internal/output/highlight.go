// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"

	"github.com/azpipe/azpipe/internal/result"
)

// DefaultStyle is the chroma style used when core.color_style is unset.
const DefaultStyle = "monokai"

// Highlighter wraps a plain renderer and colors its output for a terminal.
type Highlighter struct {
	base      Renderer
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter builds a Highlighter for text produced by base. language is
// a chroma lexer name such as "json" or "yaml". Unknown style names fall back
// to chroma's default style.
func NewHighlighter(base Renderer, language, style string, profile termenv.Profile) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if style == "" {
		style = DefaultStyle
	}

	return &Highlighter{
		base:      base,
		lexer:     lexer,
		formatter: formatters.Get(formatterName(profile)),
		style:     styles.Get(style),
	}
}

// formatterName picks the chroma terminal formatter matching the color depth
// of the terminal.
func formatterName(profile termenv.Profile) string {
	formatterName := "noop" // Default to noop formatter.
	switch profile {
	case termenv.TrueColor:
		formatterName = "terminal16m"

	case termenv.ANSI256:
		formatterName = "terminal256"

	case termenv.ANSI:
		formatterName = "terminal8"
	}
	return formatterName
}

// Render renders env with the base renderer and highlights the text.
func (h *Highlighter) Render(env *result.Envelope) (string, error) {
	text, err := h.base.Render(env)
	if err != nil {
		return "", err
	}

	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("lexer tokenize: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := h.formatter.Format(buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	return buf.String(), nil
}
