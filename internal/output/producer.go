// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/azpipe/azpipe/internal/config"
	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/result"
)

// Producer renders envelopes and writes them to a stream. One Producer serves
// one CLI invocation.
type Producer struct {
	// NoColor forces plain output even on a terminal.
	NoColor bool

	// Style is the chroma style for the highlighted formats.
	Style string

	// Profile is the terminal color depth used to pick a chroma formatter.
	Profile termenv.Profile

	// Encoding is the charset written to the stream. Nil writes UTF-8.
	Encoding encoding.Encoding

	// EncodingName labels Encoding in warnings.
	EncodingName string

	// IsTerminal reports whether w is an interactive terminal. Nil uses the
	// writer's file descriptor.
	IsTerminal func(w io.Writer) bool

	list         *ListRenderer
	encodeWarned bool
}

// NewProducer returns a Producer configured from core.no_color,
// core.color_style and core.output_encoding. AZPIPE_OUTPUT_ENCODING overrides
// the configured encoding.
func NewProducer() *Producer {
	p := &Producer{
		Profile: termenv.ColorProfile(),
		list:    NewListRenderer(),
	}

	p.NoColor, _ = config.GetBool("core.no_color", false)
	p.Style, _ = config.GetString("core.color_style", DefaultStyle)

	name, _ := config.GetString("core.output_encoding", "")
	if env := os.Getenv("AZPIPE_OUTPUT_ENCODING"); env != "" {
		name = env
	}
	if name != "" {
		if err := p.SetEncoding(name); err != nil {
			log.Warnf("ignoring output encoding: %v", err)
		}
	}

	return p
}

// SetEncoding selects the output charset by its WHATWG name or label, for
// example "windows-1252" or "latin1".
func (p *Producer) SetEncoding(name string) error {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	p.Encoding = enc
	p.EncodingName = name
	return nil
}

// Renderer returns the renderer for format.
func (p *Producer) Renderer(format Format) Renderer {
	switch format {
	case JSON:
		return JSONRenderer
	case JSONC:
		return NewHighlighter(JSONRenderer, "json", p.Style, p.Profile)
	case YAML:
		return YAMLRenderer
	case YAMLC:
		return NewHighlighter(YAMLRenderer, "yaml", p.Style, p.Profile)
	case Table:
		return TableRenderer
	case TSV:
		return TSVRenderer
	case List:
		if p.list == nil {
			p.list = NewListRenderer()
		}
		return p.list
	default:
		return NoneRenderer
	}
}

// Out renders env in format and writes the text to w in a single write.
// Highlighted formats degrade to plain ones when w is not a terminal. A
// closed pipe on the reading side is not an error.
func (p *Producer) Out(env *result.Envelope, format Format, w io.Writer) error {
	if format.Colored() && (p.NoColor || !p.isTerminal(w)) {
		log.Tracef("output: %s downgraded to %s", format, format.Plain())
		format = format.Plain()
	}

	text, err := p.Renderer(format).Render(env)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	n, err := w.Write(p.encode(text))
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			log.Debugf("output: reader went away after %s", humanize.Bytes(uint64(n)))
			return nil
		}
		return fmt.Errorf("write output: %w", err)
	}

	log.Debugf("output: wrote %s as %s", humanize.Bytes(uint64(n)), format)
	return nil
}

func (p *Producer) isTerminal(w io.Writer) bool {
	if p.IsTerminal != nil {
		return p.IsTerminal(w)
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// encode converts text to the configured charset. Text the charset cannot
// represent is written as ASCII with the other characters dropped, and a
// warning is logged once per Producer.
func (p *Producer) encode(text string) []byte {
	if p.Encoding == nil {
		return []byte(text)
	}

	out, err := p.Encoding.NewEncoder().String(text)
	if err == nil {
		return []byte(out)
	}

	if !p.encodeWarned {
		p.encodeWarned = true
		log.Warnf("Unable to encode the output with %s encoding. Unsupported characters are discarded.", p.EncodingName)
	}
	return []byte(asciiOnly(text))
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0x7f {
			return -1
		}
		return r
	}, s)
}
