// Package highlight applies Chroma syntax highlighting to individual diff
// lines, rendered with lipgloss so foreground color and the diff
// removed/added background composite correctly.
package highlight

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter tokenizes and colors single lines of code against one
// Chroma style, caching a lexer per file extension it has seen.
type Highlighter struct {
	style  *chroma.Style
	lexers sync.Map // ext -> chroma.Lexer
}

// New builds a Highlighter for the named Chroma style, falling back to
// "monokai" if the name is unknown.
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Get("monokai")
	}
	return &Highlighter{style: style}
}

func (h *Highlighter) lexerFor(filename string) chroma.Lexer {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = filepath.Base(filename)
	}
	if cached, ok := h.lexers.Load(ext); ok {
		return cached.(chroma.Lexer)
	}
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	h.lexers.Store(ext, lexer)
	return lexer
}

// Line tokenizes content as filename's language and renders it with
// Chroma foreground colors composited over bgColor (empty for no
// background override).
func (h *Highlighter) Line(content, filename, bgColor string) string {
	if h.style == nil || content == "" {
		return content
	}
	lexer := h.lexerFor(filename)
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var b strings.Builder
	for _, token := range iterator.Tokens() {
		fg := foregroundHex(h.style.Get(token.Type))
		style := lipgloss.NewStyle()
		if fg != "" {
			style = style.Foreground(lipgloss.Color(fg))
		}
		if bgColor != "" {
			style = style.Background(lipgloss.Color(bgColor))
		}
		b.WriteString(style.Render(token.Value))
	}
	return b.String()
}

func foregroundHex(entry chroma.StyleEntry) string {
	if entry.Colour.IsSet() {
		return fmt.Sprintf("#%06x", entry.Colour&0xFFFFFF)
	}
	return ""
}
