// Package text renders chat markup: item references, clickable chat commands
// and collapsible blobs that are split into pages when they grow too long.
package text

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PageBreak marks a preferred split point inside blob content. It never
// reaches the rendered output.
const PageBreak = "<pagebreak>"

// Markup tags understood by chat clients and by Renderer.
const (
	TagHighlight = "<highlight>"
	TagHeader    = "<header>"
	TagRed       = "<red>"
	TagGreen     = "<green>"
	TagEnd       = "<end>"
)

// Formatter builds chat markup. The zero value is not usable; use NewFormatter.
type Formatter struct {
	maxBlobSize int
}

// NewFormatter returns a Formatter whose blobs never exceed maxBlobSize bytes.
func NewFormatter(maxBlobSize int) *Formatter {
	return &Formatter{maxBlobSize: maxBlobSize}
}

// MakeItem renders a clickable in-game item reference.
func (f *Formatter) MakeItem(lowID, highID, ql int, name string) string {
	return fmt.Sprintf(`<a href="itemref://%d/%d/%d">%s</a>`, lowID, highID, ql, name)
}

// MakeChatCmd renders a link that sends command when clicked.
func (f *Formatter) MakeChatCmd(label, command string) string {
	command = strings.ReplaceAll(command, "'", "&#39;")
	return fmt.Sprintf(`<a href='chatcmd://%s'>%s</a>`, command, label)
}

// MakeBlob renders a collapsible link called name that opens content under
// header. Content longer than the configured size is split into several
// pages, each a complete blob carrying its own page counter.
func (f *Formatter) MakeBlob(name, content, header string) Pages {
	if header == "" {
		header = name
	}
	content = strings.ReplaceAll(content, `"`, "&quot;")
	header = strings.ReplaceAll(header, `"`, "&quot;")

	// The counter width depends on the page count, so repeat until it settles.
	var chunks []string
	for guess := 1; ; {
		limit := f.pageLimit(name, header, guess)
		if limit < 1 {
			limit = 1
		}
		chunks = Paginate(content, limit, PageBreak, "\n", " ")
		if digits(len(chunks)) <= digits(guess) {
			break
		}
		guess = len(chunks)
	}

	if len(chunks) <= 1 {
		body := TagHeader + header + TagEnd + "\n\n" + strings.Join(chunks, "")
		return Single(fmt.Sprintf(`<a href="text://%s">%s</a>`, body, name))
	}

	num := len(chunks)
	pages := make(Pages, num)
	for i, chunk := range chunks {
		pageHeader := header
		if i > 0 {
			pageHeader = fmt.Sprintf("%s (Page %d / %d)", header, i+1, num)
		}
		body := TagHeader + pageHeader + TagEnd + "\n\n" + chunk
		pages[i] = fmt.Sprintf(`<a href="text://%s">%s</a> (Page %s%d / %d%s)`,
			body, name, TagHighlight, i+1, num, TagEnd)
	}
	return pages
}

// pageLimit returns how many content bytes fit on one page of a blob with
// the given name and header when it is split into at most pages pages.
func (f *Formatter) pageLimit(name, header string, pages int) int {
	link := len(`<a href="text://">`) + len(name) + len("</a>")
	body := len(TagHeader) + len(header) + len(TagEnd) + len("\n\n")
	// " (Page i / n)" is appended to the header and, highlighted, after the link.
	counter := len(" (Page  / )") + 2*digits(pages)
	return f.maxBlobSize - link - body - 2*counter - len(TagHighlight) - len(TagEnd)
}

func digits(n int) int {
	return len(strconv.Itoa(n))
}

// Paginate splits input into chunks of at most maxLength bytes. It splits on
// the first symbol, and re-splits any piece that is still too long on the
// next one. Newline and space separators stay attached to their piece; other
// symbols are dropped. Pieces that cannot be split any further are cut hard
// on a rune boundary.
func Paginate(input string, maxLength int, symbols ...string) []string {
	if maxLength <= 0 {
		return []string{input}
	}
	if len(symbols) == 0 {
		return hardSplit(input, maxLength)
	}

	symbol, rest := symbols[0], symbols[1:]
	pieces := strings.Split(input, symbol)

	var result []string
	var current strings.Builder
	for i, piece := range pieces {
		if (symbol == "\n" || symbol == " ") && i < len(pieces)-1 {
			piece += symbol
		}
		if piece == "" {
			continue
		}
		switch {
		case len(piece) > maxLength:
			if current.Len() > 0 {
				result = append(result, current.String())
				current.Reset()
			}
			result = append(result, Paginate(piece, maxLength, rest...)...)
		case current.Len()+len(piece) <= maxLength:
			current.WriteString(piece)
		default:
			result = append(result, current.String())
			current.Reset()
			current.WriteString(piece)
		}
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

func hardSplit(s string, maxLength int) []string {
	var out []string
	for len(s) > maxLength {
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxLength
		}
		out = append(out, s[:cut])
		s = s[cut:]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
