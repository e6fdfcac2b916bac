package text

import (
	"html"
	"regexp"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

var (
	blobPattern    = regexp.MustCompile(`(?s)<a href="text://([^"]*)">(.*?)</a>`)
	chatCmdPattern = regexp.MustCompile(`(?s)<a href='chatcmd://([^']*)'>(.*?)</a>`)
	itemRefPattern = regexp.MustCompile(`(?is)<a href=["']itemref://(\d+)/(\d+)/(\d+)["']>(.*?)</a>`)
	headerPattern  = regexp.MustCompile(`<header>(.*?)<end>`)
)

// tagStyles maps chat markup tags to gookit/color tags. <end> must be
// translated after every opening tag.
var tagStyles = func() *orderedmap.OrderedMap[string, string] {
	m := orderedmap.NewOrderedMap[string, string]()
	m.Set(TagHeader, "<fg=yellow;op=bold>")
	m.Set(TagHighlight, "<fg=cyan>")
	m.Set(TagRed, "<fg=red>")
	m.Set(TagGreen, "<fg=green>")
	m.Set(TagEnd, "</>")
	return m
}()

// Renderer turns chat markup into terminal text. Blobs are unfolded inline and
// indented, links show their label and target.
type Renderer struct {
	useColor bool
	indent   string
}

// NewRenderer returns a Renderer. With useColor false all styling is stripped.
func NewRenderer(useColor bool) *Renderer {
	return &Renderer{useColor: useColor, indent: "  "}
}

// RenderPages renders every page and separates them with a blank line.
func (r *Renderer) RenderPages(pages Pages) string {
	out := make([]string, 0, len(pages))
	for _, page := range pages {
		out = append(out, r.Render(page))
	}
	return strings.Join(out, "\n\n")
}

// Render converts a single message.
func (r *Renderer) Render(markup string) string {
	tagged := r.expand(markup)
	if r.useColor {
		return color.Render(tagged)
	}
	return color.ClearTag(tagged)
}

// expand resolves links and markup tags into gookit/color tags.
func (r *Renderer) expand(markup string) string {
	out := blobPattern.ReplaceAllStringFunc(markup, func(m string) string {
		parts := blobPattern.FindStringSubmatch(m)
		body := r.expand(html.UnescapeString(parts[1]))
		return "<fg=cyan;op=underscore>" + parts[2] + "</>\n" + r.indentLines(body)
	})

	out = chatCmdPattern.ReplaceAllStringFunc(out, func(m string) string {
		parts := chatCmdPattern.FindStringSubmatch(m)
		target := itemRefPattern.ReplaceAllString(html.UnescapeString(parts[1]), "[$4]")
		return "<op=underscore>" + parts[2] + "</> <fg=magenta>(" + target + ")</>"
	})

	out = itemRefPattern.ReplaceAllStringFunc(out, func(m string) string {
		parts := itemRefPattern.FindStringSubmatch(m)
		return "<fg=green>" + parts[4] + "</> <fg=blue>[QL " + parts[3] + "]</>"
	})

	out = headerPattern.ReplaceAllStringFunc(out, func(m string) string {
		title := headerPattern.FindStringSubmatch(m)[1]
		underline := strings.Repeat("─", runewidth.StringWidth(title))
		return TagHeader + title + TagEnd + "\n" + underline
	})

	for el := tagStyles.Front(); el != nil; el = el.Next() {
		out = strings.ReplaceAll(out, el.Key, el.Value)
	}
	return out
}

func (r *Renderer) indentLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = r.indent + line
		}
	}
	return strings.Join(lines, "\n")
}
