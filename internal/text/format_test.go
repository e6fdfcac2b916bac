package text

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeItem(t *testing.T) {
	f := NewFormatter(7500)
	assert.Equal(t,
		`<a href="itemref://161045/161045/120">Instruction Disc (Notum Siphon)</a>`,
		f.MakeItem(161045, 161045, 120, "Instruction Disc (Notum Siphon)"))
}

func TestMakeChatCmd(t *testing.T) {
	f := NewFormatter(7500)

	t.Run("Plain command", func(t *testing.T) {
		assert.Equal(t, `<a href='chatcmd:///tell Bot disc heal'>Heal</a>`,
			f.MakeChatCmd("Heal", "/tell Bot disc heal"))
	})

	t.Run("Single quotes are escaped", func(t *testing.T) {
		link := f.MakeChatCmd("Kael's", "/tell Bot disc Kael's")
		assert.Equal(t, `<a href='chatcmd:///tell Bot disc Kael&#39;s'>Kael's</a>`, link)
	})
}

func TestMakeBlob_SinglePage(t *testing.T) {
	f := NewFormatter(7500)

	pages := f.MakeBlob("3 matches", `line "one"`+"\n"+PageBreak+"line two", "Pick one")

	require.Len(t, pages, 1)
	page := pages[0]
	assert.True(t, strings.HasPrefix(page, `<a href="text://<header>Pick one<end>`+"\n\n"))
	assert.True(t, strings.HasSuffix(page, `">3 matches</a>`))
	assert.Contains(t, page, "line &quot;one&quot;")
	assert.NotContains(t, page, PageBreak)
	assert.NotContains(t, page, "Page 1")
}

func TestMakeBlob_DefaultHeader(t *testing.T) {
	f := NewFormatter(7500)
	pages := f.MakeBlob("Results", "body", "")
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], "<header>Results<end>")
}

func TestMakeBlob_MultiPage(t *testing.T) {
	f := NewFormatter(512)

	entries := make([]string, 40)
	for i := range entries {
		entries[i] = "Instruction Disc entry with a reasonably long name"
	}
	content := strings.Join(entries, "\n"+PageBreak)

	pages := f.MakeBlob("40 matches", content, "Choose")
	require.Greater(t, len(pages), 1)

	num := len(pages)
	for i, page := range pages {
		assert.LessOrEqual(t, len(page), 512, "page %d too large", i+1)
		assert.Contains(t, page, `">40 matches</a> (Page <highlight>`)
		assert.True(t, strings.HasSuffix(page, " / "+strconv.Itoa(num)+"<end>)"))
		assert.NotContains(t, page, PageBreak)
	}
	assert.Contains(t, pages[0], "<header>Choose<end>")
	assert.Contains(t, pages[1], "<header>Choose (Page 2 / "+strconv.Itoa(num)+")<end>")

	// No entry is lost across pages
	total := 0
	for _, page := range pages {
		total += strings.Count(page, "Instruction Disc entry")
	}
	assert.Equal(t, 40, total)
}

func TestMakeBlob_PagesNeverExceedLimit(t *testing.T) {
	f := NewFormatter(1024)

	entries := make([]string, 60)
	for i := range entries {
		name := fmt.Sprintf("Instruction Disc (Nano Programming Boost %d)", i)
		ref := f.MakeItem(211550+i, 211550+i, 200, name)
		entries[i] = f.MakeChatCmd(name, "/tell Discbot disc "+ref)
	}
	name := "60 matches matching your search"
	pages := f.MakeBlob(name, strings.Join(entries, "\n"+PageBreak), "Multiple matches, please choose one")

	// More than nine pages, so the counter needs two digits.
	require.Greater(t, len(pages), 9)

	joined := strings.Join(pages, "")
	for i, page := range pages {
		assert.LessOrEqual(t, len(page), 1024, "page %d too large", i+1)
	}
	for i, entry := range entries {
		assert.Equal(t, 1, strings.Count(joined, strings.ReplaceAll(entry, `"`, "&quot;")), "entry %d split or lost", i)
	}
}

func TestPaginate(t *testing.T) {
	t.Run("Fits in one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"a\nb\nc"}, Paginate("a\nb\nc", 100, "\n"))
	})

	t.Run("Splits on newline keeping separator", func(t *testing.T) {
		chunks := Paginate("aaaa\nbbbb\ncccc", 10, "\n")
		assert.Equal(t, []string{"aaaa\nbbbb\n", "cccc"}, chunks)
	})

	t.Run("Falls back to next symbol", func(t *testing.T) {
		chunks := Paginate("aaa bbb ccc", 8, "\n", " ")
		assert.Equal(t, []string{"aaa bbb ", "ccc"}, chunks)
	})

	t.Run("Drops custom separators", func(t *testing.T) {
		chunks := Paginate("one"+PageBreak+"two", 100, PageBreak)
		assert.Equal(t, []string{"onetwo"}, chunks)
	})

	t.Run("Hard split on rune boundary", func(t *testing.T) {
		chunks := Paginate("ääää", 3)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 3)
			assert.True(t, strings.HasPrefix(c, "ä"))
		}
		assert.Equal(t, "ääää", strings.Join(chunks, ""))
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Empty(t, Paginate("", 10, "\n"))
	})
}

func TestPagesMap(t *testing.T) {
	pages := Pages{"a", "b"}
	wrapped := pages.Map(func(p string) string { return "Found " + p + "." })

	assert.Equal(t, Pages{"Found a.", "Found b."}, wrapped)
	assert.Equal(t, Pages{"a", "b"}, pages, "Map must not modify the receiver")
	assert.Equal(t, "Found a.\nFound b.", wrapped.String())
	assert.Equal(t, Pages{"x"}, Single("x"))
}
