// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/logseq-export/internal/outline"
)

type materializeCall struct {
	name   string
	subdir string
}

// recordingMaterializer implements Materializer for testing.
type recordingMaterializer struct {
	calls []materializeCall
	err   error
}

func (m *recordingMaterializer) Materialize(name, subdir string) error {
	m.calls = append(m.calls, materializeCall{name: name, subdir: subdir})
	return m.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func renderString(t *testing.T, doc string, opts Options) *Document {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	out, err := Render(outline.SplitLines(doc), opts)
	require.NoError(t, err)
	return out
}

func indents(d *Document) []int {
	out := make([]int, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.Indent
	}
	return out
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "nested list absorbs first step",
			in:   "- A\n\t- B\n\t\t- C\n",
			want: "A\n- B\n\t- C\n",
		},
		{
			name: "siblings joined with line break",
			in:   "- a\n- b\n",
			want: "a\\\nb\n",
		},
		{
			name: "wrapped text merges into paragraph",
			in:   "- first\n  second\n- third\n",
			want: "first\\\nsecond\n\nthird\n",
		},
		{
			name: "dedent closes nested block",
			in:   "- a\n\t- b\n\t\t- c\n- d\n",
			want: "a\n- b\n\t- c\n\n- d\n",
		},
		{
			name: "heading resets depth",
			in:   "- # Heading\n\t- child\n",
			want: "# Heading\nchild\n",
		},
		{
			name: "heading followed by deep indent",
			in:   "# T\n\t\t- deep\n\t\t\t- deeper\n",
			want: "# T\ndeep\n- deeper\n",
		},
		{
			name: "quote",
			in:   "- > quoted\n",
			want: "> quoted\n",
		},
		{
			name: "top-level task",
			in:   "- TODO buy milk\n",
			want: "**&#x2610; TODO** buy milk\n",
		},
		{
			name: "nested done task keeps bullet",
			in:   "- parent\n\t- DONE call mom\n",
			want: "parent\n- **&#x2611;** ~~call mom~~\n",
		},
		{
			name: "code block passes through",
			in:   "- ```go\n  fmt.Println(\"- TODO x\")\n  ```\n- after\n",
			want: "```go\nfmt.Println(\"- TODO x\")\n```\nafter\n",
		},
		{
			name: "collapsed property dropped",
			in:   "- parent\n  collapsed:: true\n\t- child\n",
			want: "parent\\\n- child\n",
		},
		{
			name: "logbook dropped through end marker",
			in:   "- task\n  :LOGBOOK:\n  CLOCK: [2024-01-01 Mon 10:00]\n  :END:\n- next\n",
			want: "task\\\nnext\n",
		},
		{
			name: "empty bullet renders break tag",
			in:   "- \n",
			want: "<br>\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := renderString(t, tt.in, Options{})
			assert.Equal(t, tt.want, doc.String())
		})
	}
}

func TestRender_NestedListIndents(t *testing.T) {
	doc := renderString(t, "- A\n\t- B\n\t\t- C\n", Options{})
	assert.Equal(t, []int{0, 0, 1}, indents(doc))
}

func TestRender_TitleAlwaysAtRoot(t *testing.T) {
	doc := renderString(t, "- a\n\t- b\n\t\t- c\n\t\t- # Title\n\t\t\t- after\n", Options{})
	require.Len(t, doc.Lines, 5)
	assert.Equal(t, 0, doc.Lines[3].Indent, "title")
	assert.Equal(t, 0, doc.Lines[4].Indent, "line after title")
	for _, l := range doc.Lines {
		assert.GreaterOrEqual(t, l.Indent, 0)
	}
}

func TestRender_NoBreakTags(t *testing.T) {
	doc := renderString(t, "- \n", Options{NoBreakTags: true})
	assert.Equal(t, "\n\n", doc.String())
}

func TestRender_LineCounts(t *testing.T) {
	doc := renderString(t, "- task\n  :LOGBOOK:\n  CLOCK: x\n  :END:\n- next\n  collapsed:: true\n", Options{})
	assert.Equal(t, 6, doc.InputLines)
	assert.Equal(t, 4, doc.ElidedLines)
	assert.Len(t, doc.Lines, 2)
}

func TestRender_UnterminatedLogbook(t *testing.T) {
	doc := renderString(t, "- task\n  :LOGBOOK:\n  CLOCK: x\n- never closed\n", Options{})
	assert.Equal(t, "task\\\n", doc.String())
	assert.Equal(t, 3, doc.ElidedLines)
}

func TestRender_Assets(t *testing.T) {
	m := &recordingMaterializer{}
	doc := renderString(t,
		"- ![pic](../assets/img.png)\n- {{renderer :drawio, flow.svg}}\n- ![again](../assets/img.png)\n",
		Options{Materializer: m})

	assert.Equal(t, "![pic](assets/img.png)\\\n![flow.svg](assets/flow.svg)\\\n![again](assets/img.png)\n", doc.String())
	assert.Equal(t, []string{"img.png", "flow.svg"}, doc.Assets)
	assert.Equal(t, []materializeCall{
		{name: "img.png", subdir: ""},
		{name: "flow.svg", subdir: DefaultDrawioSubdir},
	}, m.calls)
}

func TestRender_DrawioSubdirOverride(t *testing.T) {
	m := &recordingMaterializer{}
	renderString(t, "- {{renderer :drawio, flow.svg}}\n", Options{Materializer: m, DrawioSubdir: "drawio"})
	require.Len(t, m.calls, 1)
	assert.Equal(t, "drawio", m.calls[0].subdir)
}

func TestRender_MaterializerErrorAborts(t *testing.T) {
	m := &recordingMaterializer{err: errors.New("no such asset")}
	_, err := Render(outline.SplitLines("- ![pic](../assets/missing.png)\n"), Options{Materializer: m, Logger: quietLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such asset")
}

func TestRender_NearMissLeftUnchanged(t *testing.T) {
	var logs bytes.Buffer
	m := &recordingMaterializer{}
	doc := renderString(t, "- see ../assets for files\n", Options{
		Materializer: m,
		Logger:       slog.New(slog.NewTextHandler(&logs, nil)),
	})

	assert.Equal(t, "see ../assets for files\n", doc.String())
	assert.Empty(t, m.calls)
	assert.Contains(t, logs.String(), "directive pattern not matched")
}

func TestRender_Unclassifiable(t *testing.T) {
	_, err := Render(outline.SplitLines("- ok\nzz\n"), Options{Logger: quietLogger()})
	var cerr *outline.ClassificationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Number)
}

func TestRender_CodeFenceToggleBalanced(t *testing.T) {
	lines, err := outline.Parse(outline.SplitLines("- ```\n  a\n  ```\n- text\n\t- ```sh\n\t  ls\n\t  ```\n"))
	require.NoError(t, err)

	r := &renderer{
		log:   quietLogger(),
		lines: lines,
		doc:   &Document{},
		seen:  map[string]bool{},
	}
	require.NoError(t, r.run())
	assert.False(t, r.st.inCode)
}

func TestRewriteTask(t *testing.T) {
	r := &renderer{log: quietLogger()}
	tests := []struct {
		in   string
		want string
	}{
		{"- TODO buy milk", "- **&#x2610; TODO** buy milk"},
		{"- DOING write report", "- **&#x231B; DOING** write report"},
		{"- DONE call mom", "- **&#x2611;** ~~call mom~~"},
		{"- LATER read book", "- **&#x23F2; LATER** read book"},
		{"- NOW ship it", "- **&#x23F0; NOW** ship it"},
		{"\t\t- TODO tabs kept", "\t\t- **&#x2610; TODO** tabs kept"},
		{"  text with - TODO inside", "  text with - TODO inside"},
		{"- plain item", "- plain item"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.rewriteTask(tt.in), "input %q", tt.in)
	}
}

func TestApplyDirective_AssetLink(t *testing.T) {
	m := &recordingMaterializer{}
	r := &renderer{
		opts: Options{Materializer: m},
		log:  quietLogger(),
		doc:  &Document{},
		seen: map[string]bool{},
	}
	got, err := r.applyDirective("![x](../assets/img.png)")
	require.NoError(t, err)
	assert.Equal(t, "![x](assets/img.png)", got)
	assert.Equal(t, []materializeCall{{name: "img.png"}}, m.calls)
}

func TestDropPrefix(t *testing.T) {
	assert.Equal(t, "item", dropPrefix("- item", 2))
	assert.Equal(t, "", dropPrefix("-", 2))
	assert.Equal(t, "ü", dropPrefix("éàü", 2))
}
