// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"log/slog"
	"strings"

	"github.com/pdiddy/logseq-export/internal/outline"
)

const (
	collapsedProperty = "collapsed:: true"
	logbookStart      = ":LOGBOOK:"
	logbookEnd        = ":END:"

	breakTag = "<br>"
)

// OutputLine is one rewritten line and its output depth in tabs. Text may
// itself end in a line break or a trailing backslash.
type OutputLine struct {
	Text   string
	Indent int
}

func (l OutputLine) String() string {
	return strings.Repeat("\t", l.Indent) + l.Text + "\n"
}

// Document is the result of rendering one page.
type Document struct {
	Lines []OutputLine

	// Assets lists the asset names referenced by the page, in first-seen
	// order, without duplicates.
	Assets []string

	// InputLines is the number of physical lines read.
	InputLines int

	// ElidedLines counts lines dropped as Logseq-only metadata.
	ElidedLines int
}

// String assembles the output lines into the final Markdown text.
func (d *Document) String() string {
	var b strings.Builder
	for _, l := range d.Lines {
		b.WriteString(l.String())
	}
	return b.String()
}

// Render classifies and rewrites the lines of one page. Lines keep their
// terminators as returned by outline.SplitLines. When opts.Materializer is
// nil, asset links are rewritten without copying anything.
func Render(lines []string, opts Options) (*Document, error) {
	classified, err := outline.Parse(lines)
	if err != nil {
		return nil, err
	}
	return render(classified, opts)
}

func render(lines []outline.ClassifiedLine, opts Options) (*Document, error) {
	r := &renderer{
		opts:  opts,
		log:   opts.logger(),
		lines: lines,
		doc:   &Document{InputLines: len(lines)},
		seen:  map[string]bool{},
	}
	if err := r.run(); err != nil {
		return nil, err
	}
	return r.doc, nil
}

type renderer struct {
	opts  Options
	log   *slog.Logger
	lines []outline.ClassifiedLine
	st    state
	doc   *Document
	seen  map[string]bool
}

func (r *renderer) run() error {
	for i := range r.lines {
		if r.st.skip > 0 {
			r.st.skip--
			r.doc.ElidedLines++
			continue
		}

		line := r.lines[i]
		r.log.Debug("line", "n", i, "kind", line.Kind, "role", line.Role, "content", line.Content)

		if line.Kind == outline.KindCodeBlockMarker {
			r.st.inCode = !r.st.inCode
		} else {
			content, err := r.applyDirective(line.Content)
			if err != nil {
				return err
			}
			line.Content = content
		}

		r.st.advance(r.lines, i)

		text, keep := r.rewrite(i, line)
		if !keep {
			r.doc.ElidedLines++
			continue
		}
		r.doc.Lines = append(r.doc.Lines, OutputLine{Text: text, Indent: r.st.targetIndent})
		r.st.commit(line.Role)
	}
	return nil
}

// rewrite produces the text of line i. It reports false when the line is
// Logseq metadata and must not appear in the output.
func (r *renderer) rewrite(i int, line outline.ClassifiedLine) (string, bool) {
	if r.st.inCode {
		return dropPrefix(line.Content, 2), true
	}

	var next *outline.ClassifiedLine
	if i+1 < len(r.lines) {
		next = &r.lines[i+1]
	}

	var text string
	switch line.Kind {
	case outline.KindTitle:
		text = line.Content
		if idx := strings.Index(text, "#"); idx >= 0 {
			text = text[idx:]
		}
		r.st.listDepth = 0

	case outline.KindList:
		if r.st.listDepth > 0 {
			// Nested lists keep their bullet; a blank line closes the block.
			text = line.Content
			if next != nil && next.Indent < line.Indent {
				text += "\n"
			}
		} else {
			text = dropPrefix(line.Content, 2)
			if next != nil && next.Kind == outline.KindList && next.Indent == line.Indent {
				text += `\`
			}
		}

	case outline.KindText:
		if strings.Contains(line.Content, collapsedProperty) {
			r.log.Debug("removing logseq property", "content", line.Content)
			return "", false
		}
		if strings.Contains(line.Content, logbookStart) {
			r.log.Debug("removing logseq logbook", "content", line.Content)
			r.st.skip = r.logbookSpan(i)
			return "", false
		}
		text = dropPrefix(line.Content, 2)
		if next != nil && next.Kind != line.Kind {
			text += "\n"
		}

	case outline.KindEmpty:
		if r.opts.NoBreakTags {
			text = "\n"
		} else {
			text = breakTag + "\n"
		}

	default:
		text = dropPrefix(line.Content, 2)
	}

	if line.Kind != outline.KindCodeBlockMarker && line.Kind != outline.KindTitle &&
		next != nil && next.Kind == outline.KindText {
		text += `\`
	}
	return text, true
}

// logbookSpan counts the lines after i that belong to the logbook opened
// at line i, up to and including the closing :END: line.
func (r *renderer) logbookSpan(i int) int {
	n := 0
	for l := i; l < len(r.lines); l++ {
		if strings.Contains(r.lines[l].Content, logbookEnd) {
			break
		}
		n++
	}
	return n
}

func (r *renderer) materialize(name, subdir string) error {
	if r.seen[name] {
		return nil
	}
	r.seen[name] = true
	r.doc.Assets = append(r.doc.Assets, name)

	if r.opts.Materializer == nil {
		return nil
	}
	r.log.Debug("importing asset", "name", name, "subdir", subdir)
	return r.opts.Materializer.Materialize(name, subdir)
}

func (r *renderer) drawioSubdir() string {
	if r.opts.DrawioSubdir != "" {
		return r.opts.DrawioSubdir
	}
	return DefaultDrawioSubdir
}

// dropPrefix removes the first n characters of s.
func dropPrefix(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
