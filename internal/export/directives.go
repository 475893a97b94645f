// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	assetTrigger  = "../assets"
	drawioTrigger = "{{renderer :drawio,"

	// DefaultDrawioSubdir is where the Logseq draw.io plugin keeps its
	// SVG files, relative to the graph's assets directory.
	DefaultDrawioSubdir = "storages/logseq-drawio-plugin"
)

var (
	assetLinkRe  = regexp.MustCompile(`^(.*\[.*\]\()(\.\./)assets/(.*)\)`)
	drawioLinkRe = regexp.MustCompile(`^(.*)\{\{renderer :drawio, (.*\.svg)\}\}`)
)

// taskMarker rewrites one Logseq task keyword into a bold status glyph.
// Glyphs are numeric character references so the output stays ASCII.
type taskMarker struct {
	keyword  string
	template string // %s receives the task text
	trigger  string
	pattern  *regexp.Regexp
}

func newTaskMarker(keyword, template string) taskMarker {
	return taskMarker{
		keyword:  keyword,
		template: template,
		trigger:  "- " + keyword + " ",
		pattern:  regexp.MustCompile(`^(\t*)- ` + keyword + ` (.*)$`),
	}
}

// taskMarkers is scanned in order; the first keyword present decides.
var taskMarkers = []taskMarker{
	newTaskMarker("TODO", "**&#x2610; TODO** %s"),
	newTaskMarker("DOING", "**&#x231B; DOING** %s"),
	newTaskMarker("DONE", "**&#x2611;** ~~%s~~"),
	newTaskMarker("LATER", "**&#x23F2; LATER** %s"),
	newTaskMarker("NOW", "**&#x23F0; NOW** %s"),
}

// applyDirective expands at most one inline directive in content: an asset
// link, a draw.io renderer macro or a task marker, in that priority. A
// line that carries a trigger but does not match the directive's full
// pattern is returned unchanged.
func (r *renderer) applyDirective(content string) (string, error) {
	switch {
	case strings.Contains(content, assetTrigger):
		m := assetLinkRe.FindStringSubmatch(content)
		if m == nil {
			r.unmatched("asset link", content)
			return content, nil
		}
		name := m[3]
		if err := r.materialize(name, ""); err != nil {
			return "", err
		}
		return m[1] + "assets/" + name + ")", nil

	case strings.Contains(content, drawioTrigger):
		m := drawioLinkRe.FindStringSubmatch(content)
		if m == nil {
			r.unmatched("drawio renderer", content)
			return content, nil
		}
		name := m[2]
		if err := r.materialize(name, r.drawioSubdir()); err != nil {
			return "", err
		}
		return m[1] + "![" + name + "](assets/" + name + ")", nil
	}

	return r.rewriteTask(content), nil
}

func (r *renderer) rewriteTask(content string) string {
	for _, tm := range taskMarkers {
		if !strings.Contains(content, tm.trigger) {
			continue
		}
		m := tm.pattern.FindStringSubmatch(content)
		if m == nil {
			r.unmatched(tm.keyword+" marker", content)
			return content
		}
		return m[1] + "- " + fmt.Sprintf(tm.template, m[2])
	}
	return content
}

func (r *renderer) unmatched(what, content string) {
	r.log.Warn("directive pattern not matched, line left unchanged", "directive", what, "content", content)
}
