package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies the site generator that produced a page.
type Framework string

// Known frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// contentRoots maps a framework to candidate selectors for its main content
// container, most specific first. Isolation narrows to the first selector
// that matches before removing boilerplate.
var contentRoots = map[Framework][]string{
	FrameworkDocusaurus: {".theme-doc-markdown", "article"},
	FrameworkMkDocs:     {".md-content article", ".md-content"},
	FrameworkSphinx:     {"div[role='main']", ".document .body"},
	FrameworkVitePress:  {".vp-doc"},
	FrameworkVuePress:   {".theme-default-content"},
	FrameworkGitBook:    {"main"},
	FrameworkNextra:     {"article main", "article"},
}

// Detect analyzes HTML and returns the identified framework.
// Returns FrameworkUnknown if the framework cannot be determined.
func Detect(html string) Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return FrameworkUnknown
	}
	return detect(doc)
}

// detect checks meta generator tags first, then framework-specific
// classes, data attributes and structural markers.
func detect(doc *goquery.Document) Framework {
	if framework := detectFromMetaGenerator(doc); framework != FrameworkUnknown {
		return framework
	}

	switch {
	case has(doc, "#__docusaurus_skipToContent_fallback"),
		has(doc, ".theme-doc-sidebar-container"),
		has(doc, "[data-rh]") && has(doc, "[data-theme]"):
		return FrameworkDocusaurus
	case has(doc, "[data-md-color-scheme]"),
		has(doc, "[data-md-component]"),
		has(doc, ".md-nav--primary"):
		return FrameworkMkDocs
	case has(doc, ".toctree-wrapper"),
		has(doc, ".wy-nav-side"),
		has(doc, ".sphinxsidebar"):
		return FrameworkSphinx
	// VitePress before VuePress: it reuses some VuePress markup.
	case has(doc, "#VPContent"), has(doc, ".VPDoc"):
		return FrameworkVitePress
	case has(doc, ".theme-default-content"),
		has(doc, ".vuepress-navbar"):
		return FrameworkVuePress
	case has(doc, "[data-testid='space.sidebar']"),
		hasGitBookClasses(doc):
		return FrameworkGitBook
	case has(doc, ".nextra-navbar"),
		has(doc, ".nextra-sidebar"):
		return FrameworkNextra
	}

	return FrameworkUnknown
}

func detectFromMetaGenerator(doc *goquery.Document) Framework {
	generator := strings.ToLower(doc.Find("meta[name='generator']").Last().AttrOr("content", ""))
	if generator == "" {
		return FrameworkUnknown
	}

	// VitePress is checked before VuePress for the same reason as above.
	for _, f := range []Framework{
		FrameworkSphinx,
		FrameworkGitBook,
		FrameworkDocusaurus,
		FrameworkMkDocs,
		FrameworkVitePress,
		FrameworkVuePress,
		FrameworkNextra,
	} {
		if strings.Contains(generator, string(f)) {
			return f
		}
	}
	return FrameworkUnknown
}

func has(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// hasGitBookClasses requires at least two of GitBook's distinctive
// classes on the html element.
func hasGitBookClasses(doc *goquery.Document) bool {
	class := doc.Find("html").AttrOr("class", "")
	var count int
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}
