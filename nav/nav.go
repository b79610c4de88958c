// Package nav drives the site navigation: active link highlighting, the
// mobile menu and the scroll-dependent navbar shadow and back-to-top button.
package nav

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aydenstechdungeon/folio/dom"
)

const (
	linksSelector = ".nav-links"
	linkSelector  = ".nav-links a"
	indexPage     = "index.html"
)

// CurrentPage returns the file name a location path refers to, index.html
// for a directory.
func CurrentPage(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return indexPage
	}
	return path.Base(p)
}

// HighlightActive marks every nav link pointing at the current page with
// class "active" and returns how many were marked.
func HighlightActive(doc *dom.Document, p string) int {
	current := CurrentPage(p)
	n := 0
	doc.Find(linkSelector).Each(func(_ int, s *goquery.Selection) {
		if href, _ := s.Attr("href"); href == current {
			dom.AddClass(s.Get(0), "active")
			n++
		}
	})
	return n
}
