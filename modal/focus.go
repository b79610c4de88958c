package modal

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// focusableSelector matches the interactive descendants a user can tab to.
const focusableSelector = `button, [href], input, select, textarea, [tabindex]`

// unfocusableSelector matches elements explicitly taken out of the tab order.
const unfocusableSelector = `[tabindex="-1"], [disabled]`

// FocusableElements returns the focusable descendants of container in
// document order. The container itself is not included.
func FocusableElements(container *goquery.Selection) []*html.Node {
	if container == nil || container.Length() == 0 {
		return nil
	}
	return container.Find(focusableSelector).Not(unfocusableSelector).Nodes
}
