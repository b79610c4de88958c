package nav

import "github.com/aydenstechdungeon/folio/dom"

const (
	NavbarID    = "navbar"
	ScrollTopID = "scroll-top"

	shadowOffset    = 20
	scrollTopOffset = 400
)

// ApplyScroll updates the navbar shadow and the back-to-top button for the
// window's current scroll position.
func ApplyScroll(doc *dom.Document) {
	y := doc.ScrollY()
	if navbar := doc.ByID(NavbarID); navbar != nil {
		shadow := "none"
		if y > shadowOffset {
			shadow = "var(--shadow)"
		}
		dom.SetStyle(navbar, "box-shadow", shadow)
	}
	if btn := doc.ByID(ScrollTopID); btn != nil {
		dom.ToggleClass(btn, "visible", y > scrollTopOffset)
	}
}
