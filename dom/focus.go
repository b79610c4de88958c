package dom

import "golang.org/x/net/html"

// NextFocus picks the element sequential focus navigation lands on when
// leaving from. candidates must be in document order. Moving forward picks
// the first candidate after from, moving backward the last one before it;
// both wrap around. It returns nil when candidates is empty.
func (d *Document) NextFocus(candidates []*html.Node, from *html.Node, backward bool) *html.Node {
	if len(candidates) == 0 {
		return nil
	}
	pos := d.Order(from)
	if backward {
		for i := len(candidates) - 1; i >= 0; i-- {
			if d.Order(candidates[i]) < pos {
				return candidates[i]
			}
		}
		return candidates[len(candidates)-1]
	}
	for _, c := range candidates {
		if d.Order(c) > pos {
			return c
		}
	}
	return candidates[0]
}
