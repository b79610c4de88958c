package dom

import (
	"math"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
)

const fixture = `<!DOCTYPE html>
<html lang="en">
<head><title>t</title></head>
<body>
	<nav id="navbar"><a href="index.html">Home</a></nav>
	<form id="form">
		<input id="name" value="Ada">
		<textarea id="message">hello</textarea>
		<select id="kind"><option value="a">A</option><option value="b" selected>B</option></select>
	</form>
	<div class="panel"><p>one</p><p class="x">two</p></div>
</body>
</html>`

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	d, err := ParseString(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return d
}

func TestByID(t *testing.T) {
	d := mustParse(t, fixture)
	if n := d.ByID("navbar"); n == nil || n.Data != "nav" {
		t.Errorf("Expected nav element for #navbar, got %v", n)
	}
	if n := d.ByID("missing"); n != nil {
		t.Errorf("Expected nil for unknown id, got %v", n)
	}
	if n := d.ByID(""); n != nil {
		t.Errorf("Expected nil for empty id, got %v", n)
	}
}

func TestFocusAndActiveElement(t *testing.T) {
	d := mustParse(t, fixture)
	if d.ActiveElement() != d.Body() {
		t.Error("Expected body to be active initially")
	}

	name := d.ByID("name")
	if !d.Focus(name) {
		t.Fatal("Expected Focus to succeed on attached element")
	}
	if d.ActiveElement() != name {
		t.Error("Expected #name to be active")
	}

	if d.Focus(nil) {
		t.Error("Expected Focus(nil) to fail")
	}
	if d.ActiveElement() != name {
		t.Error("Expected focus to stay on #name after Focus(nil)")
	}

	name.Parent.RemoveChild(name)
	if d.ActiveElement() != d.Body() {
		t.Error("Expected focus to fall back to body once the element is detached")
	}
	if d.Focus(name) {
		t.Error("Expected Focus on detached element to fail")
	}
}

func TestValuesAndReset(t *testing.T) {
	d := mustParse(t, fixture)
	name, msg, kind := d.ByID("name"), d.ByID("message"), d.ByID("kind")

	if got := d.Value(name); got != "Ada" {
		t.Errorf("Expected markup value 'Ada', got %q", got)
	}
	if got := d.Value(msg); got != "hello" {
		t.Errorf("Expected textarea value 'hello', got %q", got)
	}
	if got := d.Value(kind); got != "b" {
		t.Errorf("Expected selected option 'b', got %q", got)
	}

	d.SetValue(name, "Grace")
	d.SetValue(msg, "changed")
	if got := d.Value(name); got != "Grace" {
		t.Errorf("Expected live value 'Grace', got %q", got)
	}
	if v, _ := Attr(name, "value"); v != "Ada" {
		t.Errorf("Expected markup to stay 'Ada', got %q", v)
	}

	d.ResetForm(d.ByID("form"))
	if got := d.Value(name); got != "Ada" {
		t.Errorf("Expected reset value 'Ada', got %q", got)
	}
	if got := d.Value(msg); got != "hello" {
		t.Errorf("Expected reset textarea 'hello', got %q", got)
	}
}

func TestScroll(t *testing.T) {
	d := mustParse(t, fixture)
	var seen []int
	d.AddEventListener(Scroll, func(ev *Event) {
		seen = append(seen, d.ScrollY())
	})

	d.ScrollWindowTo(500)
	d.ScrollWindowTo(-10)

	if len(seen) != 2 || seen[0] != 500 || seen[1] != 0 {
		t.Errorf("Expected scroll events at [500 0], got %v", seen)
	}

	panel := d.Find(".panel").Get(0)
	d.SetScrollTop(panel, 120)
	if d.ScrollTop(panel) != 120 {
		t.Errorf("Expected scrollTop 120, got %d", d.ScrollTop(panel))
	}
}

func TestDispatchOrderAndPreventDefault(t *testing.T) {
	d := mustParse(t, fixture)
	var order []string
	d.AddEventListener(KeyDown, func(ev *Event) { order = append(order, "first") })
	d.AddEventListener(KeyDown, func(ev *Event) {
		order = append(order, "second")
		ev.PreventDefault()
	})

	ev := &Event{Type: KeyDown, Key: "Tab"}
	if !d.Dispatch(ev) {
		t.Error("Expected Dispatch to report the prevented default")
	}
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("Expected listeners in registration order, got %v", order)
	}
	if ev.Target != d.Body() {
		t.Error("Expected keydown without target to be aimed at the active element")
	}
}

func TestTimers(t *testing.T) {
	d := mustParse(t, fixture)
	var fired []string

	d.SetTimeout(200*time.Millisecond, func() { fired = append(fired, "b") })
	d.SetTimeout(100*time.Millisecond, func() {
		fired = append(fired, "a")
		d.SetTimeout(50*time.Millisecond, func() { fired = append(fired, "a2") })
	})
	d.SetTimeout(200*time.Millisecond, func() { fired = append(fired, "c") })

	d.Advance(99 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("Expected nothing to fire yet, got %v", fired)
	}

	d.Advance(200 * time.Millisecond)
	if got := strings.Join(fired, ","); got != "a,a2,b,c" {
		t.Errorf("Expected a,a2,b,c, got %s", got)
	}
	if d.Now() != 299*time.Millisecond {
		t.Errorf("Expected clock at 299ms, got %v", d.Now())
	}
	if d.PendingTimers() != 0 {
		t.Errorf("Expected no pending timers, got %d", d.PendingTimers())
	}
}

func TestAdvanceSaturates(t *testing.T) {
	d := mustParse(t, fixture)
	d.Advance(time.Second)
	fired := false
	d.SetTimeout(1200*time.Millisecond, func() { fired = true })

	d.Advance(time.Duration(math.MaxInt64))
	if !fired {
		t.Error("Expected the pending timer to fire")
	}
	if d.Now() != time.Duration(math.MaxInt64) {
		t.Errorf("Expected the clock to stop at its maximum, got %v", d.Now())
	}

	late := false
	d.SetTimeout(time.Hour, func() { late = true })
	d.Advance(time.Hour)
	if !late || d.Now() < 0 {
		t.Errorf("Expected a timer scheduled at the limit to fire without wrapping, got fired=%v now=%v", late, d.Now())
	}
}

func TestNextFocus(t *testing.T) {
	d := mustParse(t, fixture)
	controls := d.Find("input, textarea, select").Nodes
	name, msg, kind := controls[0], controls[1], controls[2]

	tests := []struct {
		name     string
		from     *html.Node
		backward bool
		want     *html.Node
	}{
		{"forward from body", d.Body(), false, name},
		{"backward from body", d.Body(), true, kind},
		{"forward middle", name, false, msg},
		{"forward wraps", kind, false, name},
		{"backward wraps", name, true, kind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.NextFocus(controls, tt.from, tt.backward); got != tt.want {
				t.Errorf("Expected %s, got %s", Selector(tt.want), Selector(got))
			}
		})
	}

	if got := d.NextFocus(nil, name, false); got != nil {
		t.Error("Expected nil for empty candidate list")
	}
}

func TestSelectorRoundTrip(t *testing.T) {
	d := mustParse(t, fixture)
	two := d.Find(".panel p.x").Get(0)

	sel := Selector(two)
	if strings.HasPrefix(sel, "#") {
		t.Fatalf("Expected a path selector for an element without id, got %s", sel)
	}
	if got := d.Find(sel).Get(0); got != two {
		t.Errorf("Expected %q to resolve back to the same element", sel)
	}
	if got := Selector(d.ByID("navbar")); got != "#navbar" {
		t.Errorf("Expected #navbar, got %s", got)
	}

	dup := mustParse(t, `<html><body><p id="a">one</p><p id="a">two</p></body></html>`)
	ps := dup.Find("p")
	if got := Selector(ps.Get(0)); got != "#a" {
		t.Errorf("Expected #a for the first holder, got %s", got)
	}
	sel = Selector(ps.Get(1))
	if sel == "#a" {
		t.Fatal("Expected a path selector for a later holder of a duplicated id")
	}
	if got := dup.Find(sel).Get(0); got != ps.Get(1) {
		t.Errorf("Expected %q to resolve to the second paragraph", sel)
	}
}

func TestRenderReflectsMutations(t *testing.T) {
	d := mustParse(t, fixture)
	nav := d.ByID("navbar")
	AddClass(nav, "active")
	SetAttr(nav, "aria-hidden", "true")

	out := d.String()
	if !strings.Contains(out, `class="active"`) || !strings.Contains(out, `aria-hidden="true"`) {
		t.Errorf("Expected rendered output to include mutations, got %s", out)
	}
}
