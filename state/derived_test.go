package state

import "testing"

func TestDerivedFrom(t *testing.T) {
	count := NewRune(5)
	doubled := DerivedFrom(func() int { return count.Get() * 2 }, count)

	if doubled.Get() != 10 {
		t.Errorf("Expected value 10, got %d", doubled.Get())
	}

	count.Set(15)
	if doubled.Get() != 30 {
		t.Errorf("Expected recomputed value 30, got %d", doubled.Get())
	}
}

func TestDerivedNotifiesOnlyOnChange(t *testing.T) {
	active := NewRune("")
	open := DerivedFrom(func() bool { return active.Get() != "" }, active)

	var seen []bool
	open.Subscribe(func(v bool) { seen = append(seen, v) })

	active.Set("a")
	active.Set("b")
	active.Set("")

	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("Expected [true false], got %v", seen)
	}
}

func TestStateMap(t *testing.T) {
	sm := NewStateMap()
	theme := NewRune("light")
	open := NewRune(false)
	sm.Add("theme", theme).Add("menuOpen", open)

	var changes []string
	sm.OnChange = func(key string, value any) {
		changes = append(changes, key)
	}

	theme.Set("dark")
	open.Set(true)

	if len(changes) != 2 || changes[0] != "theme" || changes[1] != "menuOpen" {
		t.Errorf("Expected [theme menuOpen], got %v", changes)
	}

	got, err := sm.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(got) != `{"menuOpen":true,"theme":"dark"}` {
		t.Errorf("Unexpected JSON: %s", got)
	}
}

func TestStateMapReplace(t *testing.T) {
	sm := NewStateMap()
	first := NewRune(1)
	sm.Add("n", first)
	sm.Add("n", NewRune(2))

	count := 0
	sm.OnChange = func(string, any) { count++ }
	first.Set(5)

	if count != 0 {
		t.Errorf("Expected replaced observable to be unsubscribed, got %d changes", count)
	}
	if v := sm.ToMap()["n"]; v != 2 {
		t.Errorf("Expected 2, got %v", v)
	}
}
