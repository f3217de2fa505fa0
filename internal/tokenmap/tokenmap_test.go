package tokenmap

import "testing"

func TestBindThenGet(t *testing.T) {
	m := New()
	if err := m.Bind("companyPrefix", "0037000"); err != nil {
		t.Fatal(err)
	}
	v, ok := m.Get("companyPrefix")
	if !ok || v != "0037000" {
		t.Errorf("Get() = (%q, %v), want (%q, true)", v, ok, "0037000")
	}
}

func TestBindDuplicateFails(t *testing.T) {
	m := New()
	if err := m.Bind("serial", "1"); err != nil {
		t.Fatal(err)
	}
	err := m.Bind("serial", "2")
	if err == nil {
		t.Fatal("expected DuplicateFieldError")
	}
	if _, ok := err.(*DuplicateFieldError); !ok {
		t.Errorf("got %T, want *DuplicateFieldError", err)
	}
	// the original binding must be untouched
	v, _ := m.Get("serial")
	if v != "1" {
		t.Errorf("Get() = %q after failed rebind, want %q", v, "1")
	}
}

func TestSetOverwritesUnconditionally(t *testing.T) {
	m := New()
	m.Set("itemReference", "030241")
	m.Set("itemReference", "030242")
	v, _ := m.Get("itemReference")
	if v != "030242" {
		t.Errorf("Get() = %q, want %q", v, "030242")
	}
}

func TestGetMissing(t *testing.T) {
	m := New()
	if _, ok := m.Get("nope"); ok {
		t.Error("expected ok=false for unbound field")
	}
}
