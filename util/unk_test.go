package util

import "testing"

func TestUnkify(t *testing.T) {
	vocab := map[string]bool{"apple": true}
	known := func(w string) bool { return vocab[w] }
	tests := []struct {
		word, want string
	}{
		{"Apple", "UNK-KNOWNLC"},
		{"Banana", "UNK-CAPS"},
		{"NASA", "UNK-CAPS"},
		{"running", "UNK-LC-ing"},
		{"cats", "UNK-LC-s"},
		{"glass", "UNK-LC"},
		{"x86", "UNK-LC-NUM"},
		{"1984", "UNK-NUM"},
		{"well-known", "UNK-LC-DASH"},
		{"quickly", "UNK-LC-ly"},
		{"", "UNK"},
	}
	for _, test := range tests {
		if got := Unkify(test.word, known); got != test.want {
			t.Errorf("Unkify(%q) = %q, want %q", test.word, got, test.want)
		}
	}
}

func TestEnumSet(t *testing.T) {
	e := NewEnumSet(4)
	a, isNew := e.Add("a")
	if !isNew || a != 0 {
		t.Errorf("Add(a) = %d, %v", a, isNew)
	}
	b, _ := e.Add("b")
	if b != 1 {
		t.Errorf("Add(b) = %d, want 1", b)
	}
	again, isNew := e.Add("a")
	if isNew || again != a {
		t.Errorf("re-adding a gave %d, %v", again, isNew)
	}
	if idx, ok := e.IndexOf("b"); !ok || idx != b {
		t.Errorf("IndexOf(b) = %d, %v", idx, ok)
	}
	if _, ok := e.IndexOf("c"); ok {
		t.Error("IndexOf(c) found a missing symbol")
	}
	if got := e.ValueOf(b); got != "b" {
		t.Errorf("ValueOf(%d) = %q", b, got)
	}
	if e.Len() != 2 {
		t.Errorf("Len() = %d, want 2", e.Len())
	}
	e.Frozen = true
	defer func() {
		if recover() == nil {
			t.Error("adding to a frozen enum set did not panic")
		}
	}()
	e.Add("c")
}
