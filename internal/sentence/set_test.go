package sentence

import (
	"reflect"
	"testing"
)

func testItems() []Item {
	return []Item{
		{ID: "a", Level: 2, Category: "past", Target: "I ran."},
		{ID: "b", Level: 1, Category: "greeting", Target: "Hello."},
		{ID: "c", Level: 2, Category: "future", Target: "I will run."},
		{ID: "d", Level: 1, Category: "greeting", Target: "Hi."},
		{ID: "e", Level: 4, Target: "Done."},
	}
}

func TestSetLevels(t *testing.T) {
	s := NewSet(testItems())

	if got, want := s.Levels(), []int{1, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
	if got, want := IDs(s.ByLevel(2)), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ByLevel(2) = %v, want %v", got, want)
	}
	if s.HasLevel(3) {
		t.Error("HasLevel(3) = true, want false")
	}
	if first, ok := s.FirstLevel(); !ok || first != 1 {
		t.Errorf("FirstLevel() = %d, %v, want 1, true", first, ok)
	}
}

func TestSetNextLevel(t *testing.T) {
	s := NewSet(testItems())

	tests := []struct {
		level  int
		want   int
		wantOK bool
	}{
		{1, 2, true},
		{2, 4, true},
		{3, 4, true},
		{4, 0, false},
	}
	for _, tc := range tests {
		got, ok := s.NextLevel(tc.level)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("NextLevel(%d) = %d, %v, want %d, %v", tc.level, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSetCategories(t *testing.T) {
	s := NewSet(testItems())
	if got, want := s.Categories(2), []string{"past", "future"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories(2) = %v, want %v", got, want)
	}
	if got := s.Categories(4); len(got) != 0 {
		t.Errorf("Categories(4) = %v, want empty", got)
	}
}

func TestSetValidate(t *testing.T) {
	s := NewSet([]Item{
		{ID: "x", Level: 1, Target: "ok"},
		{ID: "x", Level: 1, Target: "dup"},
		{ID: "y", Level: 0, Target: "bad level"},
		{ID: "z", Level: 1},
	})
	if errs := s.Validate(); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
	if errs := NewSet(testItems()).Validate(); len(errs) != 0 {
		t.Errorf("Validate() on clean set = %v, want none", errs)
	}
}

func TestSample(t *testing.T) {
	items := Sample()
	if len(items) != 17 {
		t.Fatalf("len(Sample()) = %d, want 17", len(items))
	}
	s := NewSet(items)
	if got, want := s.Levels(), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("sample levels = %v, want %v", got, want)
	}
	if errs := s.Validate(); len(errs) != 0 {
		t.Errorf("sample set invalid: %v", errs)
	}
	it, ok := s.Find("3-1")
	if !ok {
		t.Fatal("sample item 3-1 missing")
	}
	if it.Target != "If it rains, I will stay at home." {
		t.Errorf("3-1 target = %q", it.Target)
	}
}
