package source

import "testing"

func TestSpanBasics(t *testing.T) {
	s := Span{File: 1, Start: 3, End: 8}
	if s.Empty() {
		t.Error("непустой span не должен быть Empty")
	}
	if s.Len() != 5 {
		t.Errorf("Len = %d, ожидали 5", s.Len())
	}
	if got := s.String(); got != "1:3-8" {
		t.Errorf("String = %q", got)
	}

	empty := Span{File: 1, Start: 4, End: 4}
	if !empty.Empty() {
		t.Error("span нулевой длины должен быть Empty")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("Cover = %v", c)
	}

	// другой файл — span не меняется
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover через файлы должен вернуть исходный span, получили %v", got)
	}
}

func TestSpanCoverExtendsEnd(t *testing.T) {
	a := Span{File: 0, Start: 0, End: 3}
	b := Span{File: 0, Start: 5, End: 9}
	c := a.Cover(b)
	if c.Start != 0 || c.End != 9 {
		t.Errorf("Cover = %v", c)
	}
}
