package diag

import (
	"testing"

	"sling/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(NewError(SynUnexpectedToken, source.Span{}, "a")) {
		t.Error("первая диагностика должна поместиться")
	}
	if !bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "b")) {
		t.Error("вторая диагностика должна поместиться")
	}
	if bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 2, End: 3}, "c")) {
		t.Error("лимит исчерпан, Add должен вернуть false")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, SemaInfo, source.Span{}, "warn"))
	if bag.HasErrors() {
		t.Error("warning не должен считаться ошибкой")
	}
	bag.Add(NewError(GenUnresolvedRef, source.Span{}, "boom"))
	if !bag.HasErrors() {
		t.Error("HasErrors после ошибки")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 0, Start: 10, End: 11}, "later"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 0, Start: 2, End: 3}, "earlier"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "earlier" || items[1].Message != "later" {
		t.Errorf("после Sort порядок неверный: %q, %q", items[0].Message, items[1].Message)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{File: 0, Start: 5, End: 6}
	bag.Add(NewError(SemaUnresolvedSymbol, sp, "x"))
	bag.Add(NewError(SemaUnresolvedSymbol, sp, "x"))
	bag.Dedup()
	if bag.Len() != 1 {
		t.Errorf("после Dedup Len = %d, ожидали 1", bag.Len())
	}
}

func TestBagReporterKeepsNotes(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	note := Note{Span: source.Span{Start: 3, End: 4}, Msg: "previously declared here"}
	r.Report(SemaDuplicateSymbol, SevError, source.Span{Start: 8, End: 9}, "duplicate 'x'", []Note{note})

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("Len = %d", len(items))
	}
	if len(items[0].Notes) != 1 || items[0].Notes[0].Msg != note.Msg {
		t.Errorf("заметка потеряна: %+v", items[0].Notes)
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(UnknownCode, source.Span{}, "a"))
	b := NewBag(1)
	b.Add(NewError(UnknownCode, source.Span{Start: 1, End: 2}, "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("после Merge Len = %d", a.Len())
	}
}
