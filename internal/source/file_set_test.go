package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("var x = 1;\nx = x + 1;\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("виртуальный файл должен иметь флаг FileVirtual")
	}
	if len(f.LineIdx) != 2 {
		t.Errorf("LineIdx len = %d, ожидали 2", len(f.LineIdx))
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.sl", []byte("var a;\nvar b;\n"))

	// "b" стоит на второй строке, колонка 5
	span := Span{File: id, Start: 11, End: 12}
	start, _ := fs.Resolve(span)
	if start.Line != 2 || start.Col != 5 {
		t.Errorf("Resolve = %+v", start)
	}
}

func TestFileSetResolveLineBoundaries(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.sl", []byte("var a;\nvar b;\n"))

	cases := []struct {
		off       uint32
		line, col uint32
	}{
		{0, 1, 1},  // 'v' первой строки
		{5, 1, 6},  // ';' первой строки
		{6, 1, 7},  // сам \n ещё на первой строке
		{7, 2, 1},  // 'v' второй строки
		{11, 2, 5}, // 'b'
		{13, 2, 7}, // \n второй строки
		{14, 3, 1}, // offset сразу за последним \n
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off + 1})
		if start.Line != tc.line || start.Col != tc.col {
			t.Errorf("off %d: Resolve = %+v, ожидали %d:%d", tc.off, start, tc.line, tc.col)
		}
	}
}

func TestToLineColNoNewlines(t *testing.T) {
	got := toLineCol(nil, 4)
	if got.Line != 1 || got.Col != 5 {
		t.Errorf("toLineCol(nil, 4) = %+v", got)
	}
}

func TestFileSetLoadNormalizesCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.sl")
	if err := os.WriteFile(path, []byte("var x;\r\nvar y;\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("ожидали флаг FileNormalizedCRLF")
	}
	for _, b := range f.Content {
		if b == '\r' {
			t.Fatal("в нормализованном содержимом остался \\r")
		}
	}
}

func TestFileGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.sl", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	cases := map[uint32]string{
		1: "one",
		2: "two",
		3: "three",
		4: "",
		0: "",
	}
	for num, want := range cases {
		if got := f.GetLine(num); got != want {
			t.Errorf("GetLine(%d) = %q, ожидали %q", num, got, want)
		}
	}
}

func TestFileSetGetLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("m.sl", []byte("var a;"))
	id2 := fs.AddVirtual("m.sl", []byte("var b;"))

	latest, ok := fs.GetLatest("m.sl")
	if !ok || latest != id2 {
		t.Errorf("GetLatest = %d, ok=%v, ожидали %d", latest, ok, id2)
	}
}
