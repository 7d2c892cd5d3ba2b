package driver

import (
	"errors"

	"fortio.org/safecast"

	"sling/internal/ast"
	"sling/internal/backend/cgen"
	"sling/internal/diag"
	"sling/internal/lexer"
	"sling/internal/parser"
	"sling/internal/sema"
	"sling/internal/source"
)

// LowerOptions настраивают полный проход: лексинг → парсинг → резолюция →
// генерация C++.
type LowerOptions struct {
	MaxDiagnostics int
	// AllowUndeclaredGlobals пробрасывается в sema; выключение оставляет
	// необъявленные идентификаторы без резолюции, и генерация падает.
	AllowUndeclaredGlobals bool
}

func DefaultLowerOptions() LowerOptions {
	return LowerOptions{
		MaxDiagnostics:         100,
		AllowUndeclaredGlobals: true,
	}
}

// LowerResult несёт артефакты всех фаз. Output пуст, если любая фаза
// завершилась ошибкой: частичного вывода не бывает.
type LowerResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	ASTFile ast.FileID
	Sema    *sema.Result
	Bag     *diag.Bag
	Output  string
}

// Ok reports whether lowering produced output without errors.
func (r *LowerResult) Ok() bool {
	return r != nil && !r.Bag.HasErrors() && r.Output != ""
}

// Lower загружает файл с диска и прогоняет его через весь конвейер.
func Lower(path string, opts LowerOptions) (*LowerResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return lowerLoaded(fs, fileID, opts)
}

// LowerBytes прогоняет уже прочитанный исходник (stdin, тесты).
func LowerBytes(name string, src []byte, opts LowerOptions) (*LowerResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return lowerLoaded(fs, fileID, opts)
}

func lowerLoaded(fs *source.FileSet, fileID source.FileID, opts LowerOptions) (*LowerResult, error) {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	res := &LowerResult{
		FileSet: fs,
		File:    file,
		Bag:     bag,
	}

	// Фаза 1-2: лексер + парсер. Лексер репортит в тот же bag.
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res.Builder = builder

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	res.ASTFile = parsed.File
	if bag.HasErrors() {
		return res, nil
	}

	// Фаза 3: лес скоупов и резолюция имён.
	sem := sema.Resolve(builder, parsed.File, sema.Options{
		Reporter:               reporter,
		AllowUndeclaredGlobals: opts.AllowUndeclaredGlobals,
	})
	res.Sema = &sem
	sem.Validate(reporter)
	if bag.HasErrors() {
		return res, nil
	}

	// Фаза 4: генерация C++. Первая ошибка обрывает проход,
	// конвертируем её в диагностику.
	out, err := cgen.EmitModule(builder, parsed.File, &sem)
	if err != nil {
		var lowErr *cgen.LowerError
		if errors.As(err, &lowErr) {
			reporter.Report(lowErr.Code, diag.SevError, lowErr.Span, lowErr.Msg, nil)
			return res, nil
		}
		return nil, err
	}
	res.Output = out
	return res, nil
}

// Analyze останавливается после фазы резолюции: для дампа скоупов и
// проверок без генерации.
func Analyze(path string, opts LowerOptions) (*LowerResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	res := &LowerResult{
		FileSet: fs,
		File:    file,
		Bag:     bag,
	}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res.Builder = builder

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	res.ASTFile = parsed.File
	if bag.HasErrors() {
		return res, nil
	}

	sem := sema.Resolve(builder, parsed.File, sema.Options{
		Reporter:               reporter,
		AllowUndeclaredGlobals: opts.AllowUndeclaredGlobals,
	})
	res.Sema = &sem
	sem.Validate(reporter)
	return res, nil
}
