package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sling/internal/diag"
	"sling/internal/source"
)

// LowerDirResult содержит результат опускания одного файла
type LowerDirResult struct {
	Path   string // Относительный путь к файлу
	Result *LowerResult
}

// ListSources возвращает отсортированный список всех *.sl файлов в директории
func ListSources(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sl") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// LowerDir опускает все *.sl файлы в директории параллельно.
// Каждый файл — самостоятельная единица трансляции со своим FileSet.
// Порядок результатов детерминирован (сортировка путей).
func LowerDir(ctx context.Context, dir string, opts LowerOptions, jobs int, events chan<- Event) ([]LowerDirResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]LowerDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(events, Event{Kind: EventStart, Path: path, Index: i, Total: len(files)})

			res, err := Lower(path, opts)
			if err != nil {
				// Файл не загрузился: результат с ошибкой I/O вместо аборта
				// всего прогона.
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+err.Error()))
				results[i] = LowerDirResult{Path: path, Result: &LowerResult{Bag: bag}}
				emit(events, Event{Kind: EventFail, Path: path, Index: i, Total: len(files)})
				return nil
			}

			results[i] = LowerDirResult{Path: path, Result: res}
			kind := EventDone
			if !res.Ok() {
				kind = EventFail
			}
			emit(events, Event{Kind: kind, Path: path, Index: i, Total: len(files)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
