package cgen

import (
	"fmt"
	"sort"
	"strings"

	"sling/internal/ast"
	"sling/internal/sema"
)

// Emitter — однопроходный обход неизменяемого дерева сверху вниз.
// Всё состояние — его собственные счётчики и append-only буферы;
// семантический контекст читается, но не мутируется.
type Emitter struct {
	builder *ast.Builder
	fileID  ast.FileID
	sem     *sema.Result

	current sema.ScopeID // скоуп точки лоуэринга

	fnCount  int      // генератор имён sl_fn_<n>
	fnDepth  int      // глубина вложенности лоуэримых функций
	fnProtos []string // прототипы поднятых функций
	fnDefs   []string // определения поднятых функций

	arities map[int]bool // арности, для которых нужен sl_call<N>
}

// blockWriter пишет строки с текущим отступом.
type blockWriter struct {
	buf    strings.Builder
	indent int
}

func (w *blockWriter) line(s string) {
	for i := 0; i < w.indent; i++ {
		w.buf.WriteByte('\t')
	}
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *blockWriter) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

// EmitModule — входная точка бэкенда: весь сгенерированный текст одной
// строкой либо ошибка без какого-либо частичного вывода.
func EmitModule(builder *ast.Builder, fileID ast.FileID, sem *sema.Result) (string, error) {
	if builder == nil || sem == nil || fileID == ast.NoFileID {
		return "", malformedErr(sourceSpanNone, "emitter needs a tree and a semantic context")
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return "", malformedErr(sourceSpanNone, "file id is not allocated")
	}

	e := &Emitter{
		builder: builder,
		fileID:  fileID,
		sem:     sem,
		current: sem.Root,
		arities: make(map[int]bool),
	}

	// тело main лоуэрится первым: по пути собираются поднятые функции
	// и использованные арности вызовов
	body := &blockWriter{indent: 1}
	e.emitScopeAlloc(body, sem.Root, "")
	for _, stmtID := range file.Stmts {
		if err := e.lowerStmt(body, stmtID); err != nil {
			return "", err
		}
	}

	var out strings.Builder
	out.WriteString("#include \"sling_rt.h\"\n\n")
	e.emitCallHelpers(&out)
	e.emitScopeTypes(&out)
	for _, proto := range e.fnProtos {
		out.WriteString(proto)
		out.WriteByte('\n')
	}
	if len(e.fnProtos) > 0 {
		out.WriteByte('\n')
	}
	for _, def := range e.fnDefs {
		out.WriteString(def)
		out.WriteByte('\n')
	}
	out.WriteString("int main() {\n")
	out.WriteString("\tsl_runtime_init();\n")
	out.WriteString(body.buf.String())
	out.WriteString("\treturn 0;\n")
	out.WriteString("}\n")

	text := out.String()
	if !isPureASCII(text) {
		return "", nonASCIIErr("generated module")
	}
	return text, nil
}

// emitCallHelpers выводит inline-хелперы вызова только для реально
// встретившихся арностей, по возрастанию. Хелпер переинтерпретирует
// указатель функции замыкания под арность точки вызова; расхождение
// арности объявления и вызова контрактом не ловится.
func (e *Emitter) emitCallHelpers(out *strings.Builder) {
	if len(e.arities) == 0 {
		return
	}
	arities := make([]int, 0, len(e.arities))
	for n := range e.arities {
		arities = append(arities, n)
	}
	sort.Ints(arities)

	for _, n := range arities {
		params := "SlValue fn"
		sig := "void *"
		args := "c->env"
		for i := 0; i < n; i++ {
			params += fmt.Sprintf(", SlValue a%d", i)
			sig += ", SlValue"
			args += fmt.Sprintf(", a%d", i)
		}
		fmt.Fprintf(out, "static inline SlValue %s(%s) {\n", callHelperName(n), params)
		out.WriteString("\tSlClosure *c = sl_get_closure(fn);\n")
		fmt.Fprintf(out, "\treturn ((SlValue (*)(%s))c->fn)(%s);\n", sig, args)
		out.WriteString("}\n\n")
	}
}
