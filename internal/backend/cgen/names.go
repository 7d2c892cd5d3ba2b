package cgen

import (
	"fmt"
	"strings"
)

// scopeTypeName возвращает имя типа записи скоупа: SlScope<id>.
func scopeTypeName(id uint32) string {
	return fmt.Sprintf("SlScope%d", id)
}

// scopeVarName возвращает имя переменной экземпляра скоупа: sc<id>.
// Идентификаторы скоупов уникальны в пределах программы, так что
// коллизий внутри одной C++-функции не бывает.
func scopeVarName(id uint32) string {
	return fmt.Sprintf("sc%d", id)
}

func fnName(index int) string {
	return fmt.Sprintf("sl_fn_%d", index)
}

func callHelperName(arity int) string {
	return fmt.Sprintf("sl_call%d", arity)
}

// slotFieldName превращает имя исходного идентификатора в имя поля слота.
// Байты вне [A-Za-z0-9_] кодируются как _XX_, так что результат
// однозначен и не конфликтует с другими именами.
func slotFieldName(name string) string {
	var sb strings.Builder
	sb.WriteString("v_")
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, "_%02x_", c)
		}
	}
	return sb.String()
}
