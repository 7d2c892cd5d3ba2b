package cgen

import (
	"fmt"
	"strings"
)

// escapeCString превращает раскодированную строку в содержимое C++
// строкового литерала из чистого печатного ASCII. Всё остальное —
// октальные эскейпы побайтово (UTF-8 байты не-ASCII символов тоже).
func escapeCString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
				continue
			}
			// трёхзначная октальная форма, чтобы следующая цифра
			// литерала не приклеивалась к эскейпу
			fmt.Fprintf(&sb, "\\%03o", c)
		}
	}
	return sb.String()
}

// isPureASCII проверяет выходной инвариант: только печатный ASCII,
// таб и перевод строки.
func isPureASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' || c == '\t' {
			continue
		}
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
