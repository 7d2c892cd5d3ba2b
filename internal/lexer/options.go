package lexer

import (
	"sling/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. Nil drops them.
	Reporter diag.Reporter
}
