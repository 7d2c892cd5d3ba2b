package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode — на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber          Code = 1004
	LexBadEscape          Code = 1005

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynUnclosedParen     Code = 2005
	SynUnclosedBrace     Code = 2006
	SynUnclosedBracket   Code = 2007
	SynExpectColon       Code = 2008
	SynExpectCatch       Code = 2009
	SynForBadHeader      Code = 2010
	SynBadAssignTarget   Code = 2011
	SynExpectPropertyKey Code = 2012

	// Семантические
	SemaInfo             Code = 3000
	SemaDuplicateSymbol  Code = 3001
	SemaUnresolvedSymbol Code = 3002
	SemaScopeMismatch    Code = 3003

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteError     Code = 4002

	// Кодогенерация (backend)
	GenInfo               Code = 5000
	GenUnresolvedRef      Code = 5001
	GenUnsupportedConstruct Code = 5002
	GenMalformedTree      Code = 5003
	GenNonASCIIOutput     Code = 5004
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string",
	LexUnterminatedComment:  "Unterminated block comment",
	LexBadNumber:            "Bad number",
	LexBadEscape:            "Bad escape sequence",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectSemicolon:      "Expect semicolon",
	SynExpectIdentifier:     "Expect identifier",
	SynExpectExpression:     "Expect expression",
	SynUnclosedParen:        "Unclosed parenthesis",
	SynUnclosedBrace:        "Unclosed brace",
	SynUnclosedBracket:      "Unclosed bracket",
	SynExpectColon:          "Expect colon",
	SynExpectCatch:          "Expect catch clause",
	SynForBadHeader:         "Malformed for-loop header",
	SynBadAssignTarget:      "Invalid assignment target",
	SynExpectPropertyKey:    "Expect property key",
	SemaInfo:                "Semantic information",
	SemaDuplicateSymbol:     "Duplicate symbol",
	SemaUnresolvedSymbol:    "Unresolved symbol",
	SemaScopeMismatch:       "Scope stack mismatch",
	IOLoadFileError:         "I/O load file error",
	IOWriteError:            "I/O write error",
	GenInfo:                 "Code generation information",
	GenUnresolvedRef:        "Unresolved reference in lowering",
	GenUnsupportedConstruct: "Unsupported construct in lowering",
	GenMalformedTree:        "Malformed tree in lowering",
	GenNonASCIIOutput:       "Non-ASCII payload leaked into output",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
