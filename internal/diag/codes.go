package diag

import "fmt"

// Code identifies a diagnostic kind. The numeric space is segmented by
// compiler phase: 1000s lexer, 2000s parser, 3000s semantic analysis,
// 4000s I/O, 5000s import graph.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectLBrace       Code = 2003
	SynExpectRBrace       Code = 2004
	SynExpectColon        Code = 2005
	SynExpectType         Code = 2006
	SynExpectComma        Code = 2007
	SynNestedArray        Code = 2008
	SynExpectString       Code = 2009
	SynExpectIdentAfterAs Code = 2010
	SynExpectGt           Code = 2011
	SynBadEnumValue       Code = 2012
	SynUnexpectedTopLevel Code = 2013
	SynExpectLt           Code = 2014
	SynEmptyBody          Code = 2015

	// Semantic
	SemaInfo                Code = 3000
	SemaUnresolvedReference Code = 3001
	SemaDuplicateDefinition Code = 3002
	SemaDuplicateEnumValue  Code = 3003
	SemaCircularInheritance Code = 3004
	SemaDuplicateField      Code = 3005
	SemaNotAnEnum           Code = 3006
	SemaNotAMessage         Code = 3007
	SemaEnumValueOverflow   Code = 3008

	// I/O
	IOLoadFileError Code = 4001

	// Import graph
	ProjInfo              Code = 5000
	ProjMissingImport     Code = 5001
	ProjImportCycle       Code = 5002
	ProjSelfImport        Code = 5003
	ProjInvalidImportPath Code = 5004
	ProjDuplicateAlias    Code = 5005
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectLBrace:             "Expected '{'",
	SynExpectRBrace:             "Expected '}'",
	SynExpectColon:              "Expected ':'",
	SynExpectType:               "Expected type",
	SynExpectComma:              "Expected ','",
	SynNestedArray:              "Nested array types are not supported",
	SynExpectString:             "Expected string literal",
	SynExpectIdentAfterAs:       "Expected identifier after 'as'",
	SynExpectGt:                 "Expected '>'",
	SynBadEnumValue:             "Bad enum value",
	SynUnexpectedTopLevel:       "Unexpected top-level item",
	SynExpectLt:                 "Expected '<'",
	SynEmptyBody:                "Empty body",
	SemaInfo:                    "Semantic information",
	SemaUnresolvedReference:     "Unresolved reference",
	SemaDuplicateDefinition:     "Duplicate definition",
	SemaDuplicateEnumValue:      "Duplicate enum value",
	SemaCircularInheritance:     "Circular inheritance",
	SemaDuplicateField:          "Duplicate field",
	SemaNotAnEnum:               "Reference is not an enum",
	SemaNotAMessage:             "Reference is not a message",
	SemaEnumValueOverflow:       "Enum value out of range",
	IOLoadFileError:             "Failed to load file",
	ProjInfo:                    "Project information",
	ProjMissingImport:           "Imported file not found",
	ProjImportCycle:             "Import cycle",
	ProjSelfImport:              "File imports itself",
	ProjInvalidImportPath:       "Invalid import path",
	ProjDuplicateAlias:          "Duplicate import alias",
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
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
