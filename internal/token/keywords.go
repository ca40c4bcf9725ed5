package token

var keywords = map[string]Kind{
	"message":   KwMessage,
	"namespace": KwNamespace,
	"enum":      KwEnum,
	"open_enum": KwOpenEnum,
	"options":   KwOptions,
	"import":    KwImport,
	"as":        KwAs,
	"Map":       KwMap,
	"string":    KwString,
	"int":       KwInt,
	"float":     KwFloat,
	"bool":      KwBool,
	"byte":      KwByte,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
