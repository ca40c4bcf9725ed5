package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwMessage represents the 'message' keyword.
	KwMessage // message
	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwOpenEnum represents the 'open_enum' keyword.
	KwOpenEnum // open_enum
	// KwOptions represents the 'options' keyword.
	KwOptions // options
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwMap represents the 'Map' keyword of map types.
	KwMap // Map
	// KwString represents the 'string' basic type.
	KwString // string
	// KwInt represents the 'int' basic type.
	KwInt // int
	// KwFloat represents the 'float' basic type.
	KwFloat // float
	// KwBool represents the 'bool' basic type.
	KwBool // bool
	// KwByte represents the 'byte' basic type.
	KwByte // byte

	// IntLit represents an integer literal, optionally negative.
	IntLit
	// StringLit represents a double-quoted string literal.
	StringLit
	// RawExpr represents raw default-value text after '='.
	RawExpr

	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
	// Lt represents '<'.
	Lt // <
	// Gt represents '>'.
	Gt // >
	// Colon represents ':'.
	Colon // :
	// ColonColon represents '::'.
	ColonColon // ::
	// Comma represents ','.
	Comma // ,
	// Semicolon represents ';'.
	Semicolon // ;
	// Assign represents '='.
	Assign // =
	// Dot represents '.'.
	Dot // .
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Ident:       "identifier",
	KwMessage:   "'message'",
	KwNamespace: "'namespace'",
	KwEnum:      "'enum'",
	KwOpenEnum:  "'open_enum'",
	KwOptions:   "'options'",
	KwImport:    "'import'",
	KwAs:        "'as'",
	KwMap:       "'Map'",
	KwString:    "'string'",
	KwInt:       "'int'",
	KwFloat:     "'float'",
	KwBool:      "'bool'",
	KwByte:      "'byte'",
	IntLit:      "integer literal",
	StringLit:   "string literal",
	RawExpr:     "default expression",
	LBrace:      "'{'",
	RBrace:      "'}'",
	LBracket:    "'['",
	RBracket:    "']'",
	Lt:          "'<'",
	Gt:          "'>'",
	Colon:       "':'",
	ColonColon:  "'::'",
	Comma:       "','",
	Semicolon:   "';'",
	Assign:      "'='",
	Dot:         "'.'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsBasicType reports whether the kind names one of the builtin field types.
func (k Kind) IsBasicType() bool {
	switch k {
	case KwString, KwInt, KwFloat, KwBool, KwByte:
		return true
	default:
		return false
	}
}
