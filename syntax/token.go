package syntax

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  For verbatim, documentation and string
	// tokens this is the enclosed text with the delimiters trimmed off.
	Value string

	// The source line the token starts on.
	Line int
}

// Enumeration of token kinds.
const (
	TOK_NAMESPACE = iota
	TOK_CLASS
	TOK_ENUM
	TOK_TYPEDEF
	TOK_TYPENAME
	TOK_CALLBACK

	// `const`, `volatile` and `restrict`.
	TOK_QUALIFIER

	// `signed` and `unsigned`.
	TOK_SIGNED

	TOK_ID
	TOK_NUMBER
	TOK_STRING

	// A `%{ ... %}` verbatim block.
	TOK_VERBATIM

	// A `%[ ... %]` documentation block.
	TOK_DOCS

	TOK_LBRACE
	TOK_RBRACE
	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_SEMI
	TOK_COLON
	TOK_SCOPE
	TOK_COMMA
	TOK_ASSIGN
	TOK_QUESTION

	TOK_EOF
)

// keywords maps reserved words to their token kinds.
var keywords = map[string]int{
	"namespace": TOK_NAMESPACE,
	"class":     TOK_CLASS,
	"struct":    TOK_CLASS,
	"enum":      TOK_ENUM,
	"typedef":   TOK_TYPEDEF,
	"typename":  TOK_TYPENAME,
	"callback":  TOK_CALLBACK,
	"const":     TOK_QUALIFIER,
	"volatile":  TOK_QUALIFIER,
	"restrict":  TOK_QUALIFIER,
	"signed":    TOK_SIGNED,
	"unsigned":  TOK_SIGNED,
}
