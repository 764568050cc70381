package token

// keywordOrder lists keywords in Kind order.
var keywordOrder = [...]string{
	"in", "out", "inout", "true", "false", "const", "return", "break",
	"switch", "case", "default", "discard", "if", "else", "while", "do", "for",
	"struct", "cbuffer", "vertex_input", "vertex_output",
	"fragment_input", "fragment_output", "compute_input", "compute_output",
	"texture1D", "texture1DArray", "texture2D", "texture2DArray",
	"texture3D", "textureCube", "textureCubeArray",
	"target", "semantic",
	"POSITION", "TEXCOORD", "NORMAL", "DEPTH", "COLOR",
	"format",
	"UNORM8", "UNORM16", "UNORM32", "SNORM8", "SNORM16", "SNORM32",
	"UINT8", "UINT16", "UINT32", "SINT8", "SINT16", "SINT32",
	"FLOAT16", "FLOAT32",
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(keywordOrder))
	for i, text := range keywordOrder {
		m[text] = KwIn + Kind(i) // #nosec G115 -- таблица короче 256
	}
	return m
}()

var punct = map[string]Kind{
	"(": LParen, ")": RParen, "{": LBrace, "}": RBrace, "[": LBracket, "]": RBracket,
	".": Dot, ",": Comma, ":": Colon, ";": Semicolon, "~": Tilde, "?": Question,
	"=": Assign, "==": EqEq, "!": Bang, "!=": BangEq,
	"+": Plus, "+=": PlusAssign, "++": PlusPlus,
	"-": Minus, "-=": MinusAssign, "--": MinusMinus,
	"*": Star, "*=": StarAssign, "/": Slash, "/=": SlashAssign,
	"%": Percent, "%=": PercentAssign, "^": Caret, "^=": CaretAssign,
	"|": Pipe, "|=": PipeAssign, "||": OrOr,
	"&": Amp, "&=": AmpAssign, "&&": AndAnd,
	"<": Lt, "<=": LtEq, "<<": Shl, "<<=": ShlAssign,
	">": Gt, ">=": GtEq, ">>": Shr, ">>=": ShrAssign,
}

// LookupKeyword returns the keyword kind for ident, if any.
// Matching is case-sensitive: "position" is an identifier, "POSITION" a semantic.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
