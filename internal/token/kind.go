package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown byte, malformed number).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal such as 42.
	IntLit
	// FloatLit represents a literal with a decimal point such as 1.0.
	FloatLit

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Dot       // .
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Tilde     // ~
	Question  // ?

	Assign        // =
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Plus          // +
	PlusAssign    // +=
	PlusPlus      // ++
	Minus         // -
	MinusAssign   // -=
	MinusMinus    // --
	Star          // *
	StarAssign    // *=
	Slash         // /
	SlashAssign   // /=
	Percent       // %
	PercentAssign // %=
	Caret         // ^
	CaretAssign   // ^=
	Pipe          // |
	PipeAssign    // |=
	OrOr          // ||
	Amp           // &
	AmpAssign     // &=
	AndAnd        // &&
	Lt            // <
	LtEq          // <=
	Shl           // <<
	ShlAssign     // <<=
	Gt            // >
	GtEq          // >=
	Shr           // >>
	ShrAssign     // >>=

	// ключевые слова: порядок совпадает с таблицей keywordOrder

	KwIn       // in
	KwOut      // out
	KwInout    // inout
	KwTrue     // true
	KwFalse    // false
	KwConst    // const
	KwReturn   // return
	KwBreak    // break
	KwSwitch   // switch
	KwCase     // case
	KwDefault  // default
	KwDiscard  // discard
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwDo       // do
	KwFor      // for

	// KwStruct..KwComputeOutput open a structure declaration.
	KwStruct         // struct
	KwCBuffer        // cbuffer
	KwVertexInput    // vertex_input
	KwVertexOutput   // vertex_output
	KwFragmentInput  // fragment_input
	KwFragmentOutput // fragment_output
	KwComputeInput   // compute_input
	KwComputeOutput  // compute_output

	// KwTexture1D..KwTextureCubeArray open a texture binding.
	KwTexture1D        // texture1D
	KwTexture1DArray   // texture1DArray
	KwTexture2D        // texture2D
	KwTexture2DArray   // texture2DArray
	KwTexture3D        // texture3D
	KwTextureCube      // textureCube
	KwTextureCubeArray // textureCubeArray

	KwTarget   // target
	KwSemantic // semantic

	SemPosition // POSITION
	SemTexcoord // TEXCOORD
	SemNormal   // NORMAL
	SemDepth    // DEPTH
	SemColor    // COLOR

	KwFormat // format

	FmtUNORM8  // UNORM8
	FmtUNORM16 // UNORM16
	FmtUNORM32 // UNORM32
	FmtSNORM8  // SNORM8
	FmtSNORM16 // SNORM16
	FmtSNORM32 // SNORM32
	FmtUINT8   // UINT8
	FmtUINT16  // UINT16
	FmtUINT32  // UINT32
	FmtSINT8   // SINT8
	FmtSINT16  // SINT16
	FmtSINT32  // SINT32
	FmtFLOAT16 // FLOAT16
	FmtFLOAT32 // FLOAT32

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	IntLit:   "IntLit",
	FloatLit: "FloatLit",
}

func init() {
	for text, k := range punct {
		kindNames[k] = text
	}
	for _, text := range keywordOrder {
		kindNames[keywords[text]] = text
	}
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsStruct reports whether k opens a structure declaration.
func (k Kind) IsStruct() bool { return k >= KwStruct && k <= KwComputeOutput }

// IsTexture reports whether k opens a texture binding.
func (k Kind) IsTexture() bool { return k >= KwTexture1D && k <= KwTextureCubeArray }

// IsSemantic reports whether k names a member semantic.
func (k Kind) IsSemantic() bool { return k >= SemPosition && k <= SemColor }

// IsFormat reports whether k names a vertex input format.
func (k Kind) IsFormat() bool { return k >= FmtUNORM8 && k <= FmtFLOAT32 }

// StructIndex returns the 0-based position of a structure keyword (struct = 0).
func (k Kind) StructIndex() int { return int(k - KwStruct) }

// TextureIndex returns the 0-based position of a texture keyword (texture1D = 0).
func (k Kind) TextureIndex() int { return int(k - KwTexture1D) }

// SemanticIndex returns the 0-based position of a semantic keyword (POSITION = 0).
func (k Kind) SemanticIndex() int { return int(k - SemPosition) }

// FormatIndex returns the 0-based position of a format keyword (UNORM8 = 0).
func (k Kind) FormatIndex() int { return int(k - FmtUNORM8) }
