package symbols

// StructKind enumerates the structure declaration keywords.
type StructKind uint8

const (
	StructPlain StructKind = iota
	StructCBuffer
	StructVertexInput
	StructVertexOutput
	StructFragmentInput
	StructFragmentOutput
	StructComputeInput
	StructComputeOutput
	StructKindCount
)

var structKindNames = [StructKindCount]string{
	"struct", "cbuffer", "vertex_input", "vertex_output",
	"fragment_input", "fragment_output", "compute_input", "compute_output",
}

func (k StructKind) String() string {
	if k < StructKindCount {
		return structKindNames[k]
	}
	return "struct(?)"
}

// HasTags reports whether members of this kind carry semantic/format/target tags.
func (k StructKind) HasTags() bool {
	return k >= StructVertexInput && k < StructKindCount
}

// IsStageIO reports whether the kind is a stage input or output.
func (k StructKind) IsStageIO() bool { return k.HasTags() }

// IsInput reports whether the kind is a stage input.
func (k StructKind) IsInput() bool {
	return k == StructVertexInput || k == StructFragmentInput || k == StructComputeInput
}

// IsOutput reports whether the kind is a stage output.
func (k StructKind) IsOutput() bool {
	return k == StructVertexOutput || k == StructFragmentOutput || k == StructComputeOutput
}

// TextureKind enumerates texture dimensionalities.
type TextureKind uint8

const (
	Texture1D TextureKind = iota
	Texture1DArray
	Texture2D
	Texture2DArray
	Texture3D
	TextureCube
	TextureCubeArray
	TextureKindCount
)

var textureKindNames = [TextureKindCount]string{
	"texture1D", "texture1DArray", "texture2D", "texture2DArray",
	"texture3D", "textureCube", "textureCubeArray",
}

func (k TextureKind) String() string {
	if k < TextureKindCount {
		return textureKindNames[k]
	}
	return "texture(?)"
}

// Type returns the built-in type of a texture variable of this kind.
func (k TextureKind) Type() TypeID { return TypeTexture1D + TypeID(k) }

// Semantic identifies the pipeline role of a stage-IO member.
type Semantic uint8

const (
	SemanticPosition Semantic = iota
	SemanticTexcoord
	SemanticNormal
	SemanticDepth
	SemanticColor
	SemanticCount
)

var semanticNames = [SemanticCount]string{"POSITION", "TEXCOORD", "NORMAL", "DEPTH", "COLOR"}

func (s Semantic) String() string {
	if s < SemanticCount {
		return semanticNames[s]
	}
	return "SEMANTIC(?)"
}

// Format is the storage format of a vertex_input member.
type Format uint8

const (
	FormatUNORM8 Format = iota
	FormatUNORM16
	FormatUNORM32
	FormatSNORM8
	FormatSNORM16
	FormatSNORM32
	FormatUINT8
	FormatUINT16
	FormatUINT32
	FormatSINT8
	FormatSINT16
	FormatSINT32
	FormatFLOAT16
	FormatFLOAT32
	FormatCount
)

var formatNames = [FormatCount]string{
	"UNORM8", "UNORM16", "UNORM32", "SNORM8", "SNORM16", "SNORM32",
	"UINT8", "UINT16", "UINT32", "SINT8", "SINT16", "SINT32",
	"FLOAT16", "FLOAT32",
}

func (f Format) String() string {
	if f < FormatCount {
		return formatNames[f]
	}
	return "FORMAT(?)"
}

// Size returns the byte size of one component.
func (f Format) Size() uint32 {
	switch f {
	case FormatUNORM8, FormatSNORM8, FormatUINT8, FormatSINT8:
		return 1
	case FormatUNORM16, FormatSNORM16, FormatUINT16, FormatSINT16, FormatFLOAT16:
		return 2
	default:
		return 4
	}
}

// Normalized reports whether integer data is normalised to [0,1] or [-1,1].
func (f Format) Normalized() bool {
	switch f {
	case FormatUNORM8, FormatUNORM16, FormatUNORM32, FormatSNORM8, FormatSNORM16, FormatSNORM32:
		return true
	default:
		return false
	}
}

// Stage is a pipeline stage with its own entry point.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
	StageCount
)

var stageNames = [StageCount]string{"vertex", "fragment", "compute"}

var stageEntries = [StageCount]string{"vertex_main", "fragment_main", "compute_main"}

func (s Stage) String() string {
	if s < StageCount {
		return stageNames[s]
	}
	return "stage(?)"
}

// EntryName returns the function name that defines the stage entry.
func (s Stage) EntryName() string { return stageEntries[s] }

// Input returns the structure kind of the entry's first parameter.
func (s Stage) Input() StructKind {
	return [StageCount]StructKind{StructVertexInput, StructFragmentInput, StructComputeInput}[s]
}

// Output returns the structure kind of the entry's second parameter.
func (s Stage) Output() StructKind {
	return [StageCount]StructKind{StructVertexOutput, StructFragmentOutput, StructComputeOutput}[s]
}

// StageForEntry maps an entry function name to its stage.
func StageForEntry(name string) (Stage, bool) {
	for i, entry := range stageEntries {
		if entry == name {
			return Stage(i), true // #nosec G115
		}
	}
	return StageCount, false
}
