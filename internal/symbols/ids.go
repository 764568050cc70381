package symbols

type (
	TypeID     uint32
	VariableID uint32
	FunctionID uint32
	StructID   uint32
	TextureID  uint32
)

// Отсутствующие значения: индексы 0-based, поэтому sentinel — максимум.
const (
	NoTypeID     TypeID     = ^TypeID(0)
	NoVariableID VariableID = ^VariableID(0)
	NoFunctionID FunctionID = ^FunctionID(0)
	NoStructID   StructID   = ^StructID(0)
	NoTextureID  TextureID  = ^TextureID(0)
)

func (id TypeID) IsValid() bool     { return id != NoTypeID }
func (id VariableID) IsValid() bool { return id != NoVariableID }
func (id FunctionID) IsValid() bool { return id != NoFunctionID }
func (id StructID) IsValid() bool   { return id != NoStructID }
func (id TextureID) IsValid() bool  { return id != NoTextureID }

// NoSlot marks a variable or structure without an explicit binding slot.
const NoSlot = -1
