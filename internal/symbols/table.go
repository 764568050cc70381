package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Table owns every entity created while parsing one shader file.
// Entities are append-only; IDs are indices into the slices.
type Table struct {
	Types     []Type
	Variables []Variable
	Functions []Function
	Structs   []Structure
	Textures  []Texture

	typeIndex     map[string]TypeID
	functionIndex map[string]FunctionID
	textureIndex  map[string]TextureID // имя переменной текстуры -> текстура
	swizzleIndex  map[string]int

	scope []VariableID
}

// NewTable builds a table pre-populated with primitives, intrinsics and swizzles.
func NewTable() *Table {
	t := &Table{
		Types:         make([]Type, 0, PrimitiveCount+16),
		Variables:     make([]Variable, 0, 64),
		Functions:     make([]Function, 0, IntrinsicCount+8),
		typeIndex:     make(map[string]TypeID, PrimitiveCount+16),
		functionIndex: make(map[string]FunctionID, IntrinsicCount+8),
		textureIndex:  make(map[string]TextureID),
		swizzleIndex:  make(map[string]int, len(swizzleNames)),
		scope:         make([]VariableID, 0, 32),
	}
	for _, name := range primitiveNames {
		t.RegisterType(Type{Name: name, Builtin: true, Struct: NoStructID})
	}
	for i, name := range swizzleNames {
		t.swizzleIndex[name] = i
	}
	for i, name := range intrinsicNames {
		ret := TypeFloat4
		if FunctionID(i) == IntrinsicMul { // #nosec G115
			ret = NoTypeID // тип зависит от аргументов, см. parser
		}
		t.RegisterFunction(Function{Name: name, Builtin: true, Return: ret})
	}
	return t
}

func nextID[T any](items []T) uint32 {
	n, err := safecast.Conv[uint32](len(items))
	if err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	return n
}

// RegisterType appends a type and indexes it by name.
func (t *Table) RegisterType(typ Type) TypeID {
	id := TypeID(nextID(t.Types))
	t.Types = append(t.Types, typ)
	t.typeIndex[typ.Name] = id
	return id
}

// RegisterVariable appends a variable and pushes it onto the active scope.
func (t *Table) RegisterVariable(v Variable) VariableID {
	id := VariableID(nextID(t.Variables))
	t.Variables = append(t.Variables, v)
	t.scope = append(t.scope, id)
	return id
}

// RegisterFunction appends a function and indexes it by name.
func (t *Table) RegisterFunction(fn Function) FunctionID {
	id := FunctionID(nextID(t.Functions))
	t.Functions = append(t.Functions, fn)
	t.functionIndex[fn.Name] = id
	return id
}

// RegisterStruct appends a structure record.
func (t *Table) RegisterStruct(s Structure) StructID {
	id := StructID(nextID(t.Structs))
	t.Structs = append(t.Structs, s)
	return id
}

// RegisterTexture appends a texture and links it to its variable.
func (t *Table) RegisterTexture(tex Texture) TextureID {
	id := TextureID(nextID(t.Textures))
	t.Textures = append(t.Textures, tex)
	t.Variables[tex.Variable].Texture = id
	t.textureIndex[t.Variables[tex.Variable].Name] = id
	return id
}

func (t *Table) Type(id TypeID) *Type             { return &t.Types[id] }
func (t *Table) Variable(id VariableID) *Variable { return &t.Variables[id] }
func (t *Table) Function(id FunctionID) *Function { return &t.Functions[id] }
func (t *Table) Struct(id StructID) *Structure    { return &t.Structs[id] }
func (t *Table) Texture(id TextureID) *Texture    { return &t.Textures[id] }

// LookupType finds a type by name.
func (t *Table) LookupType(name string) (TypeID, bool) {
	id, ok := t.typeIndex[name]
	return id, ok
}

// LookupFunction finds a function by name.
func (t *Table) LookupFunction(name string) (FunctionID, bool) {
	id, ok := t.functionIndex[name]
	return id, ok
}

// LookupTexture finds a texture by its variable name.
func (t *Table) LookupTexture(name string) (TextureID, bool) {
	id, ok := t.textureIndex[name]
	return id, ok
}

// LookupSwizzle reports whether name is an accepted swizzle and returns
// its component count.
func (t *Table) LookupSwizzle(name string) (int, bool) {
	if _, ok := t.swizzleIndex[name]; !ok {
		return 0, false
	}
	return len(name), true
}

// Members returns the member variable IDs of a structure type.
func (t *Table) Members(id TypeID) []VariableID {
	typ := &t.Types[id]
	out := make([]VariableID, typ.MemberCount)
	for i := range out {
		out[i] = typ.MemberFirst + VariableID(i) // #nosec G115
	}
	return out
}

// Params returns the parameter variable IDs of a function.
func (t *Table) Params(id FunctionID) []VariableID {
	fn := &t.Functions[id]
	out := make([]VariableID, fn.ParamCount)
	for i := range out {
		out[i] = fn.ParamFirst + VariableID(i) // #nosec G115
	}
	return out
}

// Conflict reports which namespace, if any, already uses name:
// "type", "function" or "variable" (visible variables only).
func (t *Table) Conflict(name string) (string, bool) {
	if _, ok := t.typeIndex[name]; ok {
		return "type", true
	}
	if _, ok := t.functionIndex[name]; ok {
		return "function", true
	}
	if _, ok := t.FindVariable(name); ok {
		return "variable", true
	}
	return "", false
}

// TypeName returns the declared spelling of a type.
func (t *Table) TypeName(id TypeID) string {
	if !id.IsValid() || int(id) >= len(t.Types) {
		return "<unknown>"
	}
	return t.Types[id].Name
}
