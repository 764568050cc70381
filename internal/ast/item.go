package ast

import (
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

type ItemKind uint8

const (
	ItemStruct ItemKind = iota
	ItemTexture
	ItemFunc
)

func (k ItemKind) String() string {
	switch k {
	case ItemStruct:
		return "struct"
	case ItemTexture:
		return "texture"
	case ItemFunc:
		return "func"
	default:
		return "item(?)"
	}
}

// Item is a top-level declaration. Only the field matching Kind is meaningful.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Struct  symbols.StructID
	Texture symbols.TextureID
	Func    symbols.FunctionID
	Body    StmtID // ItemFunc: блок тела
}

type Items struct {
	Arena *Arena[Item]
}

func NewItems(capHint uint) *Items {
	return &Items{Arena: NewArena[Item](capHint)}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewStruct(span source.Span, s symbols.StructID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind: ItemStruct, Span: span, Struct: s,
		Texture: symbols.NoTextureID, Func: symbols.NoFunctionID,
	}))
}

func (i *Items) NewTexture(span source.Span, t symbols.TextureID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind: ItemTexture, Span: span, Texture: t,
		Struct: symbols.NoStructID, Func: symbols.NoFunctionID,
	}))
}

func (i *Items) NewFunc(span source.Span, fn symbols.FunctionID, body StmtID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind: ItemFunc, Span: span, Func: fn, Body: body,
		Struct: symbols.NoStructID, Texture: symbols.NoTextureID,
	}))
}
