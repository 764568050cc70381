package ast

type Hints struct{ Items, Stmts, Exprs uint }

// Builder owns every node of one parsed shader file.
// Program lists top-level declarations in source order.
type Builder struct {
	Items   *Items
	Stmts   *Stmts
	Exprs   *Exprs
	Program []ItemID
}

func NewBuilder(hints Hints) *Builder {
	if hints.Items == 0 {
		hints.Items = 1 << 5
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	return &Builder{
		Items: NewItems(hints.Items),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// PushItem appends a top-level declaration to the program.
func (b *Builder) PushItem(id ItemID) {
	b.Program = append(b.Program, id)
}

// IndexOf returns the program position of item, or -1.
func (b *Builder) IndexOf(item ItemID) int {
	for i, id := range b.Program {
		if id == item {
			return i
		}
	}
	return -1
}
