// Package reach computes which declarations a stage entry point uses.
// Generators emit only the top-level items a Seen set marks.
package reach

import (
	"slices"

	"shaderx/internal/ast"
	"shaderx/internal/symbols"
)

// Seen is the per-stage dead-code mask.
type Seen struct {
	HasEntry  bool
	Entry     symbols.FunctionID
	types     []bool
	functions []bool
	textures  []bool
}

func (s *Seen) Type(id symbols.TypeID) bool {
	return int(id) < len(s.types) && s.types[id]
}

func (s *Seen) Function(id symbols.FunctionID) bool {
	return int(id) < len(s.functions) && s.functions[id]
}

func (s *Seen) Texture(id symbols.TextureID) bool {
	return int(id) < len(s.textures) && s.textures[id]
}

// Item reports whether a top-level declaration must be emitted.
func (s *Seen) Item(b *ast.Builder, syms *symbols.Table, id ast.ItemID) bool {
	item := b.Items.Get(id)
	if item == nil {
		return false
	}
	switch item.Kind {
	case ast.ItemStruct:
		return s.Type(syms.Struct(item.Struct).Type)
	case ast.ItemTexture:
		return s.Texture(item.Texture)
	case ast.ItemFunc:
		return s.Function(item.Func)
	}
	return false
}

// Analyze walks everything reachable from the entry function item.
// An invalid entry yields an empty Seen with HasEntry=false.
func Analyze(b *ast.Builder, syms *symbols.Table, entry ast.ItemID) Seen {
	seen := Seen{
		Entry:     symbols.NoFunctionID,
		types:     make([]bool, len(syms.Types)),
		functions: make([]bool, len(syms.Functions)),
		textures:  make([]bool, len(syms.Textures)),
	}
	item := b.Items.Get(entry)
	if item == nil || item.Kind != ast.ItemFunc {
		return seen
	}
	seen.HasEntry = true
	seen.Entry = item.Func

	// тела функций по FunctionID
	bodies := make(map[symbols.FunctionID]ast.StmtID, len(b.Program))
	for _, id := range b.Program {
		if it := b.Items.Get(id); it != nil && it.Kind == ast.ItemFunc {
			bodies[it.Func] = it.Body
		}
	}

	w := &walker{b: b, syms: syms, seen: &seen}
	work := []symbols.FunctionID{item.Func}
	for len(work) > 0 {
		last := len(work) - 1
		fn := work[last]
		work = work[:last]
		if seen.functions[fn] {
			continue
		}
		seen.functions[fn] = true
		f := syms.Function(fn)
		if f.Builtin {
			continue
		}
		w.markType(f.Return)
		for _, p := range syms.Params(fn) {
			w.markVariable(p)
		}
		w.calls = w.calls[:0]
		w.walkStmt(bodies[fn])
		work = append(work, w.calls...)
	}
	return seen
}

type walker struct {
	b     *ast.Builder
	syms  *symbols.Table
	seen  *Seen
	calls []symbols.FunctionID
}

// markType отмечает тип и, для структур, типы всех членов.
func (w *walker) markType(id symbols.TypeID) {
	work := []symbols.TypeID{id}
	for len(work) > 0 {
		last := len(work) - 1
		t := work[last]
		work = work[:last]
		if !t.IsValid() || int(t) >= len(w.seen.types) || w.seen.types[t] {
			continue
		}
		w.seen.types[t] = true
		if w.syms.Type(t).Builtin {
			continue
		}
		for _, m := range w.syms.Members(t) {
			work = append(work, w.syms.Variable(m).Type)
		}
	}
}

func (w *walker) markVariable(id symbols.VariableID) {
	v := w.syms.Variable(id)
	w.markType(v.Type)
	if v.Texture.IsValid() {
		w.seen.textures[v.Texture] = true
	}
}

func (w *walker) walkStmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	st := w.b.Stmts
	switch st.Get(id).Kind {
	case ast.StmtBlock:
		blk, _ := st.Block(id)
		for _, s := range blk.Stmts {
			w.walkStmt(s)
		}
	case ast.StmtExpr:
		data, _ := st.Expr(id)
		w.walkExpr(data.Expr)
	case ast.StmtVarDecl:
		data, _ := st.VarDecl(id)
		w.markVariable(data.Var)
		w.walkExpr(data.Init)
	case ast.StmtIf:
		data, _ := st.If(id)
		w.walkExpr(data.Cond)
		w.walkStmt(data.Then)
		w.walkStmt(data.Else)
	case ast.StmtWhile, ast.StmtDoWhile:
		data, _ := st.Loop(id)
		w.walkExpr(data.Cond)
		w.walkStmt(data.Body)
	case ast.StmtFor:
		data, _ := st.For(id)
		w.walkStmt(data.Init)
		w.walkExpr(data.Cond)
		w.walkExpr(data.Post)
		w.walkStmt(data.Body)
	case ast.StmtSwitch:
		data, _ := st.Switch(id)
		w.walkExpr(data.Tag)
		w.walkStmt(data.Body)
	case ast.StmtCase, ast.StmtDefault:
		data, _ := st.Case(id)
		w.walkExpr(data.Value)
		w.walkStmt(data.Body)
	case ast.StmtReturn:
		data, _ := st.Return(id)
		w.walkExpr(data.Value)
	}
}

func (w *walker) walkExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	ex := w.b.Exprs
	switch ex.Get(id).Kind {
	case ast.ExprVariable:
		data, _ := ex.Variable(id)
		w.markVariable(data.Var)
	case ast.ExprBinary:
		data, _ := ex.Binary(id)
		w.walkExpr(data.Left)
		w.walkExpr(data.Right)
	case ast.ExprUnary:
		data, _ := ex.Unary(id)
		w.walkExpr(data.Operand)
	case ast.ExprTernary:
		data, _ := ex.Ternary(id)
		w.walkExpr(data.Cond)
		w.walkExpr(data.Then)
		w.walkExpr(data.Else)
	case ast.ExprCall:
		data, _ := ex.Call(id)
		if !slices.Contains(w.calls, data.Func) {
			w.calls = append(w.calls, data.Func)
		}
		for _, a := range data.Args {
			w.walkExpr(a)
		}
	case ast.ExprCast:
		data, _ := ex.Cast(id)
		w.markType(data.Type)
		for _, a := range data.Args {
			w.walkExpr(a)
		}
	case ast.ExprGroup:
		data, _ := ex.Group(id)
		w.walkExpr(data.Inner)
	case ast.ExprMember:
		data, _ := ex.Member(id)
		w.walkExpr(data.Target)
		w.walkExpr(data.Field)
	case ast.ExprIndex:
		data, _ := ex.Index(id)
		w.walkExpr(data.Target)
		w.walkExpr(data.Index)
	}
}
