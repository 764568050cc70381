package ast

import (
	"testing"

	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](2)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be nil")
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first index = %d, want 1", id)
	}
	if got := *a.Get(id); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range must be nil")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	lit := b.Exprs.NewInt(source.Span{}, 7)
	if _, ok := b.Exprs.Binary(lit); ok {
		t.Fatalf("int literal must not decode as binary")
	}
	data, ok := b.Exprs.Int(lit)
	if !ok || data.Value != 7 {
		t.Fatalf("int payload lost: %+v", data)
	}

	def := b.Stmts.NewCase(source.Span{}, NoExprID, NoStmtID)
	if b.Stmts.Get(def).Kind != StmtDefault {
		t.Fatalf("case without value must be default, got %s", b.Stmts.Get(def).Kind)
	}
	if _, ok := b.Stmts.Case(def); !ok {
		t.Fatalf("default must decode as case payload")
	}
}

func TestTypeOf(t *testing.T) {
	syms := symbols.NewTable()
	b := NewBuilder(Hints{})

	vec := syms.RegisterVariable(symbols.Variable{Name: "v", Type: symbols.TypeFloat3, Slot: symbols.NoSlot})
	mat := syms.RegisterVariable(symbols.Variable{Name: "m", Type: symbols.TypeFloat4x4, Slot: symbols.NoSlot})
	arr := syms.RegisterVariable(symbols.Variable{Name: "a", Type: symbols.TypeFloat2, ArrayX: 4, Slot: symbols.NoSlot})

	sp := source.Span{}
	cases := []struct {
		name string
		expr ExprID
		want symbols.TypeID
	}{
		{"variable", b.Exprs.NewVariable(sp, vec), symbols.TypeFloat3},
		{"literal", b.Exprs.NewFloat(sp, 1, "1.0"), symbols.TypeFloat},
		{"swizzle", b.Exprs.NewMember(sp, b.Exprs.NewVariable(sp, vec), b.Exprs.NewSwizzle(sp, "xy", symbols.TypeFloat2)), symbols.TypeFloat2},
		{"array element", b.Exprs.NewIndex(sp, b.Exprs.NewVariable(sp, arr), b.Exprs.NewInt(sp, 0)), symbols.TypeFloat2},
		{"matrix row", b.Exprs.NewIndex(sp, b.Exprs.NewVariable(sp, mat), b.Exprs.NewInt(sp, 0)), symbols.TypeFloat4},
		{"vector component", b.Exprs.NewIndex(sp, b.Exprs.NewVariable(sp, vec), b.Exprs.NewInt(sp, 2)), symbols.TypeFloat},
		{"mul matrix vector", b.Exprs.NewCall(sp, symbols.IntrinsicMul, []ExprID{
			b.Exprs.NewVariable(sp, mat),
			b.Exprs.NewCast(sp, symbols.TypeFloat4, nil),
		}), symbols.TypeFloat4},
		{"mul matrix matrix", b.Exprs.NewCall(sp, symbols.IntrinsicMul, []ExprID{
			b.Exprs.NewVariable(sp, mat),
			b.Exprs.NewVariable(sp, mat),
		}), symbols.TypeFloat4x4},
		{"sample", b.Exprs.NewCall(sp, symbols.IntrinsicSampleTexture2D, nil), symbols.TypeFloat4},
	}
	for _, tc := range cases {
		if got := b.TypeOf(syms, tc.expr); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, syms.TypeName(got), syms.TypeName(tc.want))
		}
	}
}

func TestIsConstExpr(t *testing.T) {
	syms := symbols.NewTable()
	b := NewBuilder(Hints{})
	sp := source.Span{}

	c := syms.RegisterVariable(symbols.Variable{Name: "c", Type: symbols.TypeFloat, Const: true, Slot: symbols.NoSlot})
	v := syms.RegisterVariable(symbols.Variable{Name: "v", Type: symbols.TypeFloat4, Slot: symbols.NoSlot})

	if !b.IsConstExpr(syms, b.Exprs.NewVariable(sp, c)) {
		t.Fatalf("const variable must not be assignable")
	}
	if b.IsConstExpr(syms, b.Exprs.NewGroup(sp, b.Exprs.NewVariable(sp, v))) {
		t.Fatalf("grouped variable must be assignable")
	}
	swz := b.Exprs.NewMember(sp, b.Exprs.NewVariable(sp, v), b.Exprs.NewSwizzle(sp, "x", symbols.TypeFloat))
	if b.IsConstExpr(syms, swz) {
		t.Fatalf("swizzle of a variable must be assignable")
	}
	if !b.IsConstExpr(syms, b.Exprs.NewInt(sp, 1)) {
		t.Fatalf("literal must not be assignable")
	}
}
