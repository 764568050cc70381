package gen

import (
	"fmt"

	"shaderx/internal/ast"
	"shaderx/internal/symbols"
)

// Block writes a braced statement block at the current indentation.
func (g *Generator) Block(id ast.StmtID) {
	g.Indent()
	g.Write("{\n")
	g.IndentAdd()
	if blk, ok := g.B.Stmts.Block(id); ok {
		for _, s := range blk.Stmts {
			g.Stmt(s)
		}
	} else if id.IsValid() {
		g.Stmt(id)
	}
	g.IndentSub()
	g.Indent()
	g.Write("}\n")
}

// Stmt writes one statement followed by a newline.
func (g *Generator) Stmt(id ast.StmtID) {
	st := g.B.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtBlock:
		g.Block(id)

	case ast.StmtExpr:
		data, _ := g.B.Stmts.Expr(id)
		g.Indent()
		g.Expr(data.Expr)
		g.Write(";\n")

	case ast.StmtVarDecl:
		data, _ := g.B.Stmts.VarDecl(id)
		g.Indent()
		g.VarDecl(data.Var, data.Init)
		g.Write(";\n")

	case ast.StmtIf:
		g.LeadingNewline()
		g.ifStmt(id)
		g.Write("\n")

	case ast.StmtWhile:
		data, _ := g.B.Stmts.Loop(id)
		g.LeadingNewline()
		g.Indent()
		g.Write("while( ")
		g.Expr(data.Cond)
		g.Write(" )\n")
		g.Block(data.Body)
		g.Write("\n")

	case ast.StmtDoWhile:
		data, _ := g.B.Stmts.Loop(id)
		g.LeadingNewline()
		g.Indent()
		g.Write("do\n")
		g.Block(data.Body)
		g.Indent()
		g.Write("while( ")
		g.Expr(data.Cond)
		g.Write(" );\n")
		g.Write("\n")

	case ast.StmtFor:
		data, _ := g.B.Stmts.For(id)
		g.LeadingNewline()
		g.Indent()
		g.Write("for( ")
		g.forInit(data.Init)
		g.Write("; ")
		if data.Cond.IsValid() {
			g.Expr(data.Cond)
		} else {
			g.Write("true")
		}
		g.Write(";")
		if data.Post.IsValid() {
			g.Write(" ")
			g.Expr(data.Post)
		}
		g.Write(" )\n")
		g.Block(data.Body)
		g.Write("\n")

	case ast.StmtSwitch:
		data, _ := g.B.Stmts.Switch(id)
		g.LeadingNewline()
		g.Indent()
		g.Write("switch( ")
		g.Expr(data.Tag)
		g.Write(" )\n")
		g.Block(data.Body)
		g.Write("\n")

	case ast.StmtCase, ast.StmtDefault:
		data, _ := g.B.Stmts.Case(id)
		g.Indent()
		if st.Kind == ast.StmtCase {
			g.Write("case ")
			g.Expr(data.Value)
			g.Write(":\n")
		} else {
			g.Write("default:\n")
		}
		g.caseBody(data.Body)

	case ast.StmtReturn:
		data, _ := g.B.Stmts.Return(id)
		g.Indent()
		g.Write("return")
		if data.Value.IsValid() {
			g.Write(" ")
			g.Expr(data.Value)
		}
		g.Write(";\n")

	case ast.StmtBreak:
		g.Indent()
		g.Write("break;\n")

	case ast.StmtDiscard:
		g.Indent()
		g.Write("discard;\n")
	}
}

// ifStmt writes if/else without the surrounding newlines; an else-if
// chain nests as a block-less if under "else".
func (g *Generator) ifStmt(id ast.StmtID) {
	data, _ := g.B.Stmts.If(id)
	g.Indent()
	g.Write("if( ")
	g.Expr(data.Cond)
	g.Write(" )\n")
	g.Block(data.Then)
	if !data.Else.IsValid() {
		return
	}
	g.Indent()
	g.Write("else\n")
	if g.B.Stmts.Get(data.Else).Kind == ast.StmtIf {
		g.ifStmt(data.Else)
		return
	}
	g.Block(data.Else)
}

func (g *Generator) forInit(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	switch g.B.Stmts.Get(id).Kind {
	case ast.StmtVarDecl:
		data, _ := g.B.Stmts.VarDecl(id)
		g.VarDecl(data.Var, data.Init)
	case ast.StmtExpr:
		data, _ := g.B.Stmts.Expr(id)
		g.Expr(data.Expr)
	}
}

func (g *Generator) caseBody(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	if g.B.Stmts.Get(id).Kind == ast.StmtBlock {
		g.Block(id)
		return
	}
	g.IndentAdd()
	g.Stmt(id)
	g.IndentSub()
}

// Qualifiers writes the in/out/inout and const prefixes of a variable.
func (g *Generator) Qualifiers(v *symbols.Variable, withConst bool) {
	switch {
	case v.In && v.Out:
		g.Write("inout ")
	case v.In:
		g.Write("in ")
	case v.Out:
		g.Write("out ")
	}
	if withConst && v.Const {
		g.Write("const ")
	}
}

// Dims writes the array dimensions of a variable.
func (g *Generator) Dims(v *symbols.Variable) {
	if v.ArrayX != 0 {
		g.Write(fmt.Sprintf("[%d]", v.ArrayX))
	}
	if v.ArrayY != 0 {
		g.Write(fmt.Sprintf("[%d]", v.ArrayY))
	}
}

// VarDecl writes `[in |out |inout ][const ]type name[X][Y][ = init]`.
func (g *Generator) VarDecl(id symbols.VariableID, init ast.ExprID) {
	v := g.Syms.Variable(id)
	g.Qualifiers(v, true)
	g.Write(g.TypeName(v.Type), " ", g.VariableName(id))
	g.Dims(v)
	if init.IsValid() {
		g.Write(" = ")
		g.Expr(init)
	}
}

// FunctionDecl writes a function with its parameter list and body.
// With skipCBuffer, cbuffer parameters are omitted: their members are
// global names in the target language.
func (g *Generator) FunctionDecl(item *ast.Item, skipCBuffer bool) {
	fn := g.Syms.Function(item.Func)
	g.Indent()
	g.Write(g.TypeName(fn.Return), " ", g.FunctionName(item.Func))

	params := g.Syms.Params(item.Func)
	if len(params) == 0 {
		g.Write("()\n")
	} else {
		g.Write("(")
		count := 0
		for _, p := range params {
			v := g.Syms.Variable(p)
			if skipCBuffer && g.IsCBuffer(v.Type) {
				continue
			}
			if count == 0 {
				g.Write(" ")
			} else {
				g.Write(", ")
			}
			g.Qualifiers(v, true)
			g.Write(g.TypeName(v.Type), " ", g.VariableName(p))
			g.Dims(v)
			count++
		}
		if count > 0 {
			g.Write(" )\n")
		} else {
			g.Write(")\n")
		}
	}
	g.Block(item.Body)
	g.Write("\n")
}
