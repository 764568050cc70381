package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"shaderx/internal/ast"
	"shaderx/internal/parser"
	"shaderx/internal/source"
	"shaderx/internal/symbols"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает top-level объявления файла деревом.
func FormatASTPretty(w io.Writer, res parser.Result, fs *source.FileSet) error {
	root := buildProgram(res)
	header := "File"
	if fs != nil && len(res.Builder.Program) > 0 {
		first := res.Builder.Items.Get(res.Builder.Program[0])
		header = fs.Get(first.Span.File).FormatPath("auto", fs.BaseDir())
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	var sb strings.Builder
	writeChildren(&sb, root.Children, "", fs)
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatASTJSON выводит то же дерево в JSON.
func FormatASTJSON(w io.Writer, res parser.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildProgram(res))
}

func writeChildren(sb *strings.Builder, nodes []ASTNodeOutput, prefix string, fs *source.FileSet) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + n.Type)
		if n.Kind != "" {
			sb.WriteString(" " + n.Kind)
		}
		if n.Text != "" {
			sb.WriteString(": " + n.Text)
		}
		fmt.Fprintf(sb, " (span: %s)\n", formatSpan(n.Span, fs))
		writeChildren(sb, n.Children, prefix+next, fs)
	}
}

func buildProgram(res parser.Result) ASTNodeOutput {
	root := ASTNodeOutput{Type: "File"}
	entries := make(map[ast.ItemID]symbols.Stage, symbols.StageCount)
	for stage := range symbols.StageCount {
		if res.HasStage(stage) {
			entries[res.EntryItems[stage]] = stage
		}
	}
	for _, id := range res.Builder.Program {
		item := res.Builder.Items.Get(id)
		node := itemNode(res, item)
		if stage, ok := entries[id]; ok {
			node.Kind = stage.String() + " entry"
		}
		root.Span = root.Span.Cover(item.Span)
		root.Children = append(root.Children, node)
	}
	return root
}

func itemNode(res parser.Result, item *ast.Item) ASTNodeOutput {
	syms := res.Symbols
	switch item.Kind {
	case ast.ItemStruct:
		s := syms.Struct(item.Struct)
		typ := syms.Type(s.Type)
		text := typ.Name
		if s.Slot != symbols.NoSlot {
			text = fmt.Sprintf("%s ( %d )", typ.Name, s.Slot)
		}
		node := ASTNodeOutput{Type: "Struct", Kind: s.Kind.String(), Span: item.Span, Text: text}
		for _, m := range syms.Members(s.Type) {
			node.Children = append(node.Children, memberNode(syms, s.Kind, syms.Variable(m)))
		}
		return node
	case ast.ItemTexture:
		tex := syms.Texture(item.Texture)
		v := syms.Variable(tex.Variable)
		return ASTNodeOutput{
			Type: "Texture",
			Span: item.Span,
			Text: fmt.Sprintf("%s( %d ) %s", tex.Kind, tex.Slot, v.Name),
		}
	default:
		fn := syms.Function(item.Func)
		params := make([]string, 0, fn.ParamCount)
		for _, p := range syms.Params(item.Func) {
			v := syms.Variable(p)
			params = append(params, syms.TypeName(v.Type)+" "+v.Name)
		}
		node := ASTNodeOutput{
			Type: "Func",
			Span: item.Span,
			Text: fmt.Sprintf("%s %s( %s )", syms.TypeName(fn.Return), fn.Name, strings.Join(params, ", ")),
		}
		if item.Body.IsValid() {
			node.Children = append(node.Children, stmtNode(res.Builder, item.Body))
		}
		return node
	}
}

func memberNode(syms *symbols.Table, kind symbols.StructKind, v *symbols.Variable) ASTNodeOutput {
	var sb strings.Builder
	sb.WriteString(syms.TypeName(v.Type) + " " + v.Name)
	if v.ArrayX != 0 {
		fmt.Fprintf(&sb, "[%d]", v.ArrayX)
	}
	if v.ArrayY != 0 {
		fmt.Fprintf(&sb, "[%d]", v.ArrayY)
	}
	if kind.HasTags() {
		fmt.Fprintf(&sb, " semantic( %s )", v.Semantic)
	}
	if kind == symbols.StructVertexInput {
		fmt.Fprintf(&sb, " format( %s )", v.Format)
	}
	if kind == symbols.StructFragmentOutput && v.Slot != symbols.NoSlot {
		fmt.Fprintf(&sb, " target( %d )", v.Slot)
	}
	return ASTNodeOutput{Type: "Member", Span: v.Span, Text: sb.String()}
}

func stmtNode(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	st := b.Stmts.Get(id)
	node := ASTNodeOutput{Type: st.Kind.String(), Span: st.Span}
	child := func(c ast.StmtID) {
		if c.IsValid() {
			node.Children = append(node.Children, stmtNode(b, c))
		}
	}
	switch st.Kind {
	case ast.StmtBlock:
		if blk, ok := b.Stmts.Block(id); ok {
			for _, c := range blk.Stmts {
				child(c)
			}
		}
	case ast.StmtIf:
		if s, ok := b.Stmts.If(id); ok {
			child(s.Then)
			child(s.Else)
		}
	case ast.StmtWhile, ast.StmtDoWhile:
		if s, ok := b.Stmts.Loop(id); ok {
			child(s.Body)
		}
	case ast.StmtFor:
		if s, ok := b.Stmts.For(id); ok {
			child(s.Init)
			child(s.Body)
		}
	case ast.StmtSwitch:
		if s, ok := b.Stmts.Switch(id); ok {
			child(s.Body)
		}
	case ast.StmtCase, ast.StmtDefault:
		if s, ok := b.Stmts.Case(id); ok {
			child(s.Body)
		}
	}
	return node
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
