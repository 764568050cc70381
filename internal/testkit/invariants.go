package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"shaderx/internal/ast"
	"shaderx/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every item span is non-empty and within file content bounds
// 2) items follow source order and do not overlap
// 3) every statement of a function body lies inside its parent's span
func CheckSpanInvariants(b *ast.Builder, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prev source.Span
	for i, it := range b.Program {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if err := checkSpan(sp, sf.ID, lenContent); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("item span %v overlaps previous %v", sp, prev)
		}
		prev = sp

		if item.Kind != ast.ItemFunc {
			continue
		}
		if err := checkStmt(b, item.Body, sp, sf.ID, lenContent); err != nil {
			return err
		}
	}
	return nil
}

func checkSpan(sp source.Span, file source.FileID, lenContent uint32) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span: %v", sp)
	}
	if sp.File != file {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, file)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}
	return nil
}

func checkStmt(b *ast.Builder, id ast.StmtID, parent source.Span, file source.FileID, lenContent uint32) error {
	if !id.IsValid() {
		return nil
	}
	st := b.Stmts.Get(id)
	if st == nil {
		return fmt.Errorf("nil stmt for id=%d", id)
	}
	if err := checkSpan(st.Span, file, lenContent); err != nil {
		return fmt.Errorf("%s stmt: %w", st.Kind, err)
	}
	if st.Span.Start < parent.Start || st.Span.End > parent.End {
		return fmt.Errorf("%s stmt span %v is outside parent span %v", st.Kind, st.Span, parent)
	}

	var children []ast.StmtID
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := b.Stmts.Block(id)
		children = blk.Stmts
	case ast.StmtIf:
		s, _ := b.Stmts.If(id)
		children = []ast.StmtID{s.Then, s.Else}
	case ast.StmtWhile, ast.StmtDoWhile:
		s, _ := b.Stmts.Loop(id)
		children = []ast.StmtID{s.Body}
	case ast.StmtFor:
		s, _ := b.Stmts.For(id)
		children = []ast.StmtID{s.Init, s.Body}
	case ast.StmtSwitch:
		s, _ := b.Stmts.Switch(id)
		children = []ast.StmtID{s.Body}
	case ast.StmtCase, ast.StmtDefault:
		s, _ := b.Stmts.Case(id)
		children = []ast.StmtID{s.Body}
	}
	for _, child := range children {
		if err := checkStmt(b, child, st.Span, file, lenContent); err != nil {
			return err
		}
	}
	return nil
}
