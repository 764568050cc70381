package symbols

// ScopeMark is a saved scope height.
type ScopeMark int

// ScopeMark returns the current scope height.
func (t *Table) ScopeMark() ScopeMark { return ScopeMark(len(t.scope)) }

// ScopeReset truncates the scope back to mark.
func (t *Table) ScopeReset(mark ScopeMark) {
	if int(mark) < len(t.scope) {
		t.scope = t.scope[:mark]
	}
}

// PushScope makes an existing variable visible (used for member access).
func (t *Table) PushScope(id VariableID) { t.scope = append(t.scope, id) }

// PopScope removes the innermost visible variable.
func (t *Table) PopScope() {
	if len(t.scope) > 0 {
		t.scope = t.scope[:len(t.scope)-1]
	}
}

// FindVariable searches visible variables, innermost first.
func (t *Table) FindVariable(name string) (VariableID, bool) {
	for i := len(t.scope) - 1; i >= 0; i-- {
		id := t.scope[i]
		if t.Variables[id].Name == name {
			return id, true
		}
	}
	return NoVariableID, false
}

// Visible returns the current scope stack (read-only).
func (t *Table) Visible() []VariableID { return t.scope }
