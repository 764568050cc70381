package layout

import "shaderx/internal/symbols"

// cache keeps std140 layouts of built-in types; the set is small and fixed.
type cache struct {
	byType map[symbols.TypeID]TypeLayout
}

func newCache() *cache {
	return &cache{byType: make(map[symbols.TypeID]TypeLayout, int(symbols.PrimitiveCount))}
}

func (c *cache) get(id symbols.TypeID) (TypeLayout, bool) {
	if c == nil {
		return TypeLayout{}, false
	}
	l, ok := c.byType[id]
	return l, ok
}

func (c *cache) put(id symbols.TypeID, l *TypeLayout) {
	if c == nil {
		return
	}
	if l == nil {
		delete(c.byType, id)
		return
	}
	c.byType[id] = *l
}
