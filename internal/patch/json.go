package patch

// JSONOpKind selects how a JSONOp treats its path.
type JSONOpKind string

const (
	// OpSet writes the value, creating intermediate objects as needed.
	OpSet JSONOpKind = "set"
	// OpSetIfParent writes the value only when the parent object already
	// exists; build variants that lack the section are left alone.
	OpSetIfParent JSONOpKind = "set_if_parent"
	// OpRemove deletes the key when present; absence is a no-op.
	OpRemove JSONOpKind = "remove"
)

// JSONOp is one field insertion, overwrite, or removal. Path addresses
// nested objects; the last element is the key operated on.
type JSONOp struct {
	Op    JSONOpKind
	Path  []string
	Value any
}

// applyJSONOps mutates doc in place. Ops are deterministic and idempotent:
// applying the same list twice yields the same document.
func applyJSONOps(doc map[string]any, ops []JSONOp) {
	for _, op := range ops {
		if len(op.Path) == 0 {
			continue
		}
		parentPath, key := op.Path[:len(op.Path)-1], op.Path[len(op.Path)-1]

		switch op.Op {
		case OpSet:
			parent := descendCreate(doc, parentPath)
			parent[key] = op.Value

		case OpSetIfParent:
			if parent := descend(doc, parentPath); parent != nil {
				parent[key] = op.Value
			}

		case OpRemove:
			if parent := descend(doc, parentPath); parent != nil {
				delete(parent, key)
			}
		}
	}
}

// descend walks path through nested objects, returning nil when any step is
// missing or not an object.
func descend(doc map[string]any, path []string) map[string]any {
	cur := doc
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// descendCreate walks path, creating missing intermediate objects. A step
// that exists but is not an object is replaced with one.
func descendCreate(doc map[string]any, path []string) map[string]any {
	cur := doc
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	return cur
}
