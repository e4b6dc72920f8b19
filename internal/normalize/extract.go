package normalize

// Path is an ordered key walk into a nested payload.
type Path []string

// Extract probes payload with each path in order and returns the first value
// that resolves to something non-nil. A step that is not an object, or that
// lacks the key, abandons the current path; later paths still get their turn.
// Path order is the tie-break: once a path yields a non-nil value, the rest
// are never consulted.
func Extract(payload map[string]any, paths []Path) any {
	for _, path := range paths {
		var cur any = payload
		hit := true
		for _, key := range path {
			m, ok := cur.(map[string]any)
			if !ok {
				hit = false
				break
			}
			v, ok := m[key]
			if !ok {
				hit = false
				break
			}
			cur = v
		}
		if hit && cur != nil {
			return cur
		}
	}
	return nil
}
