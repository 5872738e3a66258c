package vdom

import "strings"

// Attrs holds element attributes.
type Attrs map[string]string

// A builds Attrs from key/value pairs. A trailing key without a value is
// ignored.
func A(kv ...string) Attrs {
	out := make(Attrs, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

// With returns a copy of a with key set to value.
func (a Attrs) With(key, value string) Attrs {
	out := make(Attrs, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[key] = value
	return out
}

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attrs { return Attrs{"class": strings.Join(classes, " ")} }

// ID sets the id attribute.
func ID(id string) Attrs { return Attrs{"id": id} }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attrs { return Attrs{"data-" + key: value} }

func copyAttrs(a Attrs) map[string]string {
	out := make(map[string]string, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// diffAttrs brings n's attributes from prev to next.
func diffAttrs(ctx *Ctx, n *Node, prev, next Attrs) {
	// Check for removed/changed attributes
	for key, prevVal := range prev {
		nextVal, exists := next[key]
		if !exists {
			delete(n.Attrs, key)
			ctx.emit(Patch{Op: PatchRemoveAttr, Target: n.ID, Key: key})
		} else if prevVal != nextVal {
			n.Attrs[key] = nextVal
			ctx.emit(Patch{Op: PatchSetAttr, Target: n.ID, Key: key, Value: nextVal})
		}
	}

	// Check for added attributes
	for key, nextVal := range next {
		if _, exists := prev[key]; !exists {
			n.Attrs[key] = nextVal
			ctx.emit(Patch{Op: PatchSetAttr, Target: n.ID, Key: key, Value: nextVal})
		}
	}
}
