package view

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vango-dev/viewcore/internal/errors"
)

// ViewID identifies a child within its parent. It is opaque to everything
// but the parent that minted it.
type ViewID uint64

// String returns the id in base 16.
func (id ViewID) String() string {
	return strconv.FormatUint(uint64(id), 16)
}

// IDFromKey derives an id from a caller supplied token.
func IDFromKey(key string) ViewID {
	return ViewID(xxhash.Sum64String(key))
}

// Path is the sequence of ids from the root to a node.
type Path []ViewID

// String renders the path as "/a/b/c". The root path is "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, id := range p {
		b.WriteByte('/')
		b.WriteString(id.String())
	}
	return b.String()
}

// Clone returns a copy of p that does not share storage.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and o hold the same ids.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor path of (or equal to) p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// ParsePath parses the output of Path.String.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "/" {
		return Path{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, errors.Newf(errors.CategoryPath, "path %q must start with /", s)
	}
	parts := strings.Split(s[1:], "/")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseUint(part, 16, 64)
		if err != nil {
			return nil, errors.Newf(errors.CategoryPath, "invalid path segment %q", part).Wrap(err)
		}
		out = append(out, ViewID(v))
	}
	return out, nil
}

// PathTracker is the addressing capability every Context provides.
type PathTracker interface {
	PushID(id ViewID)
	PopID()
	// Path returns a copy of the current path.
	Path() Path
	Depth() int
}

// Tracker is the stock PathTracker. Hosts embed it in their context type.
type Tracker struct {
	ids []ViewID

	// Debug enables the extra prefix check in WithID.
	Debug bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{ids: make([]ViewID, 0, 16)}
}

// PushID enters a path segment.
func (t *Tracker) PushID(id ViewID) {
	t.ids = append(t.ids, id)
}

// PopID leaves the innermost path segment.
func (t *Tracker) PopID() {
	if len(t.ids) == 0 {
		errors.Panic("VC001", "pop on an empty path")
	}
	t.ids = t.ids[:len(t.ids)-1]
}

// Path returns a copy of the current path.
func (t *Tracker) Path() Path {
	return Path(t.ids).Clone()
}

// Depth returns the number of segments currently entered.
func (t *Tracker) Depth() int {
	return len(t.ids)
}

// Reset drops every segment. Drivers call it before a pass.
func (t *Tracker) Reset() {
	t.ids = t.ids[:0]
}

func (t *Tracker) debugEnabled() bool {
	return t.Debug
}

// WithID runs fn with id pushed onto the path of ctx.
//
// The segment is popped by a deferred call, so it is also popped when fn
// panics. If fn leaves the path at a
// different depth the pass is aborted. When the tracker runs in debug mode
// the ids below the pushed segment are also verified to be untouched.
func WithID(ctx PathTracker, id ViewID, fn func()) {
	depth := ctx.Depth()
	var before Path
	d, check := ctx.(interface{ debugEnabled() bool })
	check = check && d.debugEnabled()
	if check {
		before = ctx.Path()
	}

	ctx.PushID(id)
	defer func() {
		if got := ctx.Depth(); got != depth+1 {
			errors.Panic("VC001", "depth %d after scope of %s, expected %d", got, id, depth+1)
		}
		ctx.PopID()

		if check && !ctx.Path().Equal(before) {
			errors.Panic("VC001", "path %s rewritten inside scope of %s, expected %s", ctx.Path(), id, before)
		}
	}()
	fn()
}
