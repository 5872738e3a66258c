package view_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/viewcore/pkg/view"
)

func TestWithIDScopes(t *testing.T) {
	ctx := view.NewTracker()
	view.WithID(ctx, 1, func() {
		view.WithID(ctx, 2, func() {
			if diff := cmp.Diff(view.Path{1, 2}, ctx.Path()); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
		})
		if ctx.Depth() != 1 {
			t.Errorf("depth = %d, want 1", ctx.Depth())
		}
	})
	if ctx.Depth() != 0 {
		t.Errorf("depth = %d, want 0", ctx.Depth())
	}
}

func TestPathIsACopy(t *testing.T) {
	ctx := view.NewTracker()
	ctx.PushID(1)
	p := ctx.Path()
	p[0] = 9
	if ctx.Path()[0] != 1 {
		t.Error("mutating a returned path changed the tracker")
	}
}

func TestWithIDUnbalancedPanics(t *testing.T) {
	ctx := view.NewTracker()
	expectPanic(t, "VC001", func() {
		view.WithID(ctx, 1, func() { ctx.PushID(2) })
	})

	ctx.Reset()
	expectPanic(t, "VC001", func() {
		view.WithID(ctx, 1, func() { ctx.PopID() })
	})

	ctx.Reset()
	expectPanic(t, "VC001", func() { ctx.PopID() })
}

func TestWithIDDebugPrefixCheck(t *testing.T) {
	rewrite := func(ctx *view.Tracker) {
		ctx.PushID(1)
		view.WithID(ctx, 2, func() {
			ctx.PopID()
			ctx.PopID()
			ctx.PushID(7)
			ctx.PushID(2)
		})
	}

	// Depth is preserved, so only debug mode notices.
	rewrite(view.NewTracker())

	ctx := view.NewTracker()
	ctx.Debug = true
	expectPanic(t, "VC001", func() { rewrite(ctx) })
}

func TestPathStringAndParse(t *testing.T) {
	tests := []struct {
		path view.Path
		want string
	}{
		{path: nil, want: "/"},
		{path: view.Path{0}, want: "/0"},
		{path: view.Path{1, 0xab, 256}, want: "/1/ab/100"},
	}
	for _, tt := range tests {
		if got := tt.path.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		parsed, err := view.ParsePath(tt.want)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", tt.want, err)
		}
		if !parsed.Equal(tt.path) {
			t.Errorf("ParsePath(%q) = %v, want %v", tt.want, parsed, tt.path)
		}
	}

	for _, bad := range []string{"1/2", "/zz", "/1//2"} {
		if _, err := view.ParsePath(bad); err == nil {
			t.Errorf("ParsePath(%q) succeeded", bad)
		}
	}
}

func TestPathHasPrefix(t *testing.T) {
	p := view.Path{1, 2, 3}
	if !p.HasPrefix(view.Path{1, 2}) || !p.HasPrefix(nil) || !p.HasPrefix(p) {
		t.Error("HasPrefix missed an ancestor")
	}
	if p.HasPrefix(view.Path{2}) || p.HasPrefix(view.Path{1, 2, 3, 4}) {
		t.Error("HasPrefix accepted a non-ancestor")
	}
}

func TestIDFromKey(t *testing.T) {
	if view.IDFromKey("a") != view.IDFromKey("a") {
		t.Error("IDFromKey is not deterministic")
	}
	if view.IDFromKey("a") == view.IDFromKey("b") {
		t.Error("IDFromKey collided on distinct keys")
	}
}

func TestWithIDPopsOnPanic(t *testing.T) {
	ctx := view.NewTracker()
	ctx.PushID(1)
	func() {
		defer func() { recover() }()
		view.WithID(ctx, 2, func() { panic("boom") })
	}()
	if diff := cmp.Diff(view.Path{1}, ctx.Path()); diff != "" {
		t.Errorf("path after panic mismatch (-want +got):\n%s", diff)
	}
}
