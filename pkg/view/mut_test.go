package view_test

import (
	"testing"

	"github.com/vango-dev/viewcore/pkg/view"
)

func TestRetainedHandlePanics(t *testing.T) {
	pod := view.NewPod(1)
	var kept *view.Mut[int]
	pod.With(func(m *view.Mut[int]) { kept = m })

	expectPanic(t, "VC002", func() { kept.Get() })
	expectPanic(t, "VC002", func() { kept.Replace(2) })
	expectPanic(t, "VC002", func() { kept.Release() })
}

func TestDoubleBorrowPanics(t *testing.T) {
	pod := view.NewPod("a")
	m := pod.Borrow()
	expectPanic(t, "VC002", func() { pod.Borrow() })
	m.Release()
	if pod.Borrowed() {
		t.Error("pod still borrowed after release")
	}
}

func TestGenerationAdvances(t *testing.T) {
	pod := view.NewPod(0)
	g0 := pod.Generation()
	pod.With(func(m *view.Mut[int]) {
		if m.Generation() != pod.Generation() {
			t.Errorf("handle generation %d, pod %d", m.Generation(), pod.Generation())
		}
	})
	if pod.Generation() <= g0 {
		t.Error("borrowing did not bump the generation")
	}
}

func TestReplaceDetection(t *testing.T) {
	pod := view.NewPod(1)

	if pod.With(func(m *view.Mut[int]) { m.Set(3) }) {
		t.Error("Set reported a replacement")
	}
	if pod.With(func(m *view.Mut[int]) { m.Update(func(v *int) { *v++ }) }) {
		t.Error("Update reported a replacement")
	}
	if pod.Element() != 4 {
		t.Errorf("element = %d, want 4", pod.Element())
	}

	replaced := pod.With(func(m *view.Mut[int]) {
		m.Replace(7)
		if !m.Replaced() {
			t.Error("Replaced() = false after Replace")
		}
		if m.Get() != 7 {
			t.Errorf("Get() after Replace = %d", m.Get())
		}
	})
	if !replaced || pod.Swaps() != 1 {
		t.Errorf("replaced=%v swaps=%d, want true and 1", replaced, pod.Swaps())
	}
}

func TestReborrow(t *testing.T) {
	pod := view.NewPod(1)
	pod.With(func(m *view.Mut[int]) {
		if m.Reborrow(func(in *view.Mut[int]) { in.Set(2) }) {
			t.Error("nested Set reported a replacement")
		}
		if m.Get() != 2 || m.Replaced() {
			t.Errorf("after nested Set: get=%d replaced=%v", m.Get(), m.Replaced())
		}

		if !m.Reborrow(func(in *view.Mut[int]) { in.Replace(5) }) {
			t.Error("nested Replace not detected")
		}
		if m.Get() != 5 || !m.Replaced() {
			t.Errorf("after nested Replace: get=%d replaced=%v", m.Get(), m.Replaced())
		}
	})
}

func TestOuterHandleSuspendedDuringReborrow(t *testing.T) {
	pod := view.NewPod(1)
	pod.With(func(m *view.Mut[int]) {
		m.Reborrow(func(in *view.Mut[int]) {
			expectPanic(t, "VC002", func() { m.Get() })
		})
	})
}
