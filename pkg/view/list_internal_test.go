package view

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLISMembers(t *testing.T) {
	tests := []struct {
		seq  []int
		want []int
	}{
		{seq: nil, want: nil},
		{seq: []int{0, 1, 2}, want: []int{0, 1, 2}},
		{seq: []int{2, 0, 1}, want: []int{0, 1}},
		{seq: []int{3, 2, 1, 0}, want: []int{0}},
		{seq: []int{3, 1, 4, 0}, want: []int{1, 4}},
		{seq: []int{1, 5, 2, 3, 0, 4}, want: []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		var got []int
		for v := range lisMembers(tt.seq) {
			got = append(got, v)
		}
		sort.Ints(got)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("lisMembers(%v) mismatch (-want +got):\n%s", tt.seq, diff)
		}
	}
}

func TestOrderHelpers(t *testing.T) {
	order := []int{0, 1, 2, 3}
	order = moveTo(order, 3, 0)
	if diff := cmp.Diff([]int{3, 0, 1, 2}, order); diff != "" {
		t.Errorf("moveTo mismatch (-want +got):\n%s", diff)
	}
	order = insertAt(order, 2, 9)
	if diff := cmp.Diff([]int{3, 0, 9, 1, 2}, order); diff != "" {
		t.Errorf("insertAt mismatch (-want +got):\n%s", diff)
	}
	if indexOf(order, 9) != 2 {
		t.Errorf("indexOf = %d, want 2", indexOf(order, 9))
	}
}
