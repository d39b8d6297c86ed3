package zorder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReorder(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		name string
		fn   func(order, ids []string) []string
		ids  []string
		want []string
	}{
		{"front single", BringToFront, []string{"b"}, []string{"a", "c", "d", "e", "b"}},
		{"front keeps relative order", BringToFront, []string{"d", "a"}, []string{"b", "c", "e", "a", "d"}},
		{"front already front", BringToFront, []string{"e"}, []string{"a", "b", "c", "d", "e"}},
		{"front unknown ignored", BringToFront, []string{"x", "c"}, []string{"a", "b", "d", "e", "c"}},
		{"front none", BringToFront, nil, []string{"a", "b", "c", "d", "e"}},
		{"back single", SendToBack, []string{"d"}, []string{"d", "a", "b", "c", "e"}},
		{"back keeps relative order", SendToBack, []string{"e", "b"}, []string{"b", "e", "a", "c", "d"}},
		{"back all", SendToBack, []string{"c", "a", "e", "b", "d"}, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(order, tt.ids)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
		})
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, order); diff != "" {
		t.Errorf("input order modified (-want +got):\n%s", diff)
	}
}

func TestIdempotent(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e", "f"}
	ids := []string{"f", "b", "d"}
	for name, fn := range map[string]func(order, ids []string) []string{
		"BringToFront": BringToFront,
		"SendToBack":   SendToBack,
	} {
		once := fn(order, ids)
		twice := fn(once, ids)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("%s not idempotent (-once +twice):\n%s", name, diff)
		}
	}
}
