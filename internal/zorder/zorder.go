// Package zorder reorders the draw order of a scene. Both operations are
// stable partitions: the moved ids keep their relative order, and so does
// everything else.
package zorder

// BringToFront returns order with ids moved, as one block, to the end.
// Ids not present in order are ignored.
func BringToFront(order, ids []string) []string {
	moved, rest := partition(order, ids)
	return append(rest, moved...)
}

// SendToBack returns order with ids moved, as one block, to the start.
func SendToBack(order, ids []string) []string {
	moved, rest := partition(order, ids)
	return append(moved, rest...)
}

func partition(order, ids []string) (moved, rest []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	moved = make([]string, 0, len(ids))
	rest = make([]string, 0, len(order))
	for _, id := range order {
		if want[id] {
			moved = append(moved, id)
		} else {
			rest = append(rest, id)
		}
	}
	return moved, rest
}
