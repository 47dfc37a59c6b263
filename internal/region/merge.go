// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package region

// Merge applies incoming on top of r. Slots only in incoming are
// appended after r's existing entries, in incoming's own order. For
// slots present in both, the rule decides: if it permits, incoming's
// chunk replaces r's in place without moving in the iteration order;
// otherwise r's chunk is untouched. incoming is never modified -- its
// chunks are copied on insert so a later Encode of r can't reach back
// and renumber incoming's offsets.
func (r *Region) Merge(incoming *Region, rule Rule) {
	for _, slot := range incoming.order {
		in := *incoming.slots[slot]
		cur, ok := r.slots[slot]
		if ok && !rule.Permits(cur, &in) {
			continue
		}
		r.put(slot, &in)
	}
}
