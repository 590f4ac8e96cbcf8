// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

// Compare gives the total order (tag, name) used to keep member lists
// sorted (spec §4.1 compare).
func Compare(a, b Node) int {
	if a.Kind() != b.Kind() {
		if a.Kind() < b.Kind() {
			return -1
		}
		return 1
	}
	switch {
	case a.Name() < b.Name():
		return -1
	case a.Name() > b.Name():
		return 1
	default:
		return 0
	}
}

// insertSorted inserts n into members, keeping the slice ordered by
// Compare, and is the backing implementation of every Container's
// AddMember (spec §4.1 add_member). Calling AddMember on a node whose Kind
// does not satisfy CanHaveMembers is a caller bug; panicking matches the
// source's "programming error (abort)".
func insertSorted(members []Node, n Node) []Node {
	i := 0
	for i < len(members) && Compare(members[i], n) <= 0 {
		i++
	}
	members = append(members, nil)
	copy(members[i+1:], members[i:])
	members[i] = n
	return members
}

// AddMember inserts method into container's member list, panicking if
// container cannot have members (spec §4.1: "adding a member to a
// non-container is a programming error (abort)").
func AddMember(container Node, method Node) {
	c, ok := container.(Container)
	if !ok || !CanHaveMembers(container) {
		panic("ir: AddMember on a node that cannot have members: " + container.Kind().String())
	}
	c.AddMember(method)
}
