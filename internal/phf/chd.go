// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package phf builds the minimal perfect hash used by the typelib
// directory-index section (spec §4.9): given the set of top-level entry
// names, it produces a table that maps each name to its directory index in
// O(1) without storing the names themselves.
//
// The construction is CHD (compress, hash, displace): keys are bucketed by
// a first hash, buckets are processed largest-first, and each bucket is
// assigned a per-bucket seed such that rehashing its keys with that seed
// lands them on distinct, still-free slots in the output table.
package phf

import "hash/fnv"

// Table is a built minimal perfect hash over a fixed key set. For an
// unknown key, Lookup returns either some key's index or -1 (an unused
// slot); the caller is responsible for confirming the name at that index
// actually matches
// (spec §4.9, "a negative lookup requires one confirming string
// comparison").
type Table struct {
	seeds []uint32 // per-bucket displacement seed
	slots []int32  // slot -> key index, -1 if empty
}

const maxSeedAttempts = 1 << 16

// Build constructs a Table over keys, where the key at position i maps to
// index i on success. It returns ok=false if no displacement assignment
// was found within the attempt budget, in which case the caller falls back
// to omitting the directory-index section entirely (spec §4.9 "failure is
// not fatal to the compile").
func Build(keys []string) (*Table, bool) {
	n := len(keys)
	if n == 0 {
		return &Table{}, true
	}

	numBuckets := n
	numSlots := n + n/4 + 1 // slack keeps displacement search fast for dense key sets

	buckets := make([][]int, numBuckets)
	for i, k := range keys {
		b := int(bucketHash(k) % uint32(numBuckets))
		buckets[b] = append(buckets[b], i)
	}

	order := make([]int, numBuckets)
	for i := range order {
		order[i] = i
	}
	sortBucketsBySizeDesc(order, buckets)

	slots := make([]int32, numSlots)
	for i := range slots {
		slots[i] = -1
	}
	used := make([]bool, numSlots)
	seeds := make([]uint32, numBuckets)

	for _, b := range order {
		items := buckets[b]
		if len(items) == 0 {
			continue
		}
		seed, positions, ok := findDisplacement(keys, items, used, numSlots)
		if !ok {
			return nil, false
		}
		seeds[b] = seed
		for j, idx := range items {
			used[positions[j]] = true
			slots[positions[j]] = int32(idx)
		}
	}

	return &Table{seeds: seeds, slots: slots}, true
}

// findDisplacement searches for a seed under which every item in items
// hashes to a distinct slot that is not already used.
func findDisplacement(keys []string, items []int, used []bool, numSlots int) (uint32, []int, bool) {
	positions := make([]int, len(items))
	for seed := uint32(1); seed < maxSeedAttempts; seed++ {
		seen := make(map[int]bool, len(items))
		ok := true
		for j, idx := range items {
			pos := int(slotHash(keys[idx], seed) % uint32(numSlots))
			if used[pos] || seen[pos] {
				ok = false
				break
			}
			seen[pos] = true
			positions[j] = pos
		}
		if ok {
			return seed, positions, true
		}
	}
	return 0, nil, false
}

// Lookup returns the candidate key index for key, or -1 if the table is
// empty or key lands on an unused slot. The caller must still compare key
// against the name stored at a returned directory index, since a key absent
// from the original build set can land on a used slot.
func (t *Table) Lookup(key string) int {
	if len(t.seeds) == 0 {
		return -1
	}
	b := int(bucketHash(key) % uint32(len(t.seeds)))
	pos := int(slotHash(key, t.seeds[b]) % uint32(len(t.slots)))
	return int(t.slots[pos])
}

// RequiredSize returns the number of bytes Pack will produce.
func (t *Table) RequiredSize() int {
	return 8 + len(t.seeds)*4 + len(t.slots)*4
}

// Pack serializes the table: a (numBuckets, numSlots) header followed by
// the seed array and the slot array, all little-endian u32 (slots use
// 0xFFFFFFFF for an empty entry).
func (t *Table) Pack() []byte {
	buf := make([]byte, t.RequiredSize())
	putU32(buf, 0, uint32(len(t.seeds)))
	putU32(buf, 4, uint32(len(t.slots)))
	off := 8
	for _, s := range t.seeds {
		putU32(buf, off, s)
		off += 4
	}
	for _, s := range t.slots {
		putU32(buf, off, uint32(s))
		off += 4
	}
	return buf
}

func putU32(buf []byte, off int, v uint32) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
	buf[off+3] = byte(v >> 24)
}

func bucketHash(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

func slotHash(key string, seed uint32) uint32 {
	h := fnv.New32a()
	h.Write([]byte{byte(seed), byte(seed >> 8), byte(seed >> 16), byte(seed >> 24)})
	h.Write([]byte(key))
	return h.Sum32()
}

// sortBucketsBySizeDesc orders bucket indices by descending bucket size.
// Processing the largest, most constrained buckets first is what makes CHD
// converge quickly instead of thrashing on late, already-crowded slots.
func sortBucketsBySizeDesc(order []int, buckets [][]int) {
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && len(buckets[order[j-1]]) < len(buckets[order[j]]); j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
}
