// Package perm generates permutations of small index sets.
//
// Permutations are produced by the Johnson–Trotter algorithm, which visits
// every ordering of [0, n) exactly once and moves from one ordering to the
// next by swapping a single pair of adjacent elements. Local search loops
// use this to evaluate every assignment of a vertex's incident edges to
// angular slots. For sets that are too large to enumerate, [Shuffle] and
// [SwapRandom] draw random candidates instead.
package perm

import "math/rand/v2"

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorials grow extremely fast: 13! = 6,227,020,800 exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Each calls fn with every permutation of [0, 1, ..., n-1] in
// Johnson–Trotter order, starting with the identity. Consecutive
// permutations differ by one adjacent transposition.
//
// The slice passed to fn is reused between calls; clone it to keep it.
// Iteration stops early when fn returns false. For n <= 0 fn is called
// once with an empty slice.
func Each(n int, fn func(p []int) bool) {
	p := Seq(n)
	if !fn(p) || n <= 1 {
		return
	}

	// dir[v] is -1 when value v looks left, +1 when it looks right.
	dir := make([]int, n)
	pos := make([]int, n)
	for i := range dir {
		dir[i] = -1
		pos[i] = i
	}

	for {
		mobile := -1
		for v := n - 1; v >= 0; v-- {
			j := pos[v] + dir[v]
			if j >= 0 && j < n && p[j] < v {
				mobile = v
				break
			}
		}
		if mobile < 0 {
			return
		}

		i := pos[mobile]
		j := i + dir[mobile]
		other := p[j]
		p[i], p[j] = p[j], p[i]
		pos[mobile], pos[other] = j, i

		for v := mobile + 1; v < n; v++ {
			dir[v] = -dir[v]
		}
		if !fn(p) {
			return
		}
	}
}

// Generate returns permutations of [0, 1, ..., n-1] in Johnson–Trotter order.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[0]] (one single-element permutation)
//
// For n >= 13, the number of permutations exceeds billions. Always use a limit
// when n is large.
func Generate(n, limit int) [][]int {
	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(max(n, 0), 12))
		if limit > 0 {
			capacity = min(capacity, limit)
		}
	}
	result := make([][]int, 0, capacity)
	Each(n, func(p []int) bool {
		result = append(result, append([]int(nil), p...))
		return limit <= 0 || len(result) < limit
	})
	return result
}

// Shuffle permutes p in place uniformly at random using rng.
func Shuffle(rng *rand.Rand, p []int) {
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
}

// SwapRandom exchanges two distinct, randomly chosen positions of p.
// Slices with fewer than two elements are left untouched.
func SwapRandom(rng *rand.Rand, p []int) {
	if len(p) < 2 {
		return
	}
	i := rng.IntN(len(p))
	j := rng.IntN(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
}
