package perm

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestSeq(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{name: "negative", n: -1, want: []int{}},
		{name: "zero", n: 0, want: []int{}},
		{name: "three", n: 3, want: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Seq(tt.n); !slices.Equal(got, tt.want) {
				t.Errorf("Seq(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestFactorial(t *testing.T) {
	for n, want := range []int{1, 1, 2, 6, 24, 120, 720} {
		if got := Factorial(n); got != want {
			t.Errorf("Factorial(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestGenerateCountsAndUniqueness(t *testing.T) {
	for n := 0; n <= 6; n++ {
		perms := Generate(n, -1)
		if len(perms) != Factorial(n) {
			t.Fatalf("Generate(%d) returned %d permutations, want %d", n, len(perms), Factorial(n))
		}

		seen := make(map[string]bool, len(perms))
		for _, p := range perms {
			key := string(encode(p))
			if seen[key] {
				t.Fatalf("Generate(%d) repeated permutation %v", n, p)
			}
			seen[key] = true

			sorted := slices.Clone(p)
			slices.Sort(sorted)
			if !slices.Equal(sorted, Seq(n)) {
				t.Fatalf("Generate(%d) produced non-permutation %v", n, p)
			}
		}
	}
}

func TestGenerateAdjacentTranspositions(t *testing.T) {
	perms := Generate(5, -1)
	for i := 1; i < len(perms); i++ {
		var diff []int
		for j := range perms[i] {
			if perms[i][j] != perms[i-1][j] {
				diff = append(diff, j)
			}
		}
		if len(diff) != 2 || diff[1] != diff[0]+1 {
			t.Fatalf("step %d: %v -> %v is not an adjacent swap", i, perms[i-1], perms[i])
		}
	}
}

func TestGenerateLimit(t *testing.T) {
	if got := len(Generate(8, 7)); got != 7 {
		t.Errorf("len(Generate(8, 7)) = %d, want 7", got)
	}
}

func TestEachStopsEarly(t *testing.T) {
	calls := 0
	Each(4, func([]int) bool {
		calls++
		return calls < 3
	})
	if calls != 3 {
		t.Errorf("Each made %d calls, want 3", calls)
	}
}

func TestShuffleAndSwapKeepElements(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7^0xdeadbeef))
	p := Seq(9)
	for range 50 {
		Shuffle(rng, p)
		SwapRandom(rng, p)
	}
	sorted := slices.Clone(p)
	slices.Sort(sorted)
	if !slices.Equal(sorted, Seq(9)) {
		t.Errorf("elements changed: %v", p)
	}
}

func TestSwapRandomChangesTwoPositions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		p := Seq(4)
		SwapRandom(rng, p)
		changed := 0
		for i, v := range p {
			if v != i {
				changed++
			}
		}
		if changed != 2 {
			t.Fatalf("SwapRandom changed %d positions, want 2 (%v)", changed, p)
		}
	}

	single := []int{0}
	SwapRandom(rng, single)
	if single[0] != 0 {
		t.Error("SwapRandom modified single-element slice")
	}
}

func encode(p []int) []byte {
	b := make([]byte, len(p))
	for i, v := range p {
		b[i] = byte(v)
	}
	return b
}
