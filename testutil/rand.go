package testutil

import (
	"math/rand"

	"github.com/google/gofuzz"
	. "github.com/onsi/ginkgo"
)

var RandSource = rand.NewSource(GinkgoRandomSeed())
var Rand = rand.New(RandSource)
var Fuzzer = func() *fuzz.Fuzzer {
	f := fuzz.New().NilChance(0)
	f.RandSource(RandSource)
	return f
}()
var Fuzz = Fuzzer.Fuzz

// FuzzString returns random non empty string.
func FuzzString() (s string) {
	for s == "" {
		Fuzz(&s)
	}
	return
}

// Keys returns n distinct int keys in random order.
func Keys(n int) []int {
	return Rand.Perm(n)
}
