package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(5)] = true
	}

	a.True(found[0])
	a.True(found[1])
	a.True(found[2])
	a.True(found[3])
	a.True(found[4])
	a.False(found[5])
}

func TestSeeded_Intn(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		n := a.Intn(10)
		assert.Equal(t, n, b.Intn(10))
		assert.True(t, n >= 0 && n < 10)
	}
}

func TestCrypto_Intn_invalid(t *testing.T) {
	assert.Panics(t, func() {
		Crypto{}.Intn(0)
	})
	assert.Equal(t, 0, Crypto{}.Intn(1))
}
