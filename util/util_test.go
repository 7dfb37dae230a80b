package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTern(t *testing.T) {
	rq := require.New(t)
	rq.Equal("a", Tern(true, "a", "b"))
	rq.Equal(2, Tern(false, 1, 2))
}

func TestOptional(t *testing.T) {
	rq := require.New(t)

	var o Optional[int]
	rq.False(o.Present())
	rq.Equal(7, o.GetOr(7))
	rq.Panics(func() { o.MustGet() })

	o.Set(2021)
	rq.True(o.Present())
	rq.Equal(2021, o.MustGet())
	rq.Equal(2021, o.GetOr(7))

	o2 := NewOptional("x")
	rq.Equal("x", o2.MustGet())
}

func TestAssertPanicsWhenEnabled(t *testing.T) {
	rq := require.New(t)
	AssertsPanic = true
	defer func() { AssertsPanic = false }()

	rq.NotPanics(func() { Assertf(true, "never %d", 1) })
	rq.PanicsWithValue("bad value 3", func() { Assertf(false, "bad value %d", 3) })
	rq.PanicsWithValue("nope", func() { Assert(false, "nope") })
}
