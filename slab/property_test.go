package slab_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slabcheck/internal/testutil"
	"github.com/joshuapare/slabcheck/slab"
)

// assertStateInvariants checks page containment and same-page separation for
// every live address.
func assertStateInvariants(t *testing.T, v *slab.Validator) {
	t.Helper()
	g := v.Geometry()
	st := v.State()

	seen := 0
	for _, addr := range st.LiveAddrs() {
		page := g.PageOf(addr)
		require.Equal(t, page, g.PageOf(addr+g.AllocSize-1), "slot %#x crosses a page", addr)

		bucket := st.OnPage(page)
		require.Contains(t, bucket, addr)
		for _, other := range bucket {
			if other == addr {
				continue
			}
			diff := max(addr, other) - min(addr, other)
			require.GreaterOrEqual(t, diff, g.AllocSize)
			require.Zero(t, diff%g.AllocSize)
		}
		seen++
	}
	require.Equal(t, st.Live(), seen)
}

func replayTrace(t *testing.T, v *slab.Validator, trace []byte, check func()) error {
	t.Helper()
	sc := bufio.NewScanner(bytes.NewReader(trace))
	line := 0
	for sc.Scan() {
		line++
		ev, err := slab.ParseEvent(sc.Text(), line)
		if err != nil {
			return err
		}
		wasLive := v.State().IsLive(ev.Addr)
		if err := v.Apply(ev); err != nil {
			return err
		}
		if ev.Kind == slab.Free {
			// A free is only accepted for an address that was live.
			require.True(t, wasLive)
		}
		if check != nil {
			check()
		}
	}
	require.NoError(t, sc.Err())
	return nil
}

func TestGeneratedTracesAreAccepted(t *testing.T) {
	profiles := []testutil.Profile{
		{Rounds: 500, MaxLive: 64, Seed: 1},
		{Rounds: 2000, MaxLive: 300, Seed: 2, HexPrefix: true},
		{Rounds: 1000, MaxLive: 100, Seed: 3, PageSize: 256, AllocSize: 32},
	}

	for _, p := range profiles {
		g := slab.DefaultGeometry()
		if p.PageSize != 0 {
			g = slab.Geometry{PageSize: p.PageSize, AllocSize: p.AllocSize}
		}
		v, err := slab.NewValidator(g)
		require.NoError(t, err)

		trace := testutil.GenerateTrace(p)
		steps := 0
		err = replayTrace(t, v, trace, func() {
			steps++
			if steps%97 == 0 {
				assertStateInvariants(t, v)
			}
		})
		require.NoError(t, err)
		assertStateInvariants(t, v)
		require.Equal(t, 0, v.State().Live(), "generated traces free everything")
		require.Equal(t, p.Rounds, v.Allocs())
		require.Equal(t, p.Rounds, v.Frees())
	}
}

func TestRevalidationIsDeterministic(t *testing.T) {
	trace := testutil.GenerateTrace(testutil.Profile{Rounds: 400, MaxLive: 50, Seed: 9})
	lines := bytes.Split(bytes.TrimRight(trace, "\n"), []byte("\n"))

	// Allocate the same address twice in a row somewhere past line 100.
	i := 99
	for !bytes.HasPrefix(lines[i], []byte("a ")) {
		i++
	}
	corrupted := make([][]byte, 0, len(lines)+1)
	corrupted = append(corrupted, lines[:i+1]...)
	corrupted = append(corrupted, lines[i])
	corrupted = append(corrupted, lines[i+1:]...)
	input := bytes.Join(corrupted, []byte("\n"))

	run := func() error {
		v, err := slab.NewValidator(slab.DefaultGeometry())
		require.NoError(t, err)
		return replayTrace(t, v, input, nil)
	}

	first := run()
	second := run()
	require.Error(t, first)
	require.Equal(t, first.Error(), second.Error())

	verr, ok := slab.AsViolation(first)
	require.True(t, ok)
	require.Equal(t, slab.DoubleAllocation, verr.Kind)
	require.Equal(t, i+2, verr.Line)
}
