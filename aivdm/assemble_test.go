package aivdm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcho/nmea-ecdis-sim/aivdm"
)

func TestAssembler_SingleFragmentIsImmediate(t *testing.T) {
	a := aivdm.NewAssembler()
	full, ready, err := a.Append(aivdm.FragmentHeader{Total: 1, Seq: 1, GroupID: "3"}, "abc")
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, "abc", full)
}

func TestAssembler_TwoFragmentsInOrder(t *testing.T) {
	a := aivdm.NewAssembler()
	_, ready, err := a.Append(aivdm.FragmentHeader{Total: 2, Seq: 1, GroupID: "7"}, "AAA")
	require.NoError(t, err)
	assert.False(t, ready)

	full, ready, err := a.Append(aivdm.FragmentHeader{Total: 2, Seq: 2, GroupID: "7"}, "BBB")
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, "AAABBB", full)
}

func TestAssembler_OutOfOrderRejected(t *testing.T) {
	a := aivdm.NewAssembler()
	// seq 2 arrives before any seq 1 for this group.
	_, ready, err := a.Append(aivdm.FragmentHeader{Total: 2, Seq: 2, GroupID: "1"}, "BBB")
	assert.ErrorIs(t, err, aivdm.ErrFragmentGap)
	assert.False(t, ready)
}

func TestAssembler_RestartedPart1KeepsLatest(t *testing.T) {
	a := aivdm.NewAssembler()
	_, _, err := a.Append(aivdm.FragmentHeader{Total: 2, Seq: 1, GroupID: "5"}, "OLD")
	require.NoError(t, err)

	// a second, fresh part 1/2 arrives for the same group before part 2 ever did
	_, _, err = a.Append(aivdm.FragmentHeader{Total: 2, Seq: 1, GroupID: "5"}, "NEW")
	require.NoError(t, err)

	full, ready, err := a.Append(aivdm.FragmentHeader{Total: 2, Seq: 2, GroupID: "5"}, "TAIL")
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, "NEWTAIL", full)
}

func TestAssembler_SingleFragmentResetsGroupID(t *testing.T) {
	a := aivdm.NewAssembler()
	_, _, err := a.Append(aivdm.FragmentHeader{Total: 2, Seq: 1, GroupID: "9"}, "PART1")
	require.NoError(t, err)

	// an unrelated single-fragment message reuses group ID 9 mid-assembly
	full, ready, err := a.Append(aivdm.FragmentHeader{Total: 1, Seq: 1, GroupID: "9"}, "SOLO")
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, "SOLO", full)

	// the abandoned part 2 of the original group must not complete anything
	_, ready, err = a.Append(aivdm.FragmentHeader{Total: 2, Seq: 2, GroupID: "9"}, "PART2")
	assert.ErrorIs(t, err, aivdm.ErrFragmentGap)
	assert.False(t, ready)
}
