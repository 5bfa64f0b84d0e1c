package main

import (
	"testing"

	"github.com/joshuapare/heapkit/heap"
	"github.com/stretchr/testify/require"
)

func TestCreateInfoCheck(t *testing.T) {
	path := tempArenaPath(t)

	output, err := captureOutput(t, func() error {
		return runCreate(path, 4096)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Created", "4096"})

	output, err = captureOutput(t, func() error {
		return runInfo(path)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Arena:", "capacity:", "free:"})

	output, err = captureOutput(t, func() error {
		return runCheck(path)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"OK:", "1 blocks"})
}

func TestCreateRefusesExisting(t *testing.T) {
	path := tempArenaPath(t)
	require.NoError(t, runCreate(path, 4096))

	_, err := captureOutput(t, func() error {
		return runCreate(path, 4096)
	})
	require.Error(t, err)
}

func TestInfoJSON(t *testing.T) {
	path := tempArenaPath(t)
	require.NoError(t, runCreate(path, 4096))

	jsonOut = true
	defer func() { jsonOut = false }()

	output, err := captureOutput(t, func() error {
		return runInfo(path)
	})
	require.NoError(t, err)
	assertJSON(t, output)
}

func TestDumpShowsLiveBlock(t *testing.T) {
	path := tempArenaPath(t)
	require.NoError(t, runCreate(path, 4096))

	// Put a live allocation with known bytes into the arena.
	h, err := heap.Open(path)
	require.NoError(t, err)
	_, data, err := h.Alloc(16)
	require.NoError(t, err)
	copy(data, []byte("payload!"))
	require.NoError(t, h.Sync())
	require.NoError(t, h.Close())

	output, err := captureOutput(t, func() error {
		return runDump(path, true, 0)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"2 blocks", "used size=16", "7061796C6F616421"})
}

func TestExerciseInMemory(t *testing.T) {
	output, err := captureOutput(t, func() error {
		return runExercise("", 1<<16, 2, 200, 128, "")
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"capacity:", "in use:"})
}
