package process

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameOfCurrentProcess(t *testing.T) {
	l := NewLookup()
	assert.NotEmpty(t, l.Name(int32(os.Getpid())))
}

func TestNameCachesUntilPIDLeaves(t *testing.T) {
	calls := map[int32]int{}
	l := NewLookup()
	l.query = func(pid int32) (string, error) {
		calls[pid]++
		return "code", nil
	}

	assert.Equal(t, "code", l.Name(42))
	assert.Equal(t, "code", l.Name(42))
	l.Name(7)
	assert.Equal(t, 1, calls[42])

	l.Retain([]int32{42, 99})
	l.Name(42)
	assert.Equal(t, 1, calls[42], "live PID stays cached")

	l.Retain(nil)
	l.Name(42)
	l.Name(7)
	assert.Equal(t, 2, calls[42])
	assert.Equal(t, 2, calls[7])
}

func TestReusedPIDGetsNewName(t *testing.T) {
	name := "code"
	l := NewLookup()
	l.query = func(pid int32) (string, error) { return name, nil }

	assert.Equal(t, "code", l.Name(42))

	// 42 exits, then a different program starts with the same PID.
	l.Retain([]int32{1})
	name = "bash"
	assert.Equal(t, "bash", l.Name(42))
}

func TestNameFailures(t *testing.T) {
	l := NewLookup()
	l.query = func(pid int32) (string, error) {
		return "", errors.New("process not found")
	}

	assert.Empty(t, l.Name(7))
	assert.Empty(t, l.Name(0))
	assert.Empty(t, l.Name(-3))
}
