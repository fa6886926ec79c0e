package logbase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dumpAddress struct {
	City string
}

type dumpUser struct {
	Name    string
	Tags    []string
	Address *dumpAddress
	Meta    map[string]int
	secret  string
}

type dumpNode struct {
	Name string
	Next *dumpNode
}

func TestFlatten(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		u := dumpUser{
			Name:    "ann",
			Tags:    []string{"a", "b"},
			Address: &dumpAddress{City: "Oslo"},
			Meta:    map[string]int{"age": 30},
			secret:  "hidden",
		}

		assert.Equal(t, Fields{
			"Name":         "ann",
			"Tags[0]":      "a",
			"Tags[1]":      "b",
			"Address.City": "Oslo",
			"Meta[age]":    30,
		}, Flatten(u))
	})

	t.Run("scalar", func(t *testing.T) {
		assert.Equal(t, Fields{"value": 42}, Flatten(42))
		assert.Equal(t, Fields{"value": "<nil>"}, Flatten(nil))
	})

	t.Run("empty collections", func(t *testing.T) {
		assert.Equal(t, Fields{"value": "[]string[]"}, Flatten([]string{}))
		assert.Equal(t, Fields{"value": "map[string]int{}"}, Flatten(map[string]int{}))
	})

	t.Run("long slices are truncated", func(t *testing.T) {
		out := Flatten(make([]int, 15))
		assert.Equal(t, "5 more elements", out["[...]"])
		assert.Contains(t, out, "[9]")
		assert.NotContains(t, out, "[10]")
	})

	t.Run("cycles", func(t *testing.T) {
		n := &dumpNode{Name: "a"}
		n.Next = n

		out := Flatten(n)

		assert.Equal(t, "a", out["Name"])
		assert.Equal(t, "<circular reference>", out["Next"])
	})
}

func TestProcessor_Dump(t *testing.T) {
	r := newRecorder(t, WithLevels(LevelString("debug")))

	require.NoError(t, r.Dump(map[string]string{"k": "v"}))

	require.Len(t, r.records, 1)
	assert.Equal(t, []string{LevelDebug}, r.levels)
	assert.Equal(t, "dump", r.records[0].Message())
	assert.Equal(t, Fields{"[k]": "v"}, r.records[0].Fields())

	r.ConfigureLevels(LevelString("info"))
	require.NoError(t, r.Dump("ignored"))
	assert.Len(t, r.records, 1)
}
