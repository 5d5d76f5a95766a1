package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.True(t, l.Do(func() {}))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestLoopPostFromLoop(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var got []string
	done := make(chan struct{})
	l.Post(func() {
		got = append(got, "outer")
		l.Post(func() {
			got = append(got, "inner")
			close(done)
		})
	})
	<-done

	assert.Equal(t, []string{"outer", "inner"}, got)
}

func TestLoopCloseDrainsAndRejects(t *testing.T) {
	l := NewLoop()

	ran := false
	require.True(t, l.Post(func() { ran = true }))
	l.Close()

	assert.True(t, ran)
	assert.False(t, l.Post(func() {}))
	assert.False(t, l.Do(func() {}))
	require.NotPanics(t, l.Close)
}
