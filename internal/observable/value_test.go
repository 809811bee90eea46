package observable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_Subscribe(t *testing.T) {
	t.Parallel()

	v := New(1)
	var got []int
	cancel := v.Subscribe(func(x int) { got = append(got, x) })

	v.Set(2)
	v.Set(3)
	cancel()
	v.Set(4)
	cancel()

	require.Equal(t, []int{2, 3}, got)
	require.Equal(t, 4, v.Get())
}

func TestValue_Order(t *testing.T) {
	t.Parallel()

	v := New("")
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		v.Subscribe(func(string) { order = append(order, name) })
	}
	v.Set("x")

	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestValue_SetFromSubscriber(t *testing.T) {
	t.Parallel()

	v := New(0)
	v.Subscribe(func(x int) {
		if x == 1 {
			v.Set(2)
		}
	})
	v.Set(1)

	require.Equal(t, 2, v.Get())
}

func TestValue_Concurrent(t *testing.T) {
	t.Parallel()

	v := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cancel := v.Subscribe(func(int) {})
			v.Set(i)
			_ = v.Get()
			cancel()
		}(i)
	}
	wg.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	require.Empty(t, v.subs)
}

func TestValue_Publish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vers []uint64
		want []int
		last int
	}{
		{name: "in order", vers: []uint64{1, 2, 3}, want: []int{1, 2, 3}, last: 3},
		{name: "stale dropped", vers: []uint64{2, 1, 3}, want: []int{2, 3}, last: 3},
		{name: "repeat dropped", vers: []uint64{1, 1}, want: []int{1}, last: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := New(0)
			var got []int
			v.Subscribe(func(x int) { got = append(got, x) })
			for _, ver := range tt.vers {
				v.Publish(ver, int(ver))
			}
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.last, v.Get())
		})
	}
}

func TestValue_NestedSetDeliveredAfterCurrent(t *testing.T) {
	t.Parallel()

	v := New(0)
	var seen []int
	v.Subscribe(func(x int) {
		seen = append(seen, x)
		if x == 1 {
			v.Set(2)
			seen = append(seen, -1)
		}
	})
	var second []int
	v.Subscribe(func(x int) { second = append(second, x) })
	v.Set(1)

	require.Equal(t, []int{1, -1, 2}, seen)
	require.Equal(t, []int{1, 2}, second)
}

func TestValue_PublishConcurrentEndsOnNewest(t *testing.T) {
	t.Parallel()

	v := New(0)
	var (
		mu       sync.Mutex
		last     int
		backward bool
	)
	v.Subscribe(func(x int) {
		mu.Lock()
		defer mu.Unlock()
		if x < last {
			backward = true
		}
		last = x
	})

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v.Publish(uint64(i), i)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 100, v.Get())
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 100, last)
	require.False(t, backward)
}
