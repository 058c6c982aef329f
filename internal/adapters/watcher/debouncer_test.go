package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/adapters/watcher"
)

// recorder collects debounced batches.
type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) callback(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.batches...)
}

func TestDebouncer_CoalescesInArrivalOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/project/src/b.c")
		d.Add("/project/src/a.c")
		d.Add("/project/src/b.c")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, [][]string{{"/project/src/b.c", "/project/src/a.c"}}, rec.snapshot())
	})
}

func TestDebouncer_AddResetsTimer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/project/a")
		time.Sleep(50 * time.Millisecond)
		d.Add("/project/b")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Flush()
		assert.Empty(t, rec.snapshot())

		d.Add("/project/a")
		d.Flush()
		require.Equal(t, [][]string{{"/project/a"}}, rec.snapshot())

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1, "flushed paths are not delivered twice")

		d.Add("/project/b")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		d.Flush()
		assert.Equal(t, [][]string{{"/project/a"}, {"/project/b"}}, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/project/a")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
