package malloc

import "fmt"
import "testing"
import "unsafe"
import "sync"
import "math/rand"
import "sync/atomic"

type testalloc struct {
	n    byte
	size int64
	ptr  unsafe.Pointer
}

var ccallocated, ccfreed int64

func TestConcur(t *testing.T) {
	var awg, fwg sync.WaitGroup

	nroutines, repeat := 8, 2000

	chans := make([]chan testalloc, 0, nroutines)
	for n := 0; n < nroutines; n++ {
		chans = append(chans, make(chan testalloc, 1000))
	}

	capacity := int64(64 * 1024 * 1024)
	pool := NewPool(capacity, Defaultsettings())
	awg.Add(nroutines)
	fwg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go testallocator(pool, byte(n), repeat, chans, &awg)
		go testfree(pool, chans[n], &fwg)
	}

	awg.Wait()
	t.Logf("allocations are done")

	for _, ch := range chans {
		close(ch)
	}

	fwg.Wait()
	t.Logf("ccallocated:%v ccfreed:%v", ccallocated, ccfreed)

	pool.Validate()
	if _, allocated, _ := pool.Info(); allocated != 0 {
		t.Errorf("expected %v, got %v", 0, allocated)
	}
	pool.Release()
}

func testallocator(
	pool *Pool, n byte, repeat int, chans []chan testalloc, wg *sync.WaitGroup) {

	defer wg.Done()

	for i := 0; i < repeat; i++ {
		size := int64(rand.Intn(512) + 1)
		ptr := pool.Alloc(size)
		if ptr == nil { // transient exhaustion under churn
			continue
		}
		fillbytes(ptr, size, n)

		if rand.Intn(4) == 0 {
			newsize := int64(rand.Intn(512) + 1)
			if newptr := pool.Resize(ptr, newsize); newptr != nil {
				ln := size
				if newsize < ln {
					ln = newsize
				}
				for _, c := range asbytes(newptr, ln) {
					if c != n {
						panic(fmt.Errorf("expected %v, got %v", n, c))
					}
				}
				fillbytes(newptr, newsize, n)
				ptr, size = newptr, newsize
			}
		}

		msg := testalloc{size: size, n: n, ptr: ptr}
		chans[rand.Intn(len(chans))] <- msg
		atomic.AddInt64(&ccallocated, size)
	}
}

func testfree(pool *Pool, ch chan testalloc, wg *sync.WaitGroup) {
	defer wg.Done()

	for msg := range ch {
		for _, c := range asbytes(msg.ptr, msg.size) {
			if c != msg.n {
				panic(fmt.Errorf("expected %v, got %v", msg.n, c))
			}
		}
		pool.Free(msg.ptr)
		atomic.AddInt64(&ccfreed, msg.size)
	}
}
