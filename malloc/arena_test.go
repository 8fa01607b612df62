package malloc

import "fmt"
import "testing"
import "unsafe"

var _ = fmt.Sprintf("dummy")

func TestNewpool(t *testing.T) {
	pool := NewPool(1024, Defaultsettings())
	if pool.capacity != 1024 {
		t.Errorf("expected %v, got %v", 1024, pool.capacity)
	} else if pool.nblocks != 1 {
		t.Errorf("expected %v, got %v", 1, pool.nblocks)
	} else if pool.head == nil || pool.head.free == false {
		t.Errorf("expected one free block")
	} else if pool.head.offset != 0 || pool.head.size != 1024 {
		t.Errorf("expected [0, 1024), got [%v, %v)",
			pool.head.offset, pool.head.offset+pool.head.size)
	}
	pool.Validate()
	capacity, allocated, overhead := pool.Info()
	if capacity != 1024 {
		t.Errorf("expected %v, got %v", 1024, capacity)
	} else if allocated != 0 {
		t.Errorf("expected %v, got %v", 0, allocated)
	} else if overhead <= 0 {
		t.Errorf("expected positive overhead, got %v", overhead)
	}
	pool.Release()

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewPool(Maxpoolsize+1, Defaultsettings())
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewPool(-1, Defaultsettings())
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		setts := Defaultsettings()
		setts["allocator"] = "buddy"
		NewPool(1024, setts)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		pool := NewPool(1024, nil)
		pool.Release()
		pool.Alloc(8)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		pool := NewPool(1024, nil)
		pool.Release()
		pool.Release()
	}()
}

func TestPoolUtilization(t *testing.T) {
	pool := NewPool(1000, nil)
	defer pool.Release()

	if x := pool.Utilization(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	ptr := pool.Alloc(250)
	if ptr == nil {
		t.Errorf("unexpected allocation failure")
	}
	if x := pool.Utilization(); x != 0.25 {
		t.Errorf("expected %v, got %v", 0.25, x)
	}
	pool.Free(ptr)
	if x := pool.Utilization(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
}

func TestPoolStats(t *testing.T) {
	pool := NewPool(1000, nil)
	defer pool.Release()

	a, b := pool.Alloc(100), pool.Alloc(200)
	pool.Free(a)
	pool.Resize(b, 300)

	stats := pool.Stats()
	if x := stats["capacity"].(int64); x != 1000 {
		t.Errorf("expected %v, got %v", 1000, x)
	} else if x := stats["allocated"].(int64); x != 300 {
		t.Errorf("expected %v, got %v", 300, x)
	} else if x := stats["available"].(int64); x != 700 {
		t.Errorf("expected %v, got %v", 700, x)
	} else if x := stats["nallocs"].(int64); x != 2 {
		t.Errorf("expected %v, got %v", 2, x)
	} else if x := stats["nfrees"].(int64); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	} else if x := stats["nresizes"].(int64); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	}
	freebytes := stats["freebytes"].(int64)
	if x := stats["allocated"].(int64); x+freebytes != 1000 {
		t.Errorf("allocated %v and free %v don't add up", x, freebytes)
	}
}

func TestPoolOverhead(t *testing.T) {
	pool := NewPool(4096, nil)
	defer pool.Release()

	_, _, overhead1 := pool.Info()
	ptrs := make([]unsafe.Pointer, 0)
	for i := 0; i < 8; i++ {
		ptrs = append(ptrs, pool.Alloc(64))
	}
	for i := 0; i < 8; i += 2 { // leave holes, more ledger entries
		pool.Free(ptrs[i])
	}
	_, _, overhead2 := pool.Info()
	if overhead2 <= overhead1 {
		t.Errorf("expected overhead to grow with fragmentation, %v <= %v",
			overhead2, overhead1)
	}
	pool.Validate()
}

func TestPoolLog(t *testing.T) {
	LogComponents("self")
	pool := NewPool(1024, nil)
	defer pool.Release()
	pool.Log()
}
