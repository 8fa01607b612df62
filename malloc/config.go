package malloc

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Maxpoolsize maximum size of a memory pool's arena. Can be used as
// upper bound while picking a capacity for NewPool().
const Maxpoolsize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Defaultsettings for memory pool.
//
// "allocator" (string, default: "firstfit")
//		Allocator algorithm, only "firstfit" is supported.
//
// "capacity" (int64, default: half of free system memory)
//		Arena capacity in bytes, used when callers pass a zero
//		capacity to NewPool().
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	capacity := int64(free / 2)
	if capacity > Maxpoolsize {
		capacity = Maxpoolsize
	}
	return s.Settings{
		"allocator": "firstfit",
		"capacity":  capacity,
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
