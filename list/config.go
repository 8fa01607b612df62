package list

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/gomempool/malloc"

// Defaultsettings for list, along with its backing pool. Pool
// settings are prefixed with "pool.".
func Defaultsettings() s.Settings {
	setts := (s.Settings{}).Mixin(
		malloc.Defaultsettings().AddPrefix("pool."),
	)
	return setts
}
