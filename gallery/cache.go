package gallery

import (
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/syirilrakhulh/oddbit-player/filesystem"
	"github.com/syirilrakhulh/oddbit-player/where"
)

// idsLifetime bounds how stale completion candidates may get.
const idsLifetime = 24 * time.Hour

var idsCache = sync.OnceValue(func() *gache.Cache[[]string] {
	return filesystem.NewCache[[]string](where.Gallery(), idsLifetime)
})

// Remember stores the ids last listed from a server.
func Remember(ids []string) error {
	return idsCache().Set(ids)
}

// Known returns the remembered ids, or nothing when they expired.
func Known() []string {
	ids, expired, err := idsCache().Get()
	if err != nil || expired {
		return nil
	}
	return ids
}
