package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetInt returns an integer counter stored by key, zero if the counter
// has never been written.
func GetInt(ctx storage.Context, key interface{}) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// NextID allocates the next value of the strictly increasing counter
// stored by key. The returned identifier equals the number of
// allocations made before this one, so the first allocated id is 0.
// Identifiers are never reused.
func NextID(ctx storage.Context, key interface{}) int {
	id := GetInt(ctx, key)
	storage.Put(ctx, key, id+1)

	return id
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}
