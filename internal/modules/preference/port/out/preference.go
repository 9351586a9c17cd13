package out

import "context"

// KVStore is a string key/value store. Get reports found=false for a
// missing key without an error.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
