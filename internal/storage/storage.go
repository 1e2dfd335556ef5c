package storage

import "context"

// ObjectStore is the binary photo store: upload by generated key, public URL
// retrieval by key, delete by key. A record is only ever created after its
// blob exists, and deleting a record deletes its blob.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte) error
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}
