// Package boltsrc reads a bolt bucket as an ordered source for groupkit.
//
// bolt keeps the keys of a bucket in byte order,
// so keys that share a prefix form consecutive runs,
// which makes a bucket cursor a natural input for grouping.
package boltsrc

import (
	"bytes"
	"context"

	"github.com/boltdb/bolt"

	"go.llib.dev/groupkit/pkg/errorkit"
	"go.llib.dev/groupkit/pkg/groupkit"
	"go.llib.dev/groupkit/pkg/iterkit"
	"go.llib.dev/groupkit/pkg/logging"
	"go.llib.dev/groupkit/port/option"
)

const ErrBucketNotFound errorkit.Error = "boltsrc: bucket not found"

// KV is a key value pair of a bucket.
type KV = iterkit.KV[[]byte, []byte]

type Option option.Option[Config]

type Config struct {
	// Prefix limits the iteration to the keys which start with it.
	Prefix []byte
	Logger *logging.Logger
}

func (c *Config) Init() { c.Logger = &logging.Default }

func Prefix(p []byte) Option {
	return option.Func[Config](func(c *Config) { c.Prefix = p })
}

func WithLogger(l *logging.Logger) Option {
	return option.Func[Config](func(c *Config) { c.Logger = l })
}

// Cursor returns an iterator over the key value pairs of a bucket, in key order.
// Keys of nested buckets are skipped.
//
// The Iterator is only valid for the lifetime of the transaction.
// The yielded keys and values are copies, so they can be used after the transaction.
func Cursor(ctx context.Context, tx *bolt.Tx, bucket []byte, opts ...Option) *Iterator {
	c := option.Use[Config](opts)
	i := &Iterator{ctx: ctx, config: c, bucket: bucket}
	b := tx.Bucket(bucket)
	if b == nil {
		i.err = ErrBucketNotFound.F("%q", bucket)
		return i
	}
	i.cursor = b.Cursor()
	return i
}

type Iterator struct {
	ctx    context.Context
	config Config
	bucket []byte
	cursor *bolt.Cursor

	started bool
	done    bool
	value   KV
	read    int
	err     error
}

func (i *Iterator) Next() bool {
	if i.done || i.err != nil || i.cursor == nil {
		return false
	}
	if err := i.ctx.Err(); err != nil {
		i.err = err
		return false
	}
	k, v := i.step()
	for k != nil && v == nil { // nested bucket
		k, v = i.cursor.Next()
	}
	if k == nil || !bytes.HasPrefix(k, i.config.Prefix) {
		i.done = true
		return false
	}
	i.read++
	i.value = KV{K: bytes.Clone(k), V: bytes.Clone(v)}
	return true
}

func (i *Iterator) step() ([]byte, []byte) {
	if i.started {
		return i.cursor.Next()
	}
	i.started = true
	if len(i.config.Prefix) == 0 {
		return i.cursor.First()
	}
	return i.cursor.Seek(i.config.Prefix)
}

func (i *Iterator) Value() KV { return i.value }

func (i *Iterator) Err() error { return i.err }

func (i *Iterator) Close() error {
	if i.done && i.cursor == nil {
		return nil
	}
	i.done = true
	i.cursor = nil
	i.config.Logger.Debug(i.ctx, "boltsrc: cursor closed", logging.Fields{
		"bucket": string(i.bucket),
		"read":   i.read,
	})
	return nil
}

// GroupByPrefix groups the pairs of a bucket by the part of their key before the separator.
// Keys without the separator form a group on their own, keyed by the whole key.
func GroupByPrefix(ctx context.Context, tx *bolt.Tx, bucket []byte, sep byte, opts ...Option) *groupkit.GroupBy[KV, []byte] {
	c := option.Use[Config](opts)
	return groupkit.FromPullIterFunc[KV, []byte](Cursor(ctx, tx, bucket, opts...),
		func(kv KV) []byte { return KeyPrefix(kv.K, sep) },
		bytes.Equal,
		groupkit.WithLogger(c.Logger),
		groupkit.WithContext(ctx))
}

// KeyPrefix returns the part of the key before the first separator.
func KeyPrefix(key []byte, sep byte) []byte {
	if idx := bytes.IndexByte(key, sep); 0 <= idx {
		return key[:idx]
	}
	return key
}
