package source

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/seqflow/pkg/streaming/cursor"
)

// RedisClient is the slice of the go-redis API the Redis sources consume.
// redis.Cmdable satisfies it.
type RedisClient interface {
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// scanKeys pages through SCAN, which is natively a pull cursor: each call
// returns a batch of keys plus the cursor for the next call, zero meaning
// exhausted.
type scanKeys struct {
	ctx      context.Context
	client   RedisClient
	match    string
	pageSize int64
	buf      []string
	index    int
	cursor   uint64
	done     bool
}

// ScanKeys returns a cursor over the keys matching the given pattern,
// fetched in pages of pageSize. The client stays owned by the caller; the
// cursor holds no resources of its own.
func ScanKeys(ctx context.Context, client RedisClient, match string, pageSize int64) cursor.Cursor[string] {
	return &scanKeys{ctx: ctx, client: client, match: match, pageSize: pageSize}
}

func (c *scanKeys) HasNext() (bool, error) {
	for c.index >= len(c.buf) {
		if c.done {
			return false, nil
		}
		keys, next, err := c.client.Scan(c.ctx, c.cursor, c.match, c.pageSize).Result()
		if err != nil {
			c.done = true
			return false, err
		}
		c.buf = keys
		c.index = 0
		c.cursor = next
		if next == 0 {
			c.done = true
		}
	}
	return true, nil
}

func (c *scanKeys) Next() (string, error) {
	ok, err := c.HasNext()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", cursor.ErrNoSuchElement
	}
	v := c.buf[c.index]
	c.index++
	return v, nil
}

// listRange pages through a Redis list with LRANGE.
type listRange struct {
	ctx      context.Context
	client   RedisClient
	key      string
	pageSize int64
	buf      []string
	index    int
	offset   int64
	done     bool
}

// ListRange returns a cursor over the elements of the list at key, fetched
// in pages of pageSize.
func ListRange(ctx context.Context, client RedisClient, key string, pageSize int64) cursor.Cursor[string] {
	return &listRange{ctx: ctx, client: client, key: key, pageSize: pageSize}
}

func (c *listRange) HasNext() (bool, error) {
	if c.index < len(c.buf) {
		return true, nil
	}
	if c.done {
		return false, nil
	}
	page, err := c.client.LRange(c.ctx, c.key, c.offset, c.offset+c.pageSize-1).Result()
	if err != nil {
		c.done = true
		return false, err
	}
	if int64(len(page)) < c.pageSize {
		c.done = true
	}
	if len(page) == 0 {
		return false, nil
	}
	c.buf = page
	c.index = 0
	c.offset += int64(len(page))
	return true, nil
}

func (c *listRange) Next() (string, error) {
	ok, err := c.HasNext()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", cursor.ErrNoSuchElement
	}
	v := c.buf[c.index]
	c.index++
	return v, nil
}
