package db

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisProvider implements DatabaseProvider for Redis
type RedisProvider struct {
	client *redis.Client
	ctx    context.Context
}

// convertKeyToHumanReadable converts binary keys to human-readable format for Redis
func convertKeyToHumanReadable(key []byte) string {
	keyStr := string(key)

	// Block keys carry a big-endian height after the prefix
	if strings.HasPrefix(keyStr, "blk:") {
		binaryPart := key[len("blk:"):]
		if len(binaryPart) == 8 {
			height := binary.BigEndian.Uint64(binaryPart)
			return fmt.Sprintf("blk:%d", height)
		}
	}

	// For non-block keys or invalid format, return as string
	return keyStr
}

// NewRedisProvider creates a new Redis provider
func NewRedisProvider(address string) (DatabaseProvider, error) {
	client := redis.NewClient(&redis.Options{
		Addr: address,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", address, err)
	}

	return &RedisProvider{client: client, ctx: ctx}, nil
}

// Get retrieves a value by key
func (p *RedisProvider) Get(key []byte) ([]byte, error) {
	value, err := p.client.Get(p.ctx, convertKeyToHumanReadable(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Return nil for not found, consistent with interface
		}
		return nil, err
	}
	return value, nil
}

// Put stores a key-value pair
func (p *RedisProvider) Put(key, value []byte) error {
	return p.client.Set(p.ctx, convertKeyToHumanReadable(key), value, 0).Err()
}

// Delete removes a key-value pair
func (p *RedisProvider) Delete(key []byte) error {
	return p.client.Del(p.ctx, convertKeyToHumanReadable(key)).Err()
}

// Has checks if a key exists
func (p *RedisProvider) Has(key []byte) (bool, error) {
	n, err := p.client.Exists(p.ctx, convertKeyToHumanReadable(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the database connection
func (p *RedisProvider) Close() error {
	return p.client.Close()
}

// Batch returns a new batch for atomic operations
func (p *RedisProvider) Batch() DatabaseBatch {
	return &RedisBatch{
		pipe: p.client.TxPipeline(),
		ctx:  p.ctx,
	}
}

// RedisBatch implements DatabaseBatch using a Redis transaction pipeline
type RedisBatch struct {
	pipe redis.Pipeliner
	ctx  context.Context
}

func (b *RedisBatch) Put(key, value []byte) {
	b.pipe.Set(b.ctx, convertKeyToHumanReadable(key), value, 0)
}

func (b *RedisBatch) Delete(key []byte) {
	b.pipe.Del(b.ctx, convertKeyToHumanReadable(key))
}

func (b *RedisBatch) Write() error {
	_, err := b.pipe.Exec(b.ctx)
	return err
}

func (b *RedisBatch) Reset() {
	b.pipe.Discard()
}

func (b *RedisBatch) Close() {
	b.pipe.Discard()
}
