// Package redis provides Redis-backed storage components.
package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/domain/draft"
)

const draftKeyPrefix = "draft:"

// defaultCompressThreshold is the serialized size above which drafts are
// stored zstd-compressed. Small drafts are not worth the CPU.
const defaultCompressThreshold = 4 * 1024

// zstdMagic is the zstd frame header; raw JSON can never start with it,
// so stored values are self-describing.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// DraftRepository implements draft.Repository using Redis.
// Drafts expire after the configured TTL; an expired draft reads as not found.
type DraftRepository struct {
	client            *redis.Client
	ttl               time.Duration
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewDraftRepository creates a new Redis-backed draft repository.
func NewDraftRepository(client *redis.Client, ttl time.Duration) (*DraftRepository, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &DraftRepository{
		client:            client,
		ttl:               ttl,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: defaultCompressThreshold,
	}, nil
}

// Get implements draft.Repository.
func (r *DraftRepository) Get(ctx context.Context, draftID id.ID) (*draft.Draft, error) {
	data, err := r.client.Get(ctx, draftKeyPrefix+draftID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.NewNotFound("draft", draftID.String())
		}
		return nil, fmt.Errorf("redis get draft: %w", err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		data, err = r.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress draft: %w", err)
		}
	}

	var d draft.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	d.Normalize()
	return &d, nil
}

// Save implements draft.Repository.
func (r *DraftRepository) Save(ctx context.Context, d *draft.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if len(data) > r.compressThreshold {
		data = r.encoder.EncodeAll(data, nil)
	}

	if err := r.client.Set(ctx, draftKeyPrefix+d.ID.String(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft: %w", err)
	}
	return nil
}

// Delete implements draft.Repository.
func (r *DraftRepository) Delete(ctx context.Context, draftID id.ID) error {
	if err := r.client.Del(ctx, draftKeyPrefix+draftID.String()).Err(); err != nil {
		return fmt.Errorf("redis del draft: %w", err)
	}
	return nil
}

var _ draft.Repository = (*DraftRepository)(nil)
