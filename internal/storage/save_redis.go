package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisSaveStore keeps each save under save:<profile>:<slot> and indexes a
// profile's slots in the set saves:<profile>.
type RedisSaveStore struct {
	client *redis.Client
}

var _ SaveStore = (*RedisSaveStore)(nil)

// NewRedisSaveStore connects to addr and checks that the server answers.
func NewRedisSaveStore(ctx context.Context, addr string) (*RedisSaveStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisSaveStore{client: client}, nil
}

func saveKey(profile, slot string) string {
	return "save:" + profile + ":" + slot
}

func indexKey(profile string) string {
	return "saves:" + profile
}

func (s *RedisSaveStore) Save(ctx context.Context, profile string, rec *SaveRecord) error {
	if err := validateSaveKey(profile, rec.Slot); err != nil {
		return err
	}
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, saveKey(profile, rec.Slot), data, 0)
		pipe.SAdd(ctx, indexKey(profile), rec.Slot)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving %s/%s: %w", profile, rec.Slot, err)
	}
	return nil
}

func (s *RedisSaveStore) Load(ctx context.Context, profile, slot string) (*SaveRecord, error) {
	if err := validateSaveKey(profile, slot); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, saveKey(profile, slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s/%s: %w", profile, slot, ErrSaveNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s/%s: %w", profile, slot, err)
	}
	return decodeRecord(data)
}

func (s *RedisSaveStore) Delete(ctx context.Context, profile, slot string) error {
	if err := validateSaveKey(profile, slot); err != nil {
		return err
	}

	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, saveKey(profile, slot))
		pipe.SRem(ctx, indexKey(profile), slot)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", profile, slot, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%s/%s: %w", profile, slot, ErrSaveNotFound)
	}
	return nil
}

func (s *RedisSaveStore) List(ctx context.Context, profile string) ([]*SaveRecord, error) {
	if err := ValidateIdentifier(profile); err != nil {
		return nil, err
	}

	slots, err := s.client.SMembers(ctx, indexKey(profile)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}

	var recs []*SaveRecord
	for _, slot := range slots {
		rec, err := s.Load(ctx, profile, slot)
		if errors.Is(err, ErrSaveNotFound) {
			slog.WarnContext(ctx, "save index points at a missing slot", "profile", profile, "slot", slot)
			continue
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	sortRecords(recs)
	return recs, nil
}

func (s *RedisSaveStore) Close() error {
	return s.client.Close()
}
