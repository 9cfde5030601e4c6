package storage

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSaves = []byte("saves")

// BoltSaveStore keeps saves in a single bbolt file: one nested bucket per
// profile under "saves", keyed by slot.
type BoltSaveStore struct {
	db *bolt.DB
}

var _ SaveStore = (*BoltSaveStore)(nil)

// NewBoltSaveStore opens or creates the database at path.
func NewBoltSaveStore(path string) (*BoltSaveStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSaves)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltSaveStore{db: db}, nil
}

func (s *BoltSaveStore) Save(ctx context.Context, profile string, rec *SaveRecord) error {
	if err := validateSaveKey(profile, rec.Slot); err != nil {
		return err
	}
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(bucketSaves).CreateBucketIfNotExists([]byte(profile))
		if err != nil {
			return fmt.Errorf("creating profile bucket: %w", err)
		}
		return b.Put([]byte(rec.Slot), data)
	})
}

func (s *BoltSaveStore) Load(ctx context.Context, profile, slot string) (*SaveRecord, error) {
	if err := validateSaveKey(profile, slot); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSaves).Bucket([]byte(profile))
		if b == nil {
			return nil
		}
		// Values are only valid inside the transaction.
		if v := b.Get([]byte(slot)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s/%s: %w", profile, slot, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%s/%s: %w", profile, slot, ErrSaveNotFound)
	}
	return decodeRecord(data)
}

func (s *BoltSaveStore) Delete(ctx context.Context, profile, slot string) error {
	if err := validateSaveKey(profile, slot); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSaves).Bucket([]byte(profile))
		if b == nil || b.Get([]byte(slot)) == nil {
			return fmt.Errorf("%s/%s: %w", profile, slot, ErrSaveNotFound)
		}
		return b.Delete([]byte(slot))
	})
}

func (s *BoltSaveStore) List(ctx context.Context, profile string) ([]*SaveRecord, error) {
	if err := ValidateIdentifier(profile); err != nil {
		return nil, err
	}

	var recs []*SaveRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSaves).Bucket([]byte(profile))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			rec, err := decodeRecord(v)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	sortRecords(recs)
	return recs, nil
}

func (s *BoltSaveStore) Close() error {
	return s.db.Close()
}
