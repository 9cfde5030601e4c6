package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileSaveStore keeps each save as dir/<profile>/<slot>.json.
type FileSaveStore struct {
	dir string
}

var _ SaveStore = (*FileSaveStore)(nil)

// NewFileSaveStore creates the save directory if needed.
func NewFileSaveStore(dir string) (*FileSaveStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating save dir: %w", err)
	}
	return &FileSaveStore{dir: dir}, nil
}

func (s *FileSaveStore) Save(ctx context.Context, profile string, rec *SaveRecord) error {
	if err := validateSaveKey(profile, rec.Slot); err != nil {
		return err
	}
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(s.dir, profile), 0755); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}
	return atomicWrite(s.slotPath(profile, rec.Slot), data, 0644)
}

func (s *FileSaveStore) Load(ctx context.Context, profile, slot string) (*SaveRecord, error) {
	if err := validateSaveKey(profile, slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.slotPath(profile, slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", profile, slot, ErrSaveNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	return decodeRecord(data)
}

func (s *FileSaveStore) Delete(ctx context.Context, profile, slot string) error {
	if err := validateSaveKey(profile, slot); err != nil {
		return err
	}
	err := os.Remove(s.slotPath(profile, slot))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s/%s: %w", profile, slot, ErrSaveNotFound)
	}
	return err
}

func (s *FileSaveStore) List(ctx context.Context, profile string) ([]*SaveRecord, error) {
	if err := ValidateIdentifier(profile); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.dir, profile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}

	var recs []*SaveRecord
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		rec, err := s.Load(ctx, profile, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	sortRecords(recs)
	return recs, nil
}

func (s *FileSaveStore) Close() error {
	return nil
}

func (s *FileSaveStore) slotPath(profile, slot string) string {
	return filepath.Join(s.dir, profile, slot+".json")
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
