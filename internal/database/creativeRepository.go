package database

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
)

func NewCreativeRepository(storage storage.FileStorage) CreativeRepository {
	return &fileCreativeRepository{storage: storage}
}

func (r *fileCreativeRepository) Save(creative *entity.Creative) error {
	data, err := json.Marshal(creative)
	if err != nil {
		return err
	}

	return r.storage.Save(metadataPath(creative.ID), bytes.NewReader(data))
}

func (r *fileCreativeRepository) FindByID(id string) (*entity.Creative, error) {
	reader, err := r.storage.Get(metadataPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrCreativeNotFound
		}
		return nil, err
	}
	defer reader.Close()

	var creative entity.Creative
	if err := json.NewDecoder(reader).Decode(&creative); err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", id, err)
	}

	return &creative, nil
}

func (r *fileCreativeRepository) Delete(id string) error {
	if err := r.storage.Delete(metadataPath(id)); err != nil {
		if os.IsNotExist(err) {
			return entity.ErrCreativeNotFound
		}
		return err
	}

	for _, path := range []string{assetDir(id), outputPath(id)} {
		if err := r.storage.Delete(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (r *fileCreativeRepository) SaveAsset(id, name string, data []byte) error {
	return r.storage.Save(filepath.Join(assetDir(id), name), bytes.NewReader(data))
}

// LoadAsset returns nil data for an asset that was never uploaded.
func (r *fileCreativeRepository) LoadAsset(id, name string) ([]byte, error) {
	data, err := r.readAll(filepath.Join(assetDir(id), name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

func (r *fileCreativeRepository) SaveOutput(id string, png []byte) error {
	return r.storage.Save(outputPath(id), bytes.NewReader(png))
}

func (r *fileCreativeRepository) LoadOutput(id string) ([]byte, error) {
	data, err := r.readAll(outputPath(id))
	if os.IsNotExist(err) {
		return nil, entity.ErrOutputNotReady
	}
	return data, err
}

func (r *fileCreativeRepository) readAll(path string) ([]byte, error) {
	reader, err := r.storage.Get(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func metadataPath(id string) string {
	return filepath.Join("metadata", id+".json")
}

func assetDir(id string) string {
	return filepath.Join("assets", id)
}

func outputPath(id string) string {
	return filepath.Join("output", id+".png")
}
