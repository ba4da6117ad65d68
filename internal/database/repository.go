package database

import (
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
)

type CreativeRepository interface {
	Save(creative *entity.Creative) error
	FindByID(id string) (*entity.Creative, error)
	Delete(id string) error
	SaveAsset(id, name string, data []byte) error
	LoadAsset(id, name string) ([]byte, error)
	SaveOutput(id string, png []byte) error
	LoadOutput(id string) ([]byte, error)
}

type fileCreativeRepository struct {
	storage storage.FileStorage
}
