package storage

import (
	"errors"

	"github.com/ericogr/breath-arena/internal/game"
	"github.com/ericogr/breath-arena/internal/keys"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// order is the roster order from config; only these keys are listed.
	order []string
}

func NewSQLiteRepository(db *gorm.DB, configCharacters []game.Character) Repository {
	order := make([]string, 0, len(configCharacters))
	for _, c := range configCharacters {
		order = append(order, c.Key)
	}
	return &sqliteRepository{db: db, order: order}
}

func (r *sqliteRepository) GetCharacters() ([]game.Character, error) {
	var rows []game.Character
	if err := r.db.Where("character_key IN ?", r.order).Find(&rows).Error; err != nil {
		return nil, err
	}
	byKey := make(map[string]game.Character, len(rows))
	for _, c := range rows {
		byKey[c.Key] = c
	}
	out := make([]game.Character, 0, len(rows))
	for _, k := range r.order {
		if c, ok := byKey[k]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *sqliteRepository) GetCharacterByKey(key string) (*game.Character, error) {
	key = keys.Normalize(key)
	listed := false
	for _, k := range r.order {
		if k == key {
			listed = true
			break
		}
	}
	if !listed {
		return nil, ErrNotFound
	}
	var c game.Character
	if err := r.db.Where("character_key = ?", key).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
