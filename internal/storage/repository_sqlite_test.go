package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ericogr/breath-arena/internal/game"
)

func roster() []game.Character {
	return []game.Character{
		{Key: "zenitsu", Name: "Zenitsu", Class: "Thunder Breathing", MaxHealth: 140, MaxResource: 120, AttackPower: 65, DefensePower: 25, Speed: 95, Avatar: "⚡", Color: "#FFD600"},
		{Key: "tanjiro", Name: "Tanjiro", Class: "Water Breathing", MaxHealth: 180, MaxResource: 100, AttackPower: 45, DefensePower: 35, Speed: 60},
	}
}

func openTestRepo(t *testing.T, chars []game.Character) (Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "arena.db")
	db, err := OpenAndMigrate(path, chars)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewSQLiteRepository(db, chars), path
}

func TestSQLiteRepository_RosterOrderAndLookup(t *testing.T) {
	repo, _ := openTestRepo(t, roster())

	got, err := repo.GetCharacters()
	if err != nil {
		t.Fatalf("GetCharacters: %v", err)
	}
	if len(got) != 2 || got[0].Key != "zenitsu" || got[1].Key != "tanjiro" {
		t.Fatalf("unexpected roster %+v", got)
	}
	if got[0].AttackPower != 65 || got[0].Avatar != "⚡" {
		t.Fatalf("stats not persisted: %+v", got[0])
	}

	c, err := repo.GetCharacterByKey(" Tanjiro ")
	if err != nil {
		t.Fatalf("GetCharacterByKey: %v", err)
	}
	if c.Name != "Tanjiro" || c.MaxHealth != 180 {
		t.Fatalf("unexpected character %+v", c)
	}

	if _, err := repo.GetCharacterByKey("inosuke"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenAndMigrate_ConfigWinsOnRestart(t *testing.T) {
	_, path := openTestRepo(t, roster())

	updated := roster()[:1]
	updated[0].AttackPower = 99
	db, err := OpenAndMigrate(path, updated)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()
	repo := NewSQLiteRepository(db, updated)

	got, err := repo.GetCharacters()
	if err != nil {
		t.Fatalf("GetCharacters: %v", err)
	}
	if len(got) != 1 || got[0].AttackPower != 99 {
		t.Fatalf("expected updated single-character roster, got %+v", got)
	}
	if _, err := repo.GetCharacterByKey("tanjiro"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("characters removed from config must not be served, got %v", err)
	}

	var count int64
	db.Model(&game.Character{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected both rows to remain stored, got %d", count)
	}
}
