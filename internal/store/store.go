package store

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GameRecord is one archived finished game.
type GameRecord struct {
	gorm.Model
	GameID   string `gorm:"uniqueIndex" json:"gameId"`
	White    string `json:"white"`
	Black    string `json:"black"`
	Result   string `json:"result"`
	PlyCount int    `json:"plyCount"`
	FinalFEN string `json:"finalFen"`
	Moves    string `json:"moves"`
}

// Archive persists finished games to Postgres.
type Archive struct {
	db *gorm.DB
}

// Open connects to the archive database and migrates the schema.
func Open(dsn string) (*Archive, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	if err := db.AutoMigrate(&GameRecord{}); err != nil {
		return nil, fmt.Errorf("migrate archive db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("configure archive pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Archive{db: db}, nil
}

func (a *Archive) Save(rec *GameRecord) error {
	if err := a.db.Create(rec).Error; err != nil {
		return fmt.Errorf("save game record: %w", err)
	}
	return nil
}

// Recent returns the latest finished games, newest first.
func (a *Archive) Recent(limit int) ([]GameRecord, error) {
	var recs []GameRecord
	if err := a.db.Order("created_at desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	return recs, nil
}
