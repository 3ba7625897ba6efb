// Package catalog records extraction results in a SQLite database so colors
// recovered from many maps can be merged into one lights file.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Faultbox/lightsrad/internal/extract"
	"github.com/Faultbox/lightsrad/pkg/bsp"
	"github.com/Faultbox/lightsrad/pkg/encoding"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("catalog is closed")

// Run is one invocation of the extractor.
type Run struct {
	ID        string `gorm:"primaryKey"`
	StartedAt time.Time
	Maps      []MapRecord `gorm:"foreignKey:RunID"`
}

// MapRecord is one processed map.
type MapRecord struct {
	ID           uint   `gorm:"primaryKey"`
	RunID        string `gorm:"index"`
	Path         string
	Version      int32
	Revision     int32
	TextureCount int
	Textures     []TextureRecord `gorm:"foreignKey:MapID"`
	CreatedAt    time.Time
}

// TextureRecord is one recovered texture color.
type TextureRecord struct {
	ID      uint `gorm:"primaryKey"`
	MapID   uint `gorm:"index"`
	Name    string
	Key     string `gorm:"index"` // lowercased name
	R, G, B int
}

// TextureLight converts the record back into an extraction entry.
func (t TextureRecord) TextureLight() extract.TextureLight {
	return extract.TextureLight{Name: t.Name, Color: [3]int{t.R, t.G, t.B}}
}

// Catalog is an open results database.
type Catalog struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path and migrates its tables.
func Open(path string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Run{}, &MapRecord{}, &TextureRecord{}); err != nil {
		return nil, fmt.Errorf("migrating catalog %s: %w", path, err)
	}

	log.Debug("Catalog opened", zap.String("path", path))
	return &Catalog{db: db, log: log}, nil
}

// StartRun records a new run.
func (c *Catalog) StartRun() (*Run, error) {
	if c.db == nil {
		return nil, ErrClosed
	}
	run := &Run{ID: uuid.NewString(), StartedAt: time.Now()}
	if err := c.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}

// Record stores the textures recovered from one map under runID.
func (c *Catalog) Record(runID, mapPath string, header bsp.Header, textures []extract.TextureLight) (*MapRecord, error) {
	if c.db == nil {
		return nil, ErrClosed
	}

	rec := &MapRecord{
		RunID:        runID,
		Path:         mapPath,
		Version:      header.Version,
		Revision:     header.MapRevision,
		TextureCount: len(textures),
	}
	for _, t := range textures {
		rec.Textures = append(rec.Textures, TextureRecord{
			Name: t.Name,
			Key:  encoding.MaterialKey(t.Name),
			R:    t.Color[0],
			G:    t.Color[1],
			B:    t.Color[2],
		})
	}

	if err := c.db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("recording %s: %w", mapPath, err)
	}
	c.log.Debug("Recorded map",
		zap.String("run", runID),
		zap.String("path", mapPath),
		zap.Int("textures", len(textures)))
	return rec, nil
}

// Maps returns the maps recorded under runID, in recording order.
func (c *Catalog) Maps(runID string) ([]MapRecord, error) {
	if c.db == nil {
		return nil, ErrClosed
	}
	var maps []MapRecord
	err := c.db.Preload("Textures").Where("run_id = ?", runID).Order("id").Find(&maps).Error
	return maps, err
}

// Textures returns the most recently recorded color of every texture,
// one entry per case-insensitive name, ordered by name.
func (c *Catalog) Textures() ([]TextureRecord, error) {
	if c.db == nil {
		return nil, ErrClosed
	}

	var all []TextureRecord
	if err := c.db.Order("id desc").Find(&all).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var latest []TextureRecord
	for _, t := range all {
		if seen[t.Key] {
			continue
		}
		seen[t.Key] = true
		latest = append(latest, t)
	}
	sort.Slice(latest, func(i, j int) bool { return latest[i].Key < latest[j].Key })
	return latest, nil
}

// Close releases the database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	c.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
