package main

import (
	"carousel-builder/internal/config"
	"carousel-builder/internal/database"
	"carousel-builder/internal/logging"
	"carousel-builder/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Copies the template library and export history from the local SQLite
// file into PostgreSQL. Rows already present in Postgres are left alone, so
// the tool can be re-run.
func main() {
	cfg := config.LoadConfig()
	logging.Init(cfg.LogLevel, cfg.LogPretty)
	log := logging.Component("migrate")

	// 1. Connect to SQLite (Source)
	sqliteDB, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to SQLite")
	}
	log.Info().Str("path", cfg.DBPath).Msg("connected to SQLite")

	// 2. Connect to PostgreSQL (Destination)
	pgCfg := *cfg
	pgCfg.DBDriver = "postgres"
	database.InitGorm(&pgCfg)
	pgDB := database.GormDB

	log.Info().Msg("starting data migration")

	migrateTable := func(tableName string, source interface{}) {
		log.Info().Str("table", tableName).Msg("migrating table")

		if err := sqliteDB.Find(source).Error; err != nil {
			log.Error().Err(err).Str("table", tableName).Msg("error reading from SQLite")
			return
		}

		err := pgDB.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(source, 100).Error
		})
		if err != nil {
			log.Error().Err(err).Str("table", tableName).Msg("error writing to Postgres")
			return
		}
		log.Info().Str("table", tableName).Msg("successfully migrated")
	}

	var templates []models.SavedTemplate
	migrateTable("saved_templates", &templates)

	var records []models.ExportRecord
	migrateTable("export_records", &records)

	log.Info().Msg("data migration finished")
}
