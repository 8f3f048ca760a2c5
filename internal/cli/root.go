// Package cli implements the carousel command line: offline conversion of
// form input into Twilio and Jaiminho documents, plus access to the saved
// template library.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"carousel-builder/internal/carousel"
	"carousel-builder/internal/config"
	"carousel-builder/internal/database"
	"carousel-builder/internal/library"
	"carousel-builder/internal/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "carousel",
	Short: "Build Twilio carousel templates",
	Long: `carousel turns carousel form input into Twilio Content API and Jaiminho
documents, reads pasted Twilio documents back, and manages the saved
template library.

Input files may be given as "-" to read from stdin.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitWriter(cmd.ErrOrStderr(), logLevel, true)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite library file (default: DB_PATH from the environment)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func readTemplateInput(cmd *cobra.Command, path string) (carousel.TemplateInput, error) {
	var in carousel.TemplateInput
	data, err := readSource(cmd, path)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to parse form input: %w", err)
	}
	return in, nil
}

func writeDocument(cmd *cobra.Command, v interface{}) error {
	data, err := carousel.Render(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// libraryConn is an open library plus the connection behind it.
type libraryConn struct {
	*library.GormRepository
	db *gorm.DB
}

func (c *libraryConn) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// openLibrary connects to the configured database. --db forces a SQLite file.
// Callers close the returned connection.
func openLibrary() (*libraryConn, error) {
	cfg := config.LoadConfig()
	if dbPath != "" {
		cfg.DBDriver = "sqlite"
		cfg.DBPath = dbPath
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn := &libraryConn{GormRepository: library.NewGormRepository(db), db: db}
	if err := database.Migrate(db); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return conn, nil
}
