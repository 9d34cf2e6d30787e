package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/chatexport/internal/db"
	"github.com/ALT-F4-LLC/chatexport/internal/output"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

type initResult struct {
	Path          string `json:"path"`
	DBPath        string `json:"db_path"`
	BlobDir       string `json:"blob_dir"`
	SchemaVersion int    `json:"schema_version"`
	Created       bool   `json:"created"`
}

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Initialize a new chatexport database",
	Annotations: map[string]string{"skipDB": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		exists, err := cfg.Exists()
		if err != nil {
			return cmdErr(fmt.Errorf("checking database: %w", err), output.ErrGeneral)
		}

		if exists {
			w.Warn("Database already exists at %s", cfg.DBPath)
		} else {
			if err := os.MkdirAll(cfg.BlobDir, 0o755); err != nil {
				return cmdErr(fmt.Errorf("creating directory: %w", err), output.ErrGeneral)
			}
		}

		// Opening an existing database also brings it up to date.
		conn, err := db.OpenInitialized(cfg.DBPath)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		defer conn.Close()

		schemaVersion, err := db.SchemaVersion(conn)
		if err != nil {
			return cmdErr(fmt.Errorf("reading schema version: %w", err), output.ErrGeneral)
		}

		result := initResult{
			Path:          cfg.Dir,
			DBPath:        cfg.DBPath,
			BlobDir:       cfg.BlobDir,
			SchemaVersion: schemaVersion,
			Created:       !exists,
		}

		if exists {
			w.Success(result, render.StyledText("Database already initialized", lipgloss.NewStyle().Foreground(lipgloss.Color("3"))))
			return nil
		}

		w.Success(result, render.StyledText("Initialized chatexport database", lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))))
		w.Info("Database created at %s", cfg.DBPath)
		w.Info("Put attachment and avatar files in %s", cfg.BlobDir)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
