package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/chatexport/internal/config"
	"github.com/ALT-F4-LLC/chatexport/internal/db"
	"github.com/ALT-F4-LLC/chatexport/internal/export"
	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/output"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

type exportResult struct {
	ChatID          string           `json:"chat_id"`
	Path            string           `json:"path,omitempty"`
	ReferencedBlobs []string         `json:"referenced_blobs"`
	Manifest        *export.Manifest `json:"manifest,omitempty"`
	HTML            string           `json:"html,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export <chat-id>",
	Short: "Export a chat as a standalone HTML archive",
	Long: `Export a chat as a zip archive holding index.html, the referenced blobs
under blobs/ and a manifest. With --html the same layout is written to a
directory instead. Use "-f -" to print only the document to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)
		log := getLogger(cmd)
		store := db.NewStore(getDB(cmd))

		chat, err := resolveChat(store, args[0])
		if err != nil {
			return err
		}

		opts, err := exporterOptions(cmd, cfg)
		if err != nil {
			return err
		}
		opts = append(opts, export.WithLogger(log))

		result, err := export.New(store, store, store, opts...).ExportChat(chat.ID)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		path, _ := cmd.Flags().GetString("file")
		htmlDir, _ := cmd.Flags().GetBool("html")
		force, _ := cmd.Flags().GetBool("force")

		res := exportResult{
			ChatID:          model.FormatID(chat.ID),
			ReferencedBlobs: result.ReferencedBlobs,
		}

		if path == "-" {
			doc := render.Document(chat.NameOrDefault(), result.HTML)
			if w.JSONMode {
				res.HTML = doc
				w.Success(res, "")
				return nil
			}
			return w.Raw(doc)
		}

		if path == "" {
			path = defaultExportPath(chat.ID, htmlDir)
		}

		if !force {
			proceed, err := confirmOverwrite(w, path)
			if err != nil {
				return err
			}
			if !proceed {
				w.Info("Cancelled.")
				return nil
			}
		}

		packOpts := export.PackOptions{
			ChatID:   chat.ID,
			ChatName: chat.Name,
			BlobDir:  cfg.BlobDir,
		}

		var manifest *export.Manifest
		if htmlDir {
			manifest, err = export.WriteDir(path, result, packOpts)
		} else {
			manifest, err = export.PackFile(path, result, packOpts)
		}
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		for _, name := range manifest.MissingBlobs {
			w.Warn("Blob %q not found in %s", name, cfg.BlobDir)
		}
		log.Info("Wrote export", "path", path, "export_id", manifest.ExportID, "missing_blobs", len(manifest.MissingBlobs))

		res.Path = path
		res.Manifest = manifest
		w.Success(res, fmt.Sprintf("Exported %s to %s", model.FormatID(chat.ID), path))
		return nil
	},
}

// exporterOptions builds exporter options from config.yaml settings, with
// command flags taking precedence.
func exporterOptions(cmd *cobra.Command, cfg *config.Config) ([]export.Option, error) {
	s := cfg.Settings

	selfID := s.SelfID()
	if cmd.Flags().Changed("self") {
		selfID, _ = cmd.Flags().GetInt("self")
	}

	policy, err := s.Policy()
	if err != nil {
		return nil, cmdErr(err, output.ErrValidation)
	}
	if cmd.Flags().Changed("text-policy") {
		name, _ := cmd.Flags().GetString("text-policy")
		if policy, err = render.ParseTextPolicy(name); err != nil {
			return nil, cmdErr(err, output.ErrValidation)
		}
	}

	adjacent := s.AdjacentDedup
	if cmd.Flags().Changed("adjacent-dedup") {
		adjacent, _ = cmd.Flags().GetBool("adjacent-dedup")
	}

	layouts, err := s.Times()
	if err != nil {
		return nil, cmdErr(err, output.ErrValidation)
	}
	var times render.TimeFormatter = layouts
	if relative, _ := cmd.Flags().GetBool("relative-time"); relative {
		times = render.HumanTimeFormatter{Layout: layouts, Now: time.Now()}
	}

	return []export.Option{
		export.WithSelfID(selfID),
		export.WithTextPolicy(policy),
		export.WithAdjacentDedup(adjacent),
		export.WithTimeFormatter(times),
	}, nil
}

func defaultExportPath(chatID int, dir bool) string {
	if dir {
		return fmt.Sprintf("chat-%d", chatID)
	}
	return fmt.Sprintf("chat-%d.zip", chatID)
}

// confirmOverwrite asks before replacing an existing export. JSON mode
// cannot prompt, so it refuses instead.
func confirmOverwrite(w *output.Writer, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, cmdErr(fmt.Errorf("checking %s: %w", path, err), output.ErrGeneral)
	}

	if w.JSONMode {
		return false, cmdErr(fmt.Errorf("%s already exists: use --force to overwrite", path), output.ErrConflict)
	}

	return confirm(fmt.Sprintf("%s already exists. Overwrite it?", path), "Yes, overwrite")
}

func init() {
	exportCmd.Flags().StringP("file", "f", "", `Output path ("-" for stdout; default chat-<id>.zip or chat-<id>/)`)
	exportCmd.Flags().Bool("html", false, "Write a directory instead of a zip archive")
	exportCmd.Flags().Bool("force", false, "Overwrite an existing export without asking")
	exportCmd.Flags().Int("self", 0, "Contact id of the account owner (default from config)")
	exportCmd.Flags().String("text-policy", "", "How message text is placed in HTML: escape, sanitize, raw")
	exportCmd.Flags().Bool("adjacent-dedup", false, "Only collapse consecutive repeats when resolving authors")
	exportCmd.Flags().Bool("relative-time", false, "Show relative dates (\"3 days ago\") under messages")
	rootCmd.AddCommand(exportCmd)
}
