package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/chatexport/internal/config"
	"github.com/ALT-F4-LLC/chatexport/internal/db"
	"github.com/ALT-F4-LLC/chatexport/internal/output"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

type configInfo struct {
	DBPath        string `json:"db_path"`
	DBSizeBytes   int64  `json:"db_size_bytes"`
	SchemaVersion int    `json:"schema_version"`
	BlobDir       string `json:"blob_dir"`
	ConfigFile    string `json:"config_file"`
	PathEnv       string `json:"chatexport_path_env"`
	PathEnvSet    bool   `json:"chatexport_path_set"`
	SelfContactID int    `json:"self_contact_id"`
	TextPolicy    string `json:"text_policy"`
	TimeZone      string `json:"time_zone"`
	AdjacentDedup bool   `json:"adjacent_dedup"`
	LogLevel      string `json:"log_level"`
	LogFile       string `json:"log_file"`
	found         bool
}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Display chatexport configuration",
	Annotations: map[string]string{"skipDB": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		info := newConfigInfo(cfg)

		exists, err := cfg.Exists()
		if err != nil {
			return cmdErr(fmt.Errorf("checking database: %w", err), output.ErrGeneral)
		}

		if !exists {
			w.Warn("No chatexport database found. Run 'chatexport init' to create one.")
			w.Success(info, formatConfig(info))
			return nil
		}

		conn, err := db.Open(cfg.DBPath)
		if err != nil {
			return cmdErr(fmt.Errorf("opening database: %w", err), output.ErrGeneral)
		}
		defer conn.Close()

		if info.SchemaVersion, err = db.SchemaVersion(conn); err != nil {
			return cmdErr(fmt.Errorf("reading schema version: %w", err), output.ErrGeneral)
		}

		stat, err := os.Stat(cfg.DBPath)
		if err != nil {
			return cmdErr(fmt.Errorf("reading database file: %w", err), output.ErrGeneral)
		}
		info.DBSizeBytes = stat.Size()
		info.found = true

		w.Success(info, formatConfig(info))
		return nil
	},
}

func newConfigInfo(cfg *config.Config) configInfo {
	s := cfg.Settings
	policy, _ := s.Policy()

	tz := s.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	return configInfo{
		DBPath:        cfg.DBPath,
		BlobDir:       cfg.BlobDir,
		ConfigFile:    cfg.ConfigPath,
		PathEnv:       os.Getenv("CHATEXPORT_PATH"),
		PathEnvSet:    cfg.EnvVarSet,
		SelfContactID: s.SelfID(),
		TextPolicy:    policy.String(),
		TimeZone:      tz,
		AdjacentDedup: s.AdjacentDedup,
		LogLevel:      strings.ToLower(s.Level().String()),
		LogFile:       s.LogFile,
	}
}

func orNotSet(val string) string {
	if val == "" {
		return "(not set)"
	}
	return val
}

// configRows returns label/value pairs in display order.
func configRows(info configInfo) [][2]string {
	dbPath := info.DBPath
	if !info.found {
		dbPath += " (not found)"
	}

	rows := [][2]string{{"Database path:", dbPath}}
	if info.found {
		rows = append(rows,
			[2]string{"Database size:", humanize.IBytes(uint64(info.DBSizeBytes))},
			[2]string{"Schema version:", fmt.Sprintf("%d", info.SchemaVersion)},
		)
	}
	return append(rows,
		[2]string{"Blob directory:", info.BlobDir},
		[2]string{"Config file:", info.ConfigFile},
		[2]string{"Self contact:", fmt.Sprintf("%d", info.SelfContactID)},
		[2]string{"Text policy:", info.TextPolicy},
		[2]string{"Time zone:", info.TimeZone},
		[2]string{"Adjacent dedup:", fmt.Sprintf("%t", info.AdjacentDedup)},
		[2]string{"Log level:", info.LogLevel},
		[2]string{"Log file:", orNotSet(info.LogFile)},
		[2]string{"CHATEXPORT_PATH:", orNotSet(info.PathEnv)},
	)
}

func formatConfig(info configInfo) string {
	rows := configRows(info)

	if !render.ColorsEnabled() {
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, fmt.Sprintf("%-17s %s", r[0], r[1]))
		}
		return strings.Join(lines, "\n")
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(17)
	valStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("●")
	if !info.found {
		indicator = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("●")
	}

	lines := []string{headerStyle.Render("Chatexport Configuration"), ""}
	for i, r := range rows {
		val := valStyle.Render(r[1])
		if i == 0 {
			val = indicator + " " + val
		}
		lines = append(lines, "  "+keyStyle.Render(r[0])+" "+val)
	}
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.AddCommand(configCmd)
}
