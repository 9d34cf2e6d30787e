package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/chatexport/internal/db"
	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/output"
)

const dumpVersion = 1

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import chats, contacts and messages from a JSON dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		conn := getDB(cmd)
		log := getLogger(cmd)

		merge, _ := cmd.Flags().GetBool("merge")
		replace, _ := cmd.Flags().GetBool("replace")

		if merge && replace {
			return cmdErr(fmt.Errorf("--merge and --replace are mutually exclusive"), output.ErrValidation)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return cmdErr(fmt.Errorf("reading file: %w", err), output.ErrGeneral)
		}

		var dump model.DumpData
		if err := json.Unmarshal(data, &dump); err != nil {
			return cmdErr(fmt.Errorf("parsing JSON: %w", err), output.ErrValidation)
		}

		if errs := validateDump(&dump); len(errs) > 0 {
			return &CmdError{
				Err:     fmt.Errorf("validation failed with %d error(s)", len(errs)),
				Code:    output.ErrValidation,
				Details: errs,
			}
		}

		if replace {
			if !w.JSONMode {
				ok, err := confirm("This will delete ALL stored chats and replace them with the dump. Continue?", "Yes, replace all data")
				if err != nil {
					return err
				}
				if !ok {
					w.Info("Cancelled.")
					return nil
				}
			}

			if err := db.ClearAllData(conn); err != nil {
				return cmdErr(fmt.Errorf("clearing database: %w", err), output.ErrGeneral)
			}
			log.Info("Cleared database before import")
		} else if !merge {
			count, err := db.CountChats(conn)
			if err != nil {
				return cmdErr(fmt.Errorf("checking database: %w", err), output.ErrGeneral)
			}
			if count > 0 {
				return cmdErr(
					fmt.Errorf("database is not empty: use --merge to merge with existing data or --replace to replace it"),
					output.ErrConflict,
				)
			}
		}

		result, err := db.ImportDump(conn, &dump)
		if err != nil {
			return cmdErr(fmt.Errorf("importing data: %w", err), output.ErrGeneral)
		}
		log.Info("Imported dump", "file", args[0], "imported", result.Imported, "skipped", result.Skipped)

		message := fmt.Sprintf("Imported %d rows", result.Imported)
		if result.Skipped > 0 {
			message = fmt.Sprintf("Imported %d rows, skipped %d duplicates", result.Imported, result.Skipped)
		}
		w.Success(result, message)
		return nil
	},
}

// validateDump collects every structural problem in a dump so they can be
// reported together.
func validateDump(dump *model.DumpData) []string {
	var errs []string

	if dump.Version != dumpVersion {
		errs = append(errs, fmt.Sprintf("unsupported version %d: expected %d", dump.Version, dumpVersion))
	}

	chatIDs := make(map[int]bool, len(dump.Chats))
	for i, c := range dump.Chats {
		if c == nil {
			errs = append(errs, fmt.Sprintf("chats[%d]: null entry", i))
			continue
		}
		if c.ID <= 0 {
			errs = append(errs, fmt.Sprintf("chats[%d]: id must be positive", i))
		}
		if chatIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("chat %s: duplicate id", model.FormatID(c.ID)))
		}
		chatIDs[c.ID] = true
	}

	contactIDs := make(map[int]bool, len(dump.Contacts))
	for i, c := range dump.Contacts {
		if c == nil {
			errs = append(errs, fmt.Sprintf("contacts[%d]: null entry", i))
			continue
		}
		if c.ID <= model.ContactIDUnknown {
			errs = append(errs, fmt.Sprintf("contacts[%d]: id %d is reserved or negative", i, c.ID))
		}
		if contactIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("contact %d: duplicate id", c.ID))
		}
		contactIDs[c.ID] = true
	}

	messageIDs := make(map[int]bool, len(dump.Messages))
	for i, m := range dump.Messages {
		if m == nil {
			errs = append(errs, fmt.Sprintf("messages[%d]: null entry", i))
			continue
		}
		if m.ID <= 0 {
			errs = append(errs, fmt.Sprintf("messages[%d]: id must be positive", i))
		}
		if messageIDs[m.ID] {
			errs = append(errs, fmt.Sprintf("message %d: duplicate id", m.ID))
		}
		messageIDs[m.ID] = true
		if len(dump.Chats) > 0 && !chatIDs[m.ChatID] {
			errs = append(errs, fmt.Sprintf("message %d: chat %s is not in the dump", m.ID, model.FormatID(m.ChatID)))
		}
	}

	return errs
}

func init() {
	importCmd.Flags().Bool("merge", false, "Merge with existing data, skipping rows whose id already exists")
	importCmd.Flags().Bool("replace", false, "Delete all existing data before importing")
	rootCmd.AddCommand(importCmd)
}
