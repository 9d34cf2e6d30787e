package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/chatexport/internal/db"
	"github.com/ALT-F4-LLC/chatexport/internal/export"
	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/output"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

type showResult struct {
	Chat     *model.Chat      `json:"chat"`
	Messages []*model.Message `json:"messages"`
	Authors  model.Authors    `json:"authors"`
}

var showCmd = &cobra.Command{
	Use:   "show <chat-id>",
	Short: "Print a chat transcript in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)
		conn := getDB(cmd)
		store := db.NewStore(conn)

		chat, err := resolveChat(store, args[0])
		if err != nil {
			return err
		}

		messages, err := db.ListMessages(conn, chat.ID)
		if err != nil {
			return cmdErr(fmt.Errorf("listing messages: %w", err), output.ErrGeneral)
		}
		if messages == nil {
			messages = []*model.Message{}
		}

		authorIDs := make([]int, 0, len(messages))
		for _, m := range messages {
			authorIDs = append(authorIDs, m.FromID)
		}
		authors, _ := export.ResolveAuthors(store, authorIDs, export.ResolveOptions{
			AdjacentDedup: cfg.Settings.AdjacentDedup,
			Logger:        getLogger(cmd),
		})

		selfID := cfg.Settings.SelfID()
		if cmd.Flags().Changed("self") {
			selfID, _ = cmd.Flags().GetInt("self")
		}

		w.Success(showResult{
			Chat:     chat,
			Messages: messages,
			Authors:  authors,
		}, render.RenderTranscript(chat, messages, authors, selfID))
		return nil
	},
}

func init() {
	showCmd.Flags().Int("self", 0, "Contact id of the account owner (default from config)")
	rootCmd.AddCommand(showCmd)
}
