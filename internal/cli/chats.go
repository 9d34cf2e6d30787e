package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/chatexport/internal/db"
	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/output"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

var chatsCmd = &cobra.Command{
	Use:     "chats",
	Aliases: []string{"ls"},
	Short:   "List stored chats",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)

		chats, err := db.ListChats(getDB(cmd))
		if err != nil {
			return cmdErr(fmt.Errorf("listing chats: %w", err), output.ErrGeneral)
		}
		if chats == nil {
			chats = []*model.ChatSummary{}
		}

		if w.QuietMode && !w.JSONMode {
			for _, c := range chats {
				fmt.Fprintln(w.Stdout, model.FormatID(c.ID))
			}
			return nil
		}

		w.Success(chats, render.RenderChatTable(chats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatsCmd)
}
