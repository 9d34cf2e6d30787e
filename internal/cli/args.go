package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ALT-F4-LLC/chatexport/internal/db"
	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/output"
)

// resolveChat parses a CHAT-n or bare numeric argument and loads the chat.
func resolveChat(store *db.Store, arg string) (*model.Chat, error) {
	id, err := model.ParseID(arg)
	if err != nil {
		return nil, cmdErr(err, output.ErrValidation)
	}

	chat, err := store.GetChat(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, cmdErr(fmt.Errorf("chat %s not found", model.FormatID(id)), output.ErrNotFound)
		}
		return nil, cmdErr(fmt.Errorf("loading chat: %w", err), output.ErrGeneral)
	}
	return chat, nil
}

// confirm asks a yes/no question. A user abort counts as "no".
func confirm(title, affirmative string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, cmdErr(fmt.Errorf("interactive form failed: %w", err), output.ErrGeneral)
	}
	return confirmed, nil
}
