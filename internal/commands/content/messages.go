package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-folio/internal/content"
)

const checkDirectoryMessageType = "folio.content.check_directory"

// CheckDirectoryCommand loads every document of one content kind and
// reports each one that fails, instead of skipping it as listings do.
type CheckDirectoryCommand struct {
	// Kind selects the repository: "post" or "project".
	Kind string `json:"kind"`
}

// Type implements command.Message.
func (CheckDirectoryCommand) Type() string { return checkDirectoryMessageType }

// Validate ensures a known kind is selected.
func (cmd CheckDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Kind, validation.Required, validation.By(func(value any) error {
			kind, _ := value.(string)
			switch strings.TrimSpace(kind) {
			case content.KindPost, content.KindProject:
				return nil
			}
			return validation.NewError("folio.content.check_directory.kind_unknown", "kind must be post or project")
		})),
	)
}
