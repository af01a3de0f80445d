package types

// Mode selects how every manifest entry of a run is reconciled
type Mode string

const (
	// ModeCreate creates missing symlinks and never removes existing content
	ModeCreate Mode = "create"

	// ModeOverwrite replaces whatever occupies the destination with a symlink
	ModeOverwrite Mode = "overwrite"

	// ModeDelete removes destinations
	ModeDelete Mode = "delete"
)

// Verb returns the past-tense summary used when an entry was reconciled
func (m Mode) Verb() string {
	switch m {
	case ModeOverwrite:
		return "Overwritten symlink"
	case ModeDelete:
		return "Deleted symlink"
	default:
		return "Created symlink"
	}
}
