package commands

import (
	"embed"
	"strings"
)

// Topics holds the markdown help topics below topics/
//
//go:embed topics/*.md
var Topics embed.FS

// TopicsRoot is the directory of Topics holding the help pages
const TopicsRoot = "topics"

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort   = "The declarative GNU Stow"
	MsgDeleteShort = "Delete the symlinks listed in the manifest"
	MsgEditShort   = "Edit the manifest in your editor"
	MsgConfigShort = "Print the effective settings as TOML"

	// Status messages
	MsgOperationsFormat = "%d operations were performed."
	MsgUnknownArgument  = "Unknown argument: %s"

	// Version output
	MsgVersionTemplate = "neostow {{.Version}}\n"

	// Flag descriptions
	MsgFlagOverwrite = "Overwrite existing symlinks"
	MsgFlagForce     = "Skip prompt dialogs"
	MsgFlagVerbose   = "Enable verbosity"
	MsgFlagDebug     = "Print debug information"
	MsgFlagDry       = "Describe potential operations"
	MsgFlagFile      = "Load an alternative neostow file"
	MsgFlagColor     = "Colorize output (auto, always, never)"
	MsgFlagVersion   = "Displays program version"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimSpace(msgRootExampleRaw)

	//go:embed msgs/delete-long.txt
	msgDeleteLongRaw string
	MsgDeleteLong    = strings.TrimSpace(msgDeleteLongRaw)

	//go:embed msgs/edit-long.txt
	msgEditLongRaw string
	MsgEditLong    = strings.TrimSpace(msgEditLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)
)
