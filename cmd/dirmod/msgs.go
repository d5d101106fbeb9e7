package dirmod

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate module declarations from a directory listing"
	MsgAllShort        = "Declare every sibling module"
	MsgOSShort         = "Declare one module per target_os"
	MsgFamilyShort     = "Declare one module per target_family"
	MsgFeatureShort    = "Declare one module per feature"
	MsgCfgShort        = "Declare one module per value of any flag"
	MsgListShort       = "List the modules that would be declared"
	MsgSyntaxShort     = "Explain the configuration syntax"
	MsgConfigShort     = "Print the default or effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgVersionFormat = "dirmod version %s\n  commit: %s\n  built:  %s\n"
	MsgEntryFormat   = "%s\t%s\n"
	MsgNoEntries     = "No modules found."

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrReadStdin    = "failed to read configuration from stdin"
	MsgErrReadFile     = "failed to read configuration from %s"
	MsgErrInvoker      = "failed to resolve invoking file %s"
	MsgErrBothSources  = "configuration given both as arguments and with --file"
	MsgErrEncodeConfig = "failed to encode configuration"
	MsgErrNoTopics     = "help topics are unavailable"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default .dirmod.toml or dirmod.toml in the working directory)"
	MsgFlagOutput    = "Output format: text, json, yaml, toml or xml"
	MsgFlagSorted    = "List modules by name instead of directory order"
	MsgFlagStrict    = "Reject repeated default statements"
	MsgFlagFile      = "Read the configuration from a file"
	MsgFlagEffective = "Print the merged configuration instead of the defaults"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/all-long.txt
	msgAllLongRaw string
	MsgAllLong    = strings.TrimSpace(msgAllLongRaw)

	//go:embed msgs/all-example.txt
	msgAllExampleRaw string
	MsgAllExample    = strings.TrimRight(msgAllExampleRaw, "\n")

	//go:embed msgs/conditional-long.txt
	msgConditionalLongRaw string
	MsgConditionalLong    = strings.TrimSpace(msgConditionalLongRaw)

	//go:embed msgs/conditional-example.txt
	msgConditionalExampleRaw string
	MsgConditionalExample    = strings.TrimRight(msgConditionalExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
