package malt

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "A minimal package manager"
	MsgRootLong     = "malt installs command-line formulae and binary casks from taps,\nkeeping every installed version in its own keg under the cellar."
	MsgInfoShort    = "Show descriptor information for the named packages"
	MsgKegsShort    = "Show the installed keg directory for the named packages"
	MsgVersionShort = "Print version information"

	// Status messages
	MsgNoNames       = "No package names given."
	MsgDidYouMean    = "Did you mean: %s?\n"
	MsgKegItem       = "%s: %s\n"
	MsgInfoHeader    = "%s: %s %s\n"
	MsgInfoHomepage  = "  homepage: %s\n"
	MsgInfoPath      = "  from: %s\n"
	MsgBuildFlags    = "build flags: %s\n"
	MsgRequestedSpec = "requested spec: %s\n"
)
