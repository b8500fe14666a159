package litweave

// VERSION is the current litweave release, surfaced by the CLI.
const VERSION = "0.1.0"
