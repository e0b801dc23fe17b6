package capture

// Version identifies this capture implementation in diagnostics. It is
// overwritten at build time via -ldflags.
var Version = "0.1.0-dev"
