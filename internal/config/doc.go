// Package config holds the typed option registry.
//
// Every option keywarp understands is declared once in the definition
// table with its type and default value. A Registry starts from those
// defaults, accepts overrides from configuration files, and answers the
// two questions the mode loops ask on every event: what is the value of
// an option, and does this key event match that binding.
//
// Values are parsed and validated when they are added, so readers never
// see a malformed value. A full load is validated as a whole (grid
// dimensions, character sets, intervals) and published with one atomic
// swap; a failed reload leaves the previous configuration in place.
//
// The whitelist restricts which binding options may match. Mode loops set
// it on entry and clear it on exit so that bindings never leak between
// modes.
package config
