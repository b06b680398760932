package key

// Keymap resolves key names to codes and back.
type Keymap interface {
	// LookupCode returns the code for a key name. shifted reports whether
	// the name is only reachable with Shift held ("X", "$"). ok is false
	// for unknown names.
	LookupCode(name string) (code Code, shifted bool, ok bool)

	// LookupName returns the name of code, using the shifted variant when
	// shifted is set and one exists.
	LookupName(code Code, shifted bool) (string, bool)
}

type keyNames struct {
	base    string
	shifted string
}

// TableKeymap is a static keymap built from a code table.
type TableKeymap struct {
	names  map[Code]keyNames
	codes  map[string]Code
	shifts map[string]bool
}

// NewTableKeymap builds a keymap from base names and their shifted
// counterparts. Codes are assigned in order starting at 1. An empty shifted
// name means the key has no distinct shifted form.
func NewTableKeymap(table [][2]string) *TableKeymap {
	km := &TableKeymap{
		names:  make(map[Code]keyNames, len(table)),
		codes:  make(map[string]Code, len(table)*2),
		shifts: make(map[string]bool, len(table)),
	}
	for i, row := range table {
		code := Code(i + 1)
		km.names[code] = keyNames{base: row[0], shifted: row[1]}
		km.codes[row[0]] = code
		if row[1] != "" {
			km.codes[row[1]] = code
			km.shifts[row[1]] = true
		}
	}
	return km
}

// LookupCode implements Keymap.
func (km *TableKeymap) LookupCode(name string) (Code, bool, bool) {
	code, ok := km.codes[name]
	if !ok {
		return 0, false, false
	}
	return code, km.shifts[name], true
}

// LookupName implements Keymap.
func (km *TableKeymap) LookupName(code Code, shifted bool) (string, bool) {
	n, ok := km.names[code]
	if !ok {
		return "", false
	}
	if shifted && n.shifted != "" {
		return n.shifted, true
	}
	return n.base, true
}

// Names returns every name known to the keymap, base names first for each
// code, in code order.
func (km *TableKeymap) Names() []string {
	out := make([]string, 0, len(km.codes))
	for code := Code(1); int(code) <= len(km.names); code++ {
		n := km.names[code]
		out = append(out, n.base)
		if n.shifted != "" {
			out = append(out, n.shifted)
		}
	}
	return out
}

// usLayout is a US keyboard: base name and shifted name per physical key.
var usLayout = [][2]string{
	{"esc", ""}, {"backspace", ""}, {"tab", ""}, {"enter", ""}, {"space", ""},
	{"insert", ""}, {"delete", ""}, {"home", ""}, {"end", ""},
	{"pageup", ""}, {"pagedown", ""},
	{"up", ""}, {"down", ""}, {"left", ""}, {"right", ""},
	{"f1", ""}, {"f2", ""}, {"f3", ""}, {"f4", ""}, {"f5", ""}, {"f6", ""},
	{"f7", ""}, {"f8", ""}, {"f9", ""}, {"f10", ""}, {"f11", ""}, {"f12", ""},
	{"a", "A"}, {"b", "B"}, {"c", "C"}, {"d", "D"}, {"e", "E"}, {"f", "F"},
	{"g", "G"}, {"h", "H"}, {"i", "I"}, {"j", "J"}, {"k", "K"}, {"l", "L"},
	{"m", "M"}, {"n", "N"}, {"o", "O"}, {"p", "P"}, {"q", "Q"}, {"r", "R"},
	{"s", "S"}, {"t", "T"}, {"u", "U"}, {"v", "V"}, {"w", "W"}, {"x", "X"},
	{"y", "Y"}, {"z", "Z"},
	{"1", "!"}, {"2", "@"}, {"3", "#"}, {"4", "$"}, {"5", "%"},
	{"6", "^"}, {"7", "&"}, {"8", "*"}, {"9", "("}, {"0", ")"},
	{"-", "_"}, {"=", "+"}, {"[", "{"}, {"]", "}"}, {"\\", "|"},
	{";", ":"}, {"'", "\""}, {"`", "~"}, {",", "<"}, {".", ">"}, {"/", "?"},
}

// USKeymap returns a keymap for a US keyboard layout.
func USKeymap() *TableKeymap {
	return NewTableKeymap(usLayout)
}
