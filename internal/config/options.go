package config

// Option names a configuration option.
type Option string

// Type is the value type of an option.
type Type int

const (
	// TypeInt is a signed integer.
	TypeInt Type = iota + 1

	// TypeString is free-form text.
	TypeString

	// TypeKey is a space separated list of key bindings that must match
	// with exact modifiers.
	TypeKey

	// TypeButton is a list of key bindings that select a mouse button by
	// position. Extra modifiers are tolerated.
	TypeButton
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeKey:
		return "key"
	case TypeButton:
		return "button"
	default:
		return "unknown"
	}
}

// IsBinding reports whether values of t are key bindings.
func (t Type) IsBinding() bool {
	return t == TypeKey || t == TypeButton
}

// Definition declares an option.
type Definition struct {
	Name        Option
	Type        Type
	Default     string
	Description string
}

// Daemon activation keys.
const (
	ActivationKey        Option = "activation_key"
	HintActivationKey    Option = "hint_activation_key"
	Hint2ActivationKey   Option = "hint2_activation_key"
	GridActivationKey    Option = "grid_activation_key"
	HistoryActivationKey Option = "history_activation_key"
	ScreenActivationKey  Option = "screen_activation_key"
	HintOneshotKey       Option = "hint_oneshot_key"
	Hint2OneshotKey      Option = "hint2_oneshot_key"
)

// Normal mode bindings.
const (
	Exit           Option = "exit"
	Drag           Option = "drag"
	CopyAndExit    Option = "copy_and_exit"
	Accelerator    Option = "accelerator"
	Decelerator    Option = "decelerator"
	Buttons        Option = "buttons"
	OneshotButtons Option = "oneshot_buttons"
	Print          Option = "print"
	History        Option = "history"
	Hint           Option = "hint"
	Hint2          Option = "hint2"
	Grid           Option = "grid"
	Screen         Option = "screen"
	Left           Option = "left"
	Down           Option = "down"
	Up             Option = "up"
	Right          Option = "right"
	Top            Option = "top"
	Middle         Option = "middle"
	Bottom         Option = "bottom"
	Start          Option = "start"
	End            Option = "end"
	ScrollDown     Option = "scroll_down"
	ScrollUp       Option = "scroll_up"
	HistBack       Option = "hist_back"
	HistForward    Option = "hist_forward"
)

// Grid mode bindings.
const (
	GridUp       Option = "grid_up"
	GridLeft     Option = "grid_left"
	GridDown     Option = "grid_down"
	GridRight    Option = "grid_right"
	GridCutUp    Option = "grid_cut_up"
	GridCutLeft  Option = "grid_cut_left"
	GridCutDown  Option = "grid_cut_down"
	GridCutRight Option = "grid_cut_right"
	GridKeys     Option = "grid_keys"
	GridExit     Option = "grid_exit"
)

// Hint mode bindings.
const (
	HintExit    Option = "hint_exit"
	HintUndo    Option = "hint_undo"
	HintUndoAll Option = "hint_undo_all"
)

// Non-binding options.
const (
	DragButton              Option = "drag_button"
	CursorColor             Option = "cursor_color"
	CursorSize              Option = "cursor_size"
	RepeatInterval          Option = "repeat_interval"
	Speed                   Option = "speed"
	MaxSpeed                Option = "max_speed"
	DeceleratorSpeed        Option = "decelerator_speed"
	Acceleration            Option = "acceleration"
	AcceleratorAcceleration Option = "accelerator_acceleration"
	JumpIncrement           Option = "jump_increment"
	OneshotTimeout          Option = "oneshot_timeout"
	HistHintSize            Option = "hist_hint_size"
	GridNR                  Option = "grid_nr"
	GridNC                  Option = "grid_nc"
	GridSize                Option = "grid_size"
	GridBorderSize          Option = "grid_border_size"
	GridColor               Option = "grid_color"
	GridBorderColor         Option = "grid_border_color"
	HintBgColor             Option = "hint_bgcolor"
	HintFgColor             Option = "hint_fgcolor"
	HintChars               Option = "hint_chars"
	HintFont                Option = "hint_font"
	HintSize                Option = "hint_size"
	HintBorderRadius        Option = "hint_border_radius"
	Hint2Chars              Option = "hint2_chars"
	Hint2Size               Option = "hint2_size"
	Hint2GapSize            Option = "hint2_gap_size"
	Hint2GridSize           Option = "hint2_grid_size"
	ScreenChars             Option = "screen_chars"
	ScrollSpeed             Option = "scroll_speed"
	ScrollMaxSpeed          Option = "scroll_max_speed"
	ScrollAcceleration      Option = "scroll_acceleration"
	ScrollDeceleration      Option = "scroll_deceleration"
	Indicator               Option = "indicator"
	IndicatorColor          Option = "indicator_color"
	IndicatorSize           Option = "indicator_size"
	NormalSystemCursor      Option = "normal_system_cursor"
	NormalBlinkInterval     Option = "normal_blink_interval"
)

// ActivationKeys lists the options the daemon listens for while idle.
var ActivationKeys = []Option{
	ActivationKey,
	HintActivationKey,
	Hint2ActivationKey,
	GridActivationKey,
	HistoryActivationKey,
	ScreenActivationKey,
	HintOneshotKey,
	Hint2OneshotKey,
}

var definitions = []Definition{
	{HintActivationKey, TypeKey, "A-M-x", "Activates hint mode."},
	{Hint2ActivationKey, TypeKey, "A-M-X", "Activates two pass hint mode."},
	{GridActivationKey, TypeKey, "A-M-g", "Activates grid mode."},
	{HistoryActivationKey, TypeKey, "A-M-h", "Activates history hint mode."},
	{ScreenActivationKey, TypeKey, "A-M-s", "Activates (s)creen selection mode."},
	{ActivationKey, TypeKey, "A-M-c", "Activates normal movement mode (manual (c)ursor movement)."},
	{HintOneshotKey, TypeKey, "A-M-l", "Activates hint mode and exits upon selection."},
	{Hint2OneshotKey, TypeKey, "A-M-L", "Activates two pass hint mode and exits upon selection."},

	{Exit, TypeKey, "esc", "Exits the active session."},
	{Drag, TypeKey, "v", "Toggles drag mode (mnemonic: (v)isual mode)."},
	{CopyAndExit, TypeKey, "c", "Copies the selection and exits (useful after a drag)."},
	{Accelerator, TypeKey, "a", "Increases the acceleration of the pointer while held."},
	{Decelerator, TypeKey, "d", "Decreases the speed of the pointer while held."},
	{Buttons, TypeButton, "m , .", "Mouse buttons, by position (the second is middle click)."},
	{DragButton, TypeInt, "1", "The mouse button used for dragging."},
	{OneshotButtons, TypeButton, "n - /", "Oneshot mouse buttons (the session ends after the click)."},
	{Print, TypeKey, "p", "Prints the pointer coordinates to stdout (useful for scripts)."},
	{History, TypeKey, ";", "Activates history hint mode from normal mode."},
	{Hint, TypeKey, "x", "Activates hint mode from normal mode."},
	{Hint2, TypeKey, "X", "Activates two pass hint mode from normal mode."},
	{Grid, TypeKey, "g", "Activates grid mode from normal mode."},
	{Screen, TypeKey, "s", "Activates screen selection from normal mode."},
	{Left, TypeKey, "h", "Moves the pointer left."},
	{Down, TypeKey, "j", "Moves the pointer down."},
	{Up, TypeKey, "k", "Moves the pointer up."},
	{Right, TypeKey, "l", "Moves the pointer right."},
	{Top, TypeKey, "H", "Moves the pointer to the top of the screen."},
	{Middle, TypeKey, "M", "Moves the pointer to the middle of the screen."},
	{Bottom, TypeKey, "L", "Moves the pointer to the bottom of the screen."},
	{Start, TypeKey, "0", "Moves the pointer to the left edge of the screen."},
	{End, TypeKey, "$", "Moves the pointer to the right edge of the screen."},
	{ScrollDown, TypeKey, "e", "Scrolls down while held."},
	{ScrollUp, TypeKey, "r", "Scrolls up while held."},
	{CursorColor, TypeString, "#FF4500", "The color of the normal mode pointer."},
	{CursorSize, TypeInt, "7", "The height of the normal mode pointer (at 1080 screen lines)."},
	{RepeatInterval, TypeInt, "20", "Milliseconds before a movement event repeats."},
	{Speed, TypeInt, "220", "Pointer speed in pixels/second."},
	{MaxSpeed, TypeInt, "1600", "Maximum pointer speed in pixels/second."},
	{DeceleratorSpeed, TypeInt, "50", "Pointer speed while the decelerator is held."},
	{Acceleration, TypeInt, "700", "Pointer acceleration in pixels/second^2."},
	{AcceleratorAcceleration, TypeInt, "2900", "Pointer acceleration while the accelerator is held."},
	{JumpIncrement, TypeInt, "15", "Pixels per unit of a numeric prefix jump (5l moves 5 increments right)."},
	{OneshotTimeout, TypeInt, "300", "Milliseconds to wait for a repeated click after a oneshot button."},
	{HistHintSize, TypeInt, "2", "History hint size as a percentage of screen height."},
	{GridNR, TypeInt, "2", "The number of rows in the grid."},
	{GridNC, TypeInt, "2", "The number of columns in the grid."},
	{HistBack, TypeKey, "C-o", "Moves to the previous position in the history stack."},
	{HistForward, TypeKey, "C-i", "Moves to the next position in the history stack."},
	{GridUp, TypeKey, "w", "Moves the grid up."},
	{GridLeft, TypeKey, "a", "Moves the grid left."},
	{GridDown, TypeKey, "s", "Moves the grid down."},
	{GridRight, TypeKey, "d", "Moves the grid right."},
	{GridCutUp, TypeKey, "W", "Keeps the upper half of the grid."},
	{GridCutLeft, TypeKey, "A", "Keeps the left half of the grid."},
	{GridCutDown, TypeKey, "S", "Keeps the lower half of the grid."},
	{GridCutRight, TypeKey, "D", "Keeps the right half of the grid."},
	{GridKeys, TypeKey, "u i j k", "Cell selection keys, ordered row by row."},
	{GridExit, TypeKey, "c", "Exits grid mode and returns to normal mode."},
	{GridSize, TypeInt, "4", "The thickness of grid lines in pixels."},
	{GridBorderSize, TypeInt, "0", "The thickness of the grid border in pixels."},
	{GridColor, TypeString, "#1c1c1e", "The color of the grid."},
	{GridBorderColor, TypeString, "#ffffff", "The color of the grid border."},
	{HintBgColor, TypeString, "#1c1c1e", "The hint background color."},
	{HintFgColor, TypeString, "#a1aba7", "The hint foreground color."},
	{HintChars, TypeString, "abcdefghijklmnopqrstuvwxyz", "Characters hints are generated from. The number of hints is the square of its length."},
	{HintFont, TypeString, "Arial", "The font used by hints (platform specific name)."},
	{HintSize, TypeInt, "20", "Hint size in thousandths of the screen (1-1000)."},
	{HintBorderRadius, TypeInt, "3", "Hint border radius."},
	{HintExit, TypeKey, "esc", "Exits hint mode."},
	{HintUndo, TypeKey, "backspace", "Undoes the last typed hint character."},
	{HintUndoAll, TypeKey, "C-u", "Clears all typed hint characters."},
	{Hint2Chars, TypeString, "hjkl;asdfgqwertyuiopzxcvb", "Characters for the second hint pass; needs at least hint2_grid_size^2 of them."},
	{Hint2Size, TypeInt, "20", "Size of second pass hints in thousandths of the screen height (1-1000)."},
	{Hint2GapSize, TypeInt, "1", "Gap between second pass hints in thousandths of the screen height (0-1000)."},
	{Hint2GridSize, TypeInt, "3", "Rows and columns of the second pass grid."},
	{ScreenChars, TypeString, "jkl;asdfg", "Characters used for screen selection."},
	{ScrollSpeed, TypeInt, "300", "Initial scroll speed in units/second."},
	{ScrollMaxSpeed, TypeInt, "9000", "Maximum scroll speed."},
	{ScrollAcceleration, TypeInt, "1600", "Scroll acceleration in units/second^2."},
	{ScrollDeceleration, TypeInt, "-3400", "Scroll deceleration in units/second^2."},
	{Indicator, TypeString, "none", "Normal mode indicator position: topright, topleft, bottomright, bottomleft or none."},
	{IndicatorColor, TypeString, "#00ff00", "The color of the normal mode indicator."},
	{IndicatorSize, TypeInt, "12", "The size of the normal mode indicator in pixels."},
	{NormalSystemCursor, TypeInt, "0", "If non-zero, show the system cursor instead of the drawn one."},
	{NormalBlinkInterval, TypeString, "0", "Blink interval of the normal mode cursor in milliseconds, \"on\" or \"on off\"; 0 disables blinking."},
}

var definitionIndex = func() map[Option]*Definition {
	m := make(map[Option]*Definition, len(definitions))
	for i := range definitions {
		m[definitions[i].Name] = &definitions[i]
	}
	return m
}()

// Definitions returns every option definition in declaration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition for name.
func Lookup(name string) (Definition, bool) {
	d, ok := definitionIndex[Option(name)]
	if !ok {
		return Definition{}, false
	}
	return *d, true
}
