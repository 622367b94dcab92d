package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/arloliu/abacus/keypad"
)

// shortcut binds a letter key to a keypad token that has no keyboard character.
type shortcut struct {
	binding key.Binding
	token   keypad.Token
}

type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Angle     key.Binding
	History   key.Binding
	Shortcuts []shortcut
}

func newShortcut(k, help string, kind keypad.Kind, value string) shortcut {
	return shortcut{
		binding: key.NewBinding(key.WithKeys(k), key.WithHelp(k, help)),
		token:   keypad.Token{Kind: kind, Value: value},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Angle:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "angle mode")),
		History: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "history")),
		Shortcuts: []shortcut{
			newShortcut("s", "sin", keypad.Function, "sin"),
			newShortcut("c", "cos", keypad.Function, "cos"),
			newShortcut("t", "tan", keypad.Function, "tan"),
			newShortcut("r", "sqrt", keypad.Function, "sqrt"),
			newShortcut("l", "ln", keypad.Function, "log"),
			newShortcut("g", "log10", keypad.Function, "log10"),
			newShortcut("!", "factorial", keypad.Function, "!"),
			newShortcut("Q", "square", keypad.Function, "^2"),
			newShortcut("p", "pi", keypad.Function, "pi"),
			newShortcut("e", "e", keypad.Function, "e"),
			newShortcut("i", "1/x", keypad.Function, "inverse"),
			newShortcut("n", "negate", keypad.Function, "negate"),
			newShortcut("%", "mod", keypad.Operator, "%"),
			newShortcut("M", "MS", keypad.Special, "MS"),
			newShortcut("R", "MR", keypad.Special, "MR"),
			newShortcut("P", "M+", keypad.Special, "M+"),
			newShortcut("N", "M-", keypad.Special, "M-"),
			newShortcut("C", "MC", keypad.Special, "MC"),
		},
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Angle, k.History, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	rows := [][]key.Binding{k.ShortHelp()}
	const perRow = 6
	for i := 0; i < len(k.Shortcuts); i += perRow {
		var row []key.Binding
		for _, s := range k.Shortcuts[i:min(i+perRow, len(k.Shortcuts))] {
			row = append(row, s.binding)
		}
		rows = append(rows, row)
	}

	return rows
}

// tokenFor resolves a key to a keypad token, letter shortcuts first.
func (k keyMap) tokenFor(msgKey string) (keypad.Token, bool) {
	for _, s := range k.Shortcuts {
		for _, bound := range s.binding.Keys() {
			if bound == msgKey {
				return s.token, true
			}
		}
	}

	return keypad.FromKey(msgKey)
}
