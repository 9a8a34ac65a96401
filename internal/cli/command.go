package cli

import "strings"

type Command string

const (
	Add  Command = "add"
	Show Command = "show"
	Plan Command = "plan"
	Save Command = "save"
	Exit Command = "exit"
)

// ParseCommand accepts a command in any case, surrounded by any whitespace.
func ParseCommand(input string) (Command, bool) {
	c := Command(strings.ToLower(strings.TrimSpace(input)))
	switch c {
	case Add, Show, Plan, Save, Exit:
		return c, true
	}
	return "", false
}
