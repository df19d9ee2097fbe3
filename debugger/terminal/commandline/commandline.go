// This file is part of Gopher68k.
//
// Gopher68k is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher68k is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher68k.  If not, see <https://www.gnu.org/licenses/>.

package commandline

import (
	"sort"
	"strings"

	"github.com/beevik/prefixtree"
	"github.com/quillon/gopher68k/curated"
)

// Sentinal errors returned by the Find() function.
const (
	UnknownCommand   = "unknown command: %s"
	AmbiguousCommand = "ambiguous command: %s"
)

// Command is a single debugger command. The Template is shown in help
// summaries and describes the arguments the command accepts.
type Command struct {
	Name     string
	Template string
	Help     string
}

// Commands is a list of debugger commands. Lookup is by shortest
// unambiguous prefix.
type Commands struct {
	list []Command
	tree *prefixtree.Tree
}

// Selection is the result of a successful Find(). Args is the
// whitespace-delimited remainder of the input line.
type Selection struct {
	Command *Command
	Args    []string
}

// NewCommands is the preferred method of initialisation for the Commands
// type.
func NewCommands(list []Command) *Commands {
	cmds := &Commands{
		list: list,
		tree: prefixtree.New(),
	}

	sort.Slice(cmds.list, func(i, j int) bool {
		return cmds.list[i].Name < cmds.list[j].Name
	})

	for i := range cmds.list {
		cmds.tree.Add(strings.ToLower(cmds.list[i].Name), &cmds.list[i])
	}

	return cmds
}

// Find looks up the command named by the first field of the input line. A
// shortest unambiguous prefix is enough. Command names are case
// insensitive.
func (cmds *Commands) Find(input string) (Selection, error) {
	flds := strings.Fields(input)
	if len(flds) == 0 {
		return Selection{}, nil
	}

	c, err := cmds.tree.Find(strings.ToLower(flds[0]))
	switch err {
	case prefixtree.ErrPrefixAmbiguous:
		return Selection{}, curated.Errorf(AmbiguousCommand, flds[0])
	case prefixtree.ErrPrefixNotFound:
		return Selection{}, curated.Errorf(UnknownCommand, flds[0])
	}

	return Selection{
		Command: c.(*Command),
		Args:    flds[1:],
	}, nil
}

// Help returns the formatted help text for a single command, or for every
// command if the argument is the empty string.
func (cmds *Commands) Help(cmd string) string {
	s := strings.Builder{}

	if cmd != "" {
		sel, err := cmds.Find(cmd)
		if err != nil || sel.Command == nil {
			return "no help for " + cmd
		}
		s.WriteString(sel.Command.Template)
		s.WriteString("\n  ")
		s.WriteString(sel.Command.Help)
		return s.String()
	}

	for _, c := range cmds.list {
		s.WriteString(c.Template)
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// String implements the Stringer interface, listing every command name.
func (cmds *Commands) String() string {
	names := make([]string, 0, len(cmds.list))
	for _, c := range cmds.list {
		names = append(names, c.Name)
	}
	return strings.Join(names, " ")
}
