// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

// RedirectMode controls how the file named in a redirect is opened.
type RedirectMode int

const (
	// Read opens an existing file as standard input.
	Read RedirectMode = iota
	// Write creates or truncates a file as standard output.
	Write
	// Append opens a file for appending as standard output, creating it if absent.
	Append
)

// String returns a human readable name for the mode.
func (m RedirectMode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	case Append:
		return "append"
	}

	return "unknown"
}

// Node is one node of the parsed command tree. Every non-leaf node
// exclusively owns its children; the tree has no sharing and no cycles.
type Node interface {
	node()
}

// Command is a leaf: an executable name and its ordered arguments.
// Quote delimiters have been stripped by the parser.
type Command struct {
	Name string
	Args []string
}

// Pipe connects Left's standard output to Right's standard input.
type Pipe struct {
	Left  Node
	Right Node
}

// Redirect wraps a command, overriding one of its standard streams with a
// named file opened under Mode.
type Redirect struct {
	Command Node
	File    string
	Mode    RedirectMode
}

// Background marks a subtree as not to be waited on synchronously.
// The engine currently treats it as advisory; see IsBackground.
type Background struct {
	Command Node
}

func (*Command) node()    {}
func (*Pipe) node()       {}
func (*Redirect) node()   {}
func (*Background) node() {}

// IsBackground reports whether the node is a background wrapper.
func IsBackground(n Node) bool {
	_, ok := n.(*Background)
	return ok
}

// CommandName returns the executable name of the command wrapped by n,
// descending through Redirect and Background wrappers. The second return
// is false for Pipe nodes, which have no single name.
func CommandName(n Node) (string, bool) {
	switch n := n.(type) {
	case *Command:
		return n.Name, true
	case *Redirect:
		return CommandName(n.Command)
	case *Background:
		return CommandName(n.Command)
	}

	return "", false
}

// CommandArgs returns the arguments of the command wrapped by n, descending
// through Redirect and Background wrappers.
func CommandArgs(n Node) ([]string, bool) {
	switch n := n.(type) {
	case *Command:
		return n.Args, true
	case *Redirect:
		return CommandArgs(n.Command)
	case *Background:
		return CommandArgs(n.Command)
	}

	return nil, false
}
