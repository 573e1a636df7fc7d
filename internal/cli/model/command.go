package model

import (
	"errors"
	"fmt"
	"strings"
)

// op is one of the discrete user actions the visualization accepts.
type op int

const (
	opGet op = iota
	opSet
	opDelete
	opClear
	opReset
	opQuit
)

// command is a parsed input line.
type command struct {
	op    op
	key   string
	value string
}

var errEmptyCommand = errors.New("empty command")

// parseCommand parses a command line of the form:
//
//	get <key> | set <key> <value> | del <key> | clear | reset | quit
//
// Values may contain spaces; everything after the key belongs to the value.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, errEmptyCommand
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "get", "g":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: get <key>")
		}
		return command{op: opGet, key: args[0]}, nil

	case "set", "s", "put":
		if len(args) < 2 {
			return command{}, fmt.Errorf("usage: set <key> <value>")
		}
		return command{op: opSet, key: args[0], value: strings.Join(args[1:], " ")}, nil

	case "del", "d", "delete", "rm":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: del <key>")
		}
		return command{op: opDelete, key: args[0]}, nil

	case "clear":
		return command{op: opClear}, nil

	case "reset":
		return command{op: opReset}, nil

	case "quit", "q", "exit":
		return command{op: opQuit}, nil

	default:
		return command{}, fmt.Errorf("unknown command %q", verb)
	}
}
