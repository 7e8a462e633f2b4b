package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Cli dispatches "c4data <command> -name value ..." to registered handlers.
type Cli struct {
	command  string
	params   map[string]string
	handlers map[string]func() error
}

func NewCli() *Cli {
	return parseCli(os.Args[1:])
}

func parseCli(args []string) *Cli {
	var cli = &Cli{
		params:   make(map[string]string),
		handlers: make(map[string]func() error),
	}
	for i := 0; i < len(args); i++ {
		if name, isParam := strings.CutPrefix(args[i], "-"); isParam {
			if i+1 < len(args) {
				cli.params[name] = args[i+1]
				i++
			}
			continue
		}
		if cli.command == "" {
			cli.command = args[i]
		}
	}
	return cli
}

func (cli *Cli) Command() string {
	return cli.command
}

func (cli *Cli) StringParam(name, defaultVal string) string {
	return param(cli, name, defaultVal, func(s string) (string, error) { return s, nil })
}

func (cli *Cli) IntParam(name string, defaultVal int) int {
	return param(cli, name, defaultVal, strconv.Atoi)
}

func (cli *Cli) BoolParam(name string, defaultVal bool) bool {
	return param(cli, name, defaultVal, strconv.ParseBool)
}

// param falls back to defaultVal when the value is missing or does not parse.
func param[T any](cli *Cli, name string, defaultVal T, parse func(string) (T, error)) T {
	var raw, found = cli.params[name]
	if !found {
		return defaultVal
	}
	var v, err = parse(raw)
	if err != nil {
		return defaultVal
	}
	return v
}

func (cli *Cli) AddCommand(name string, handler func() error) {
	cli.handlers[name] = handler
}

func (cli *Cli) Execute() error {
	handler, found := cli.handlers[cli.command]
	if !found {
		var names []string
		for name := range cli.handlers {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("command not found %q, expected one of %v", cli.command, names)
	}
	return handler()
}
