package main

import (
	"reflect"
	"strings"
)

// positionalArgs returns the tail of args starting at the first token that is
// neither a flag nor the value consumed by a non-boolean flag. goconfig
// parses its own private FlagSet, so the standard flag.Args() never sees
// these arguments. Flag names mirror goconfig's: lowercased field names of
// the config struct, with only non-bool flags consuming a following value.
func positionalArgs(args []string, config interface{}) []string {

	valueFlags := map[string]bool{}
	t := reflect.TypeOf(config)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() != reflect.Bool {
			valueFlags[strings.ToLower(field.Name)] = true
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args[i+1:]
		}
		if strings.HasPrefix(arg, "-") {
			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") {
				continue
			}
			if valueFlags[strings.ToLower(name)] {
				i++ // the flag's value is the next token
			}
			continue
		}
		return args[i:]
	}

	return nil
}
