package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fulldump/goconfig"

	"github.com/procstash/procstash/configuration"
	"github.com/procstash/procstash/exithook"
	"github.com/procstash/procstash/logger"
	"github.com/procstash/procstash/store"
	"github.com/procstash/procstash/utils"
)

var VERSION = "dev"

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	l := logger.New(os.Stderr, logger.Options{
		Level:   level,
		NoColor: c.NoColor,
	})

	fail := func(format string, args ...any) {
		l.Errorf(format, args...)
		exithook.Run()
		os.Exit(1)
	}

	s, err := store.Open(store.Config{
		Path:     c.File,
		Global:   c.Global,
		Columns:  utils.SplitNonEmpty(c.Columns, ","),
		ListNone: c.ListNone,
		Log:      l,
	})
	if err != nil {
		fail("%s", err.Error())
	}

	if c.Ephemeral {
		exithook.Register("destroy "+s.Path(), func() {
			s.Destroy()
		})
		defer exithook.Run()
	}

	args := positionalArgs(os.Args[1:], c)
	if len(args) == 0 {
		fail("missing command, must be [%s]", strings.Join(utils.GetKeys(commands), "|"))
	}

	command, exist := commands[args[0]]
	if !exist {
		fail("bad command '%s', must be [%s]", args[0], strings.Join(utils.GetKeys(commands), "|"))
	}

	err = command(s, l, args[1:])
	if err != nil {
		fail("%s: %s", args[0], err.Error())
	}
}
