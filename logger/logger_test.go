package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fulldump/biff"
)

func TestLevels(t *testing.T) {
	b := &bytes.Buffer{}
	l := New(b, Options{Level: slog.LevelDebug})

	l.Debugf("debugging %d", 1)
	l.Infof("hello")
	l.Warnf("watch out")
	l.Errorf("broken") // not fail-fast, must return

	output := b.String()
	biff.AssertTrue(strings.Contains(output, "DBG"))
	biff.AssertTrue(strings.Contains(output, "INF"))
	biff.AssertTrue(strings.Contains(output, "WRN"))
	biff.AssertTrue(strings.Contains(output, "ERR"))
	biff.AssertTrue(strings.Contains(output, "debugging 1"))
}

func TestSuccessRendersAsOK(t *testing.T) {
	b := &bytes.Buffer{}
	l := New(b, Options{})

	l.Successf("record %d added", 7)

	biff.AssertTrue(strings.Contains(b.String(), "OK"))
	biff.AssertTrue(strings.Contains(b.String(), "record 7 added"))
}

func TestLevelFilter(t *testing.T) {
	b := &bytes.Buffer{}
	l := New(b, Options{Level: slog.LevelWarn})

	l.Infof("quiet")
	l.Warnf("loud")

	biff.AssertFalse(strings.Contains(b.String(), "quiet"))
	biff.AssertTrue(strings.Contains(b.String(), "loud"))
}

func TestErrorfFailFast(t *testing.T) {
	b := &bytes.Buffer{}
	l := New(b, Options{FailFast: true})

	status := -1
	l.exit = func(code int) { status = code }

	l.Errorf("fatal")
	biff.AssertEqual(status, 1)
}
