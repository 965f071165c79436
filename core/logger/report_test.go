package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJsonLinesLogRecorder(buf).NewSession()

	session.Record(&SessionStart{Dir: "/"})
	session.Record(&Builtin{Argv: []string{"cd", "/tmp"}})
	session.Record(&Command{Argv: []string{"ls"}})
	session.Record(&Command{Argv: []string{"make", "test"}, ExitCode: 2})
	session.Record(&Command{Argv: []string{"ls", "-l"}})
	session.Record(&Command{Argv: []string{"sleep", "10"}, ExitCode: -1, Signal: "SIGINT"})
	session.Record(&Error{Line: "make test", Message: "make: exit status 2"})
	session.Record(&SessionEnd{Reason: "eof"})
	NewJsonLinesLogRecorder(buf).NewSession().Record(&SessionStart{Dir: "/root"})

	var report Report
	require.NoError(t, ReadJSONLinesLog(buf, report.Update))

	assert.Equal(t, 9, report.LogEntries)
	assert.Equal(t, 2, report.Sessions)
	assert.Equal(t, []CommandCount{{"ls", 2}, {"make", 1}, {"sleep", 1}}, report.Commands)
	assert.Equal(t, []CommandCount{{"cd", 1}}, report.Builtins)
	assert.Equal(t, []CommandCount{{"make", 1}, {"sleep", 1}}, report.Failures)
	assert.Equal(t, []string{"make: exit status 2"}, report.Errors)
}

func TestReadJSONLinesLog_Invalid(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{\"log_entries\": \n"), func(*LogEntry) {})
	assert.Error(t, err)
}
