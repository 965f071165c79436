package logger

import (
	"encoding/json"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// CommandCount is the number of times a command was seen.
type CommandCount struct {
	Command string `json:"command"`
	Count   int    `json:"count"`
}

// Report summarizes an event log.
type Report struct {
	LogEntries int `json:"log_entries"`
	Sessions   int `json:"sessions"`

	Commands []CommandCount `json:"commands"`
	Builtins []CommandCount `json:"builtins"`
	Failures []CommandCount `json:"failures"`
	Errors   []string       `json:"errors"`

	commands map[string]int
	builtins map[string]int
	failures map[string]int
}

func increment(m *map[string]int, key string) {
	if *m == nil {
		*m = make(map[string]int)
	}
	(*m)[key]++
}

// Update adds an entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch {
	case le.SessionStart != nil:
		r.Sessions++
	case le.Command != nil && len(le.Command.Argv) > 0:
		name := le.Command.Argv[0]
		increment(&r.commands, name)
		if le.Command.ExitCode != 0 || le.Command.Signal != "" {
			increment(&r.failures, name)
		}
	case le.Builtin != nil && len(le.Builtin.Argv) > 0:
		increment(&r.builtins, le.Builtin.Argv[0])
	case le.Error != nil:
		r.Errors = append(r.Errors, le.Error.Message)
	}

	r.Commands = sortedCounts(r.commands)
	r.Builtins = sortedCounts(r.builtins)
	r.Failures = sortedCounts(r.failures)
}

// sortedCounts orders by count, most frequent first, then by name.
func sortedCounts(m map[string]int) []CommandCount {
	var out []CommandCount
	for k, v := range m {
		out = append(out, CommandCount{Command: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Command < out[j].Command
	})
	return out
}
