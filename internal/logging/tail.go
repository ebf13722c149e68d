package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/sqmw/repofolio/internal/config"
)

// Entry is one decoded line of the JSON log. Lines that are not JSON (a
// panic trace, for example) keep only Raw.
type Entry struct {
	Time   string         `json:"time,omitempty"`
	Level  string         `json:"level,omitempty"`
	Msg    string         `json:"msg,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
	Raw    string         `json:"-"`
}

var reservedKeys = []string{"time", "level", "msg", "caller", "stacktrace", "logger"}

func parseEntry(line string) Entry {
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Entry{Raw: line}
	}
	e := Entry{Raw: line}
	e.Time, _ = fields["time"].(string)
	e.Level, _ = fields["level"].(string)
	e.Msg, _ = fields["msg"].(string)
	for _, k := range reservedKeys {
		delete(fields, k)
	}
	if len(fields) > 0 {
		e.Fields = fields
	}
	return e
}

// keep reports whether e passes the minimum level. Undecodable lines always
// pass.
func (e Entry) keep(minLevel zapcore.Level) bool {
	if e.Level == "" {
		return true
	}
	lvl, err := zapcore.ParseLevel(e.Level)
	if err != nil {
		return true
	}
	return lvl >= minLevel
}

// Tail returns the last maxLines entries at or above minLevel from the log at
// path. A non-positive maxLines returns every matching entry; a missing file
// returns none.
func Tail(path string, maxLines int, minLevel zapcore.Level) ([]Entry, error) {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var all []Entry
	var ring []Entry
	idx, count := 0, 0
	if maxLines > 0 {
		ring = make([]Entry, maxLines)
	}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := parseEntry(line)
		if !e.keep(minLevel) {
			continue
		}
		if ring == nil {
			all = append(all, e)
			continue
		}
		ring[idx] = e
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if ring == nil {
		return all, nil
	}

	entries := make([]Entry, count)
	if count == maxLines {
		for i := range count {
			entries[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(entries, ring[:count])
	}
	return entries, nil
}

var levelStyles = map[string]lipgloss.Style{
	"debug": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
	"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
	"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	"error": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
}

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

// Format renders e as "time LEVEL msg key=value ...", fields sorted by key.
func (e Entry) Format() string {
	if e.Level == "" && e.Msg == "" {
		return e.Raw
	}
	level := strings.ToUpper(e.Level)
	if style, ok := levelStyles[strings.ToLower(e.Level)]; ok {
		level = style.Render(level)
	}

	var b strings.Builder
	if e.Time != "" {
		b.WriteString(mutedStyle.Render(e.Time))
		b.WriteByte(' ')
	}
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(e.Msg)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", mutedStyle.Render(k), e.Fields[k])
	}
	return b.String()
}
