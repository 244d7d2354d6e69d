package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogEntry represents a parsed log entry
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Category  string                 `json:"category"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// LogReader reads category log files written by MultiLogger
type LogReader struct {
	logsDir string
}

// NewLogReader creates a new log reader
func NewLogReader(logsDir string) *LogReader {
	return &LogReader{
		logsDir: logsDir,
	}
}

// GetLogPath returns the path to a category log file for a specific date
func (lr *LogReader) GetLogPath(category LogCategory, date time.Time) string {
	return categoryLogPath(lr.logsDir, category, date.Format("20060102"))
}

// ListDates returns the dates (YYYYMMDD, newest first) with a file for category
func (lr *LogReader) ListDates(category LogCategory) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(lr.logsDir, fmt.Sprintf("%s-*.log", category)))
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(matches))
	prefix := string(category) + "-"
	for _, m := range matches {
		date := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), prefix), ".log")
		if _, err := time.Parse("20060102", date); err == nil {
			dates = append(dates, date)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// ReadLogs returns the last limit entries of a category log file (all when limit <= 0)
func (lr *LogReader) ReadLogs(category LogCategory, date time.Time, limit int) ([]LogEntry, error) {
	file, err := os.Open(lr.GetLogPath(category, date))
	if err != nil {
		if os.IsNotExist(err) {
			return []LogEntry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	entries := make([]LogEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, parseLine(category, line))
	}
	return entries, nil
}

// ReadTodayLogs reads today's log entries for a category
func (lr *LogReader) ReadTodayLogs(category LogCategory, limit int) ([]LogEntry, error) {
	return lr.ReadLogs(category, time.Now(), limit)
}

// SearchLogs returns the last limit entries whose message, level or field
// values contain query, case-insensitively
func (lr *LogReader) SearchLogs(category LogCategory, date time.Time, query string, limit int) ([]LogEntry, error) {
	entries, err := lr.ReadLogs(category, date, 0)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	filtered := []LogEntry{}
	for _, entry := range entries {
		if entry.matches(query) {
			filtered = append(filtered, entry)
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered, nil
}

func (e LogEntry) matches(query string) bool {
	if strings.Contains(strings.ToLower(e.Message), query) ||
		strings.Contains(strings.ToLower(e.Level), query) {
		return true
	}
	for _, v := range e.Fields {
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), query) {
			return true
		}
	}
	return false
}

// parseLine decodes one JSON line; anything else becomes a plain info entry
func parseLine(category LogCategory, line string) LogEntry {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{Level: "info", Message: line, Category: string(category)}
	}

	entry := LogEntry{Category: string(category), Fields: map[string]interface{}{}}
	for k, v := range raw {
		switch k {
		case "ts":
			entry.Timestamp = fmt.Sprint(v)
		case "level":
			entry.Level = fmt.Sprint(v)
		case "msg":
			entry.Message = fmt.Sprint(v)
		default:
			entry.Fields[k] = v
		}
	}
	if len(entry.Fields) == 0 {
		entry.Fields = nil
	}
	return entry
}
