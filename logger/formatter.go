package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultFieldSeparator  = " | "
	defaultTimestampFormat = time.RFC3339
)

// Formatter implements logrus.Formatter interface.
type Formatter struct {
	// TimestampFormat specifies the format of the timestamp. Default: time.RFC3339.
	TimestampFormat string
	// NoColors disables colorized output.
	NoColors bool
	// DisableTimestamp disables timestamp output.
	DisableTimestamp bool
	// HideKeys hides field keys, showing only field values.
	HideKeys bool
	// FieldsDisplayWithOrder specifies a list of field keys to display in a
	// specific order. Fields not in this list are appended alphabetically
	// after the ordered fields. If nil or empty, all fields are displayed
	// alphabetically.
	FieldsDisplayWithOrder []string
	// FieldSeparator defines the separator string used between fields. Default: " | ".
	FieldSeparator string
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}

	if !f.DisableTimestamp {
		format := f.TimestampFormat
		if format == "" {
			format = defaultTimestampFormat
		}
		b.WriteString(entry.Time.Format(format))
		b.WriteString(" ")
	}

	level := strings.ToUpper(entry.Level.String())
	if level == "WARNING" {
		level = "WARN"
	}
	if f.NoColors {
		fmt.Fprintf(b, "[%s]", level)
	} else {
		fmt.Fprintf(b, "\x1b[%dm[%s]\x1b[0m", colorFor(entry.Level), level)
	}

	if fields := f.formatFields(entry.Data); fields != "" {
		b.WriteString(" ")
		b.WriteString(fields)
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)
	b.WriteString("\n")
	return b.Bytes(), nil
}

func (f *Formatter) formatFields(data logrus.Fields) string {
	if len(data) == 0 {
		return ""
	}
	separator := f.FieldSeparator
	if separator == "" {
		separator = defaultFieldSeparator
	}

	ordered := make([]string, 0, len(data))
	seen := make(map[string]bool, len(data))
	for _, key := range f.FieldsDisplayWithOrder {
		if _, ok := data[key]; ok {
			ordered = append(ordered, key)
			seen[key] = true
		}
	}
	rest := make([]string, 0, len(data))
	for key := range data {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	parts := make([]string, 0, len(ordered))
	for _, key := range ordered {
		if f.HideKeys {
			parts = append(parts, fmt.Sprintf("[%v]", data[key]))
		} else {
			parts = append(parts, fmt.Sprintf("[%s:%v]", key, data[key]))
		}
	}
	return strings.Join(parts, separator)
}

func colorFor(level logrus.Level) int {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return 37 // gray
	case logrus.WarnLevel:
		return 33 // yellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return 31 // red
	default:
		return 36 // cyan
	}
}
