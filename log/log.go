// Package log provides logrus formatters and logger constructors for bitcorr.
package log

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CliFormatter writes plain command output. Info and debug entries are the
// bare message; warnings and errors get a level prefix and, when attached,
// the error after the message. Other fields are left out.
type CliFormatter struct{}

func (f *CliFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = &bytes.Buffer{}
	}

	if entry.Level <= logrus.WarnLevel {
		buf.WriteString(entry.Level.String())
		buf.WriteString(": ")
	}
	buf.WriteString(entry.Message)
	if err, ok := entry.Data[logrus.ErrorKey]; ok && entry.Level <= logrus.WarnLevel {
		fmt.Fprintf(buf, ": %v", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DaemonFormatter prints time, level, message and then the fields sorted by key.
type DaemonFormatter struct {
	NoTimestamp bool
}

func (f *DaemonFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf *bytes.Buffer
	if entry.Buffer != nil {
		buf = entry.Buffer
	} else {
		buf = &bytes.Buffer{}
	}

	if !f.NoTimestamp {
		buf.WriteString(entry.Time.Format(time.RFC3339))
		buf.WriteByte(' ')
	}
	buf.WriteString(strings.ToUpper(entry.Level.String()))
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)
	for _, k := range keys {
		fmt.Fprintf(buf, " %s=%v", k, entry.Data[k])
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// New returns a logger writing to w. Verbose loggers use DaemonFormatter
// at debug level; otherwise CliFormatter at info level.
func New(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if verbose {
		logger.SetFormatter(&DaemonFormatter{})
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetFormatter(&CliFormatter{})
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
