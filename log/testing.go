package log

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// testingAdaptor forwards each formatted entry to t.Log.
type testingAdaptor struct {
	t testing.TB
}

var _ io.Writer = testingAdaptor{}

func (a testingAdaptor) Write(p []byte) (n int, err error) {
	a.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// NewTestLogger returns a debug level logger that prints to the go test.
func NewTestLogger(t testing.TB) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(testingAdaptor{t: t})
	logger.SetFormatter(&DaemonFormatter{NoTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger
}
