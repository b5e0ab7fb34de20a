package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/flowctx/common"
)

func TestFormatter_OrderedFields(t *testing.T) {
	f := &Formatter{
		NoColors:               true,
		DisableTimestamp:       true,
		FieldsDisplayWithOrder: []string{common.LogFieldPipeline, common.LogFieldStep},
	}

	entry := &logrus.Entry{
		Logger: logrus.New(),
		Time:   time.Now(),
		Level:  logrus.InfoLevel,
		Data: logrus.Fields{
			common.LogFieldStep:     "charge",
			"zzz":                   "last",
			common.LogFieldPipeline: "checkout",
		},
		Message: "hello",
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	line := string(out)

	assert.Equal(t, "[INFO] [pipeline:checkout] | [step:charge] | [zzz:last] hello\n", line)
}

func TestFormatter_WarnLevelShortened(t *testing.T) {
	f := &Formatter{NoColors: true, DisableTimestamp: true}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.WarnLevel,
		Data:    logrus.Fields{},
		Message: "careful",
	}
	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[WARN] careful\n", string(out))
}

func TestInitGlobalLogger_ConsoleAndFile(t *testing.T) {
	require.NoError(t, InitGlobalLogger("", true, logrus.InfoLevel))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	dir := t.TempDir()
	require.NoError(t, InitGlobalLogger(dir, false, logrus.InfoLevel))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	Log.ForApp().Info("file sink smoke test")
}

func TestFlowLog_ScopedEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitGlobalLogger("", false, logrus.InfoLevel))
	Log.SetOutput(&buf)
	Log.SetFormatter(&Formatter{
		NoColors:               true,
		DisableTimestamp:       true,
		FieldsDisplayWithOrder: defaultFieldsOrder(),
	})

	Log.ForStep("checkout", "charge").Info("charging")
	line := buf.String()

	assert.True(t, strings.HasPrefix(line, "[INFO] [app:flowctx] | [pipeline:checkout] | [step:charge]"), line)
	assert.Contains(t, line, "charging")
}
