// logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/flowctx/common"
)

// Log is the global logger instance of FlowLog.
var Log *FlowLog

// FlowLog wraps logrus.Logger for application-specific logging.
type FlowLog struct {
	*logrus.Logger // Embed *logrus.Logger directly for access to all its methods
}

func init() {
	// A console logger is always available; InitGlobalLogger upgrades it
	// with file output when an output path is configured.
	Log = newConsoleLog(false, logrus.InfoLevel)
}

func newConsoleLog(verbose bool, level logrus.Level) *FlowLog {
	l := logrus.New()
	if verbose {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	l.SetOutput(os.Stdout)
	l.SetFormatter(&Formatter{
		TimestampFormat:        "15:04:05",
		NoColors:               false,
		FieldsDisplayWithOrder: defaultFieldsOrder(),
	})
	return &FlowLog{Logger: l}
}

func defaultFieldsOrder() []string {
	return []string{
		common.LogFieldApp, common.LogFieldPipeline, common.LogFieldRun, common.LogFieldStep,
	}
}

// InitGlobalLogger initializes the global Log variable. When outputPath is
// non-empty, log lines are mirrored to a daily-rotated file in that
// directory through an lfshook hook and the default output is discarded.
func InitGlobalLogger(outputPath string, verbose bool, defaultLevel logrus.Level) error {
	l := logrus.New()

	level := defaultLevel
	if verbose {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	if outputPath == "" {
		l.SetOutput(os.Stdout)
		l.SetFormatter(&Formatter{
			TimestampFormat:        "15:04:05",
			NoColors:               false,
			FieldsDisplayWithOrder: defaultFieldsOrder(),
		})
		Log = &FlowLog{Logger: l}
		return nil
	}

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create log output directory %s: %w", outputPath, err)
	}
	logFilePath := filepath.Join(outputPath, "flowctx.log")

	writer, err := rotatelogs.New(
		logFilePath+".%Y%m%d", // Daily rotation
		rotatelogs.WithLinkName(logFilePath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize rotatelogs for %s: %w", logFilePath, err)
	}

	fileFormatter := &Formatter{
		TimestampFormat:        "2006-01-02 15:04:05.000 MST",
		NoColors:               true,
		FieldsDisplayWithOrder: defaultFieldsOrder(),
	}
	l.SetFormatter(fileFormatter)

	logWriters := lfshook.WriterMap{}
	for _, lvl := range logrus.AllLevels {
		if l.IsLevelEnabled(lvl) {
			logWriters[lvl] = writer
		}
	}
	l.Hooks.Add(lfshook.NewHook(logWriters, fileFormatter))
	// File logging goes through the hook; discard the default stream so
	// lines are not written twice.
	l.SetOutput(io.Discard)

	Log = &FlowLog{Logger: l}
	return nil
}

// ForApp returns an entry scoped with the application field.
func (fl *FlowLog) ForApp() *logrus.Entry {
	return fl.WithField(common.LogFieldApp, common.AppName)
}

// ForPipeline returns an entry scoped to a pipeline.
func (fl *FlowLog) ForPipeline(name string) *logrus.Entry {
	return fl.ForApp().WithField(common.LogFieldPipeline, name)
}

// ForStep returns an entry scoped to a step within a pipeline.
func (fl *FlowLog) ForStep(pipelineName, stepName string) *logrus.Entry {
	return fl.ForPipeline(pipelineName).WithField(common.LogFieldStep, stepName)
}
