package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger provides human readable console output. Colors
// are enabled when the output is a terminal.
type ConsoleLogger struct {
	mu      *sync.Mutex
	output  io.Writer
	au      *aurora.Aurora
	verbose bool
	fields  map[string]any
}

// NewConsoleLogger creates a console logger writing to stdout.
// When verbose is true, debug messages are emitted.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stdout, verbose, isTerminal(os.Stdout))
}

// NewConsoleLoggerTo creates a console logger writing to w with
// colors forced on or off.
func NewConsoleLoggerTo(
	w io.Writer, verbose, colors bool,
) *ConsoleLogger {
	return &ConsoleLogger{
		mu:      &sync.Mutex{},
		output:  w,
		au:      aurora.New(aurora.WithColors(colors)),
		verbose: verbose,
		fields:  make(map[string]any),
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *ConsoleLogger) log(
	level LogLevel, msg string, fields ...Field,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := time.Now().Format("15:04:05")

	parts := make([]string, 0, len(c.fields)+len(fields))
	for k, v := range c.fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}

	var fieldStr string
	if len(parts) > 0 {
		fieldStr = " " + c.au.Faint(
			"{"+strings.Join(parts, ", ")+"}",
		).String()
	}

	fmt.Fprintf(
		c.output, "%s [%s] %s%s\n",
		c.au.Faint(ts).String(),
		c.levelLabel(level),
		msg, fieldStr,
	)
}

func (c *ConsoleLogger) levelLabel(level LogLevel) string {
	label := fmt.Sprintf("%-5s", level.String())
	switch level {
	case LevelDebug:
		return c.au.Faint(label).String()
	case LevelWarn:
		return c.au.Yellow(label).String()
	case LevelError:
		return c.au.Red(label).String()
	default:
		return c.au.Blue(label).String()
	}
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, msg, fields...)
}

// Debug logs a debug message only if verbose is enabled.
func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	if c.verbose {
		c.log(LevelDebug, msg, fields...)
	}
}

// WithFields returns a new Logger with additional default
// fields. The derived logger shares the output and its lock.
func (c *ConsoleLogger) WithFields(
	fields ...Field,
) Logger {
	newFields := make(map[string]any)
	for k, v := range c.fields {
		newFields[k] = v
	}
	for _, f := range fields {
		newFields[f.Key] = f.Value
	}
	return &ConsoleLogger{
		mu:      c.mu,
		output:  c.output,
		au:      c.au,
		verbose: c.verbose,
		fields:  newFields,
	}
}

// LogCheck prints a one-line summary of a check. Passing checks
// are only shown in verbose mode.
func (c *ConsoleLogger) LogCheck(record CheckRecord) {
	if record.Passed && !c.verbose {
		return
	}

	mark := c.au.Green("PASS").String()
	if !record.Passed {
		mark = c.au.Red("FAIL").String()
	}

	fields := []Field{
		StringField("outcome", record.Outcome),
		DurationField("duration_ms", time.Duration(record.DurationUs)*time.Microsecond),
	}
	if record.Suite != "" {
		fields = append(fields, StringField("suite", record.Suite))
	}
	c.Info(mark+" "+record.Call(), fields...)
}

// Close is a no-op for ConsoleLogger.
func (c *ConsoleLogger) Close() error {
	return nil
}
