package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ConsoleLoggerOptions 控制台日志选项
type ConsoleLoggerOptions struct {
	IncludeTimestamp bool
	TimestampFormat  string
	MinimumLevel     LogLevel
	Output           io.Writer
}

// consoleLogger 文本格式控制台日志实现
type consoleLogger struct {
	options  ConsoleLoggerOptions
	category string

	mu *sync.Mutex
}

// NewConsoleLogger 创建控制台 Logger
func NewConsoleLogger(options ConsoleLoggerOptions) Logger {
	if options.Output == nil {
		options.Output = os.Stdout
	}
	if options.TimestampFormat == "" {
		options.TimestampFormat = "2006-01-02 15:04:05"
	}
	return &consoleLogger{
		options: options,
		mu:      &sync.Mutex{},
	}
}

// NewLogger 创建一个默认的控制台 Logger
func NewLogger() Logger {
	return NewConsoleLogger(ConsoleLoggerOptions{
		IncludeTimestamp: true,
		MinimumLevel:     LogLevelInfo,
	})
}

func (l *consoleLogger) Debug(msg string, fields ...Field) {
	l.Log(LogLevelDebug, msg, fields...)
}

func (l *consoleLogger) Info(msg string, fields ...Field) {
	l.Log(LogLevelInfo, msg, fields...)
}

func (l *consoleLogger) Warn(msg string, fields ...Field) {
	l.Log(LogLevelWarn, msg, fields...)
}

func (l *consoleLogger) Error(msg string, fields ...Field) {
	l.Log(LogLevelError, msg, fields...)
}

func (l *consoleLogger) Log(level LogLevel, msg string, fields ...Field) {
	if level < l.options.MinimumLevel {
		return
	}

	var buffer bytes.Buffer
	if l.options.IncludeTimestamp {
		buffer.WriteString(time.Now().Format(l.options.TimestampFormat))
		buffer.WriteByte(' ')
	}
	buffer.WriteString(level.String())
	if l.category != "" {
		buffer.WriteString(" [")
		buffer.WriteString(l.category)
		buffer.WriteString("]")
	}
	buffer.WriteByte(' ')
	buffer.WriteString(msg)

	if len(fields) > 0 {
		buffer.WriteString(" {")
		for i, field := range fields {
			if i > 0 {
				buffer.WriteString(", ")
			}
			buffer.WriteString(field.Key)
			buffer.WriteByte('=')
			fmt.Fprintf(&buffer, "%v", field.Value)
		}
		buffer.WriteString("}")
	}
	buffer.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	l.options.Output.Write(buffer.Bytes())
}

func (l *consoleLogger) WithCategory(category string) Logger {
	return &consoleLogger{
		options:  l.options,
		category: category,
		mu:       l.mu,
	}
}
