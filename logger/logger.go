package logger

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	mu      sync.Mutex
	once    sync.Once
	logger  *log.Logger
	_logger *log.Logger
)

// prefix
const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
	FATAL = "FATAL"
)

const logFileName = "plistLog.txt"

// Setup points the file logger at dir. An empty dir means ~/.plist/debug.
// Must be called before the first log line to take effect.
func Setup(dir string) {
	once.Do(func() { open(dir) })
}

func open(dir string) {
	flags := log.LstdFlags | log.Lshortfile | log.LUTC
	_logger = log.New(os.Stdout, "", flags)
	logger = log.New(io.Discard, "", flags)

	if dir == "" {
		home, err := homedir.Dir()
		if err != nil {
			_logger.Println("[WARN] no home dir, logging to stdout only:", err)
			return
		}
		dir = filepath.Join(home, ".plist", "debug")
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		_logger.Println("[WARN] logging to stdout only:", err)
		return
	}
	logFile, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0766)
	if err != nil {
		_logger.Println("[WARN] logging to stdout only:", err)
		return
	}
	logger = log.New(logFile, "", flags)
}

func Debug(v ...any) {
	_log(DEBUG, v)
}
func Error(v ...any) {
	_log(ERROR, v)
}
func Info(v ...any) {
	_log(INFO, v)
}
func Warn(v ...any) {
	_log(WARN, v)
}

// Fatal logs and exits the process.
func Fatal(v ...any) {
	_log(FATAL, v)
	os.Exit(1)
}
func _log(prefix string, v []any) {
	Setup("")
	mu.Lock()
	defer mu.Unlock()
	setPrefix(prefix)
	logger.Println(v...)
	_logger.Println(v...)
}
func setPrefix(logType string) {
	_, file, line, ok := runtime.Caller(3)
	var logPrefix string
	if ok {
		logPrefix = fmt.Sprintf("[%s][%s:%d]", logType, filepath.Base(file), line)
	} else {
		logPrefix = fmt.Sprintf("[%s]", logType)
	}
	logger.SetPrefix(logPrefix)
	_logger.SetPrefix(logPrefix)
}
