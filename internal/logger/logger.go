package logger

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Structured JSON logging to stdout, one object per line.

type Fields map[string]interface{}

func Info(message string, fields Fields) {
	logJSON("info", message, fields)
}

func Warn(message string, fields Fields) {
	logJSON("warn", message, fields)
}

func Error(message string, fields Fields) {
	logJSON("error", message, fields)
}

func Fatal(message string, fields Fields) {
	logJSON("fatal", message, fields)
	os.Exit(1)
}

func logJSON(level string, message string, fields Fields) {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"message":   message,
		"service":   "checkout",
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	log.Println(string(b))
}
