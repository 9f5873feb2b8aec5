// Command previewd runs the WebSocket preview server the editor UI
// talks to.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/DiceT/ruins-and-realms-sub003/internal/logger"
	"github.com/DiceT/ruins-and-realms-sub003/internal/preview"
)

func main() {
	addr := flag.String("addr", ":4040", "Listen address")
	logLevel := flag.String("log-level", "INFO", "Log level: DEBUG, INFO, WARNING, ERROR")
	logFile := flag.String("log-file", "", "Also log to this rotating file")
	flag.Parse()

	logCfg := logger.DefaultConfig()
	logCfg.Level = *logLevel
	if *logFile != "" {
		logCfg.FileEnabled = true
		logCfg.FilePath = *logFile
	}
	if err := logger.Initialize(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	if err := preview.NewServer(*addr).Start(); err != nil {
		logger.Errorf("preview server stopped: %v", err)
		os.Exit(1)
	}
}
