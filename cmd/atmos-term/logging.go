package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

// redirectLog sends the standard logger to path while the terminal is in
// full-screen mode. An empty path discards log output. restore puts the
// logger back on stderr and closes the file.
func redirectLog(path string) (restore func(), err error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
