// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command chanwiredump reads a chanwire-framed byte stream from a file (or
// stdin) and logs one line per decoded message, then a final summary of the
// accumulated statistics. It is a diagnostic tool only: the core packages
// stay silent, and logging lives here instead.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/brevict/chanwire"
)

func main() {
	path := flag.String("f", "-", "path to a chanwire-framed file, or - for stdin")
	maxSize := flag.Int("max-size", 0, "reject messages larger than this many bytes (0 = use the default cap)")
	flag.Parse()

	in := os.Stdin
	if *path != "-" {
		f, err := os.Open(*path)
		if err != nil {
			log.Fatalf("chanwiredump: %v", err)
		}
		defer f.Close()
		in = f
	}

	cfg := chanwire.DefaultConfig()
	cfg.RetryDelay = 0 // block-and-retry, matching WithBlock
	if *maxSize > 0 {
		cfg.MaxSize = *maxSize
	}
	stats := chanwire.NewStatistics()
	cfg.Stats = stats

	fr := chanwire.NewFramedRead(chanwire.IntoRead(in), cfg)
	defer fr.Close()

	count := 0
	for {
		payload, err := fr.NextFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatalf("chanwiredump: message %d: %v", count, err)
		}
		count++
		log.Printf("message %d: %d bytes", count, len(payload))
	}

	log.Printf("done: %d messages, %d bytes, %d wire frames",
		count, stats.TotalBytes(), stats.TotalPackets())
}
