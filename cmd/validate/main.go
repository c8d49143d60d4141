// Command validate checks a published calendar file for structural problems:
// CRLF terminators, header/footer framing, required event properties, and
// the physical line-length limit. It is a CI and debugging aid; the exit
// code is non-zero when any violation is found.
//
// Usage:
//
//	go run ./cmd/validate -file /var/www/forecast.ics
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kujhawk94/noaa2ical/internal/ical"
)

// maxLineOctets mirrors the RFC 5545 physical line limit the renderer folds to.
const maxLineOctets = 75

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	file := flag.String("file", "", "path to the calendar file to validate")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -file")
	}

	doc, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	violations := validate(doc)
	for _, v := range violations {
		log.Printf("violation: %s", v)
	}

	seqs := ical.ScanSequences(doc)
	log.Printf("%s: %d events, %d violations", *file, len(seqs), len(violations))
	for uid, seq := range seqs {
		log.Printf("  %s SEQUENCE=%d", uid, seq)
	}

	if len(violations) > 0 {
		return fmt.Errorf("%d violations", len(violations))
	}
	return nil
}

func validate(doc []byte) []string {
	var violations []string

	if len(doc) == 0 {
		return []string{"file is empty"}
	}
	if !bytes.HasSuffix(doc, []byte("\r\n")) {
		violations = append(violations, "document does not end with CRLF")
	}
	if bytes.Contains(bytes.ReplaceAll(doc, []byte("\r\n"), nil), []byte("\n")) {
		violations = append(violations, "bare LF terminator found; all lines must end with CRLF")
	}

	lines := strings.Split(strings.TrimSuffix(string(doc), "\r\n"), "\r\n")
	for i, line := range lines {
		if len(line) > maxLineOctets {
			violations = append(violations, fmt.Sprintf("line %d exceeds %d octets (%d)", i+1, maxLineOctets, len(line)))
		}
	}

	if lines[0] != "BEGIN:VCALENDAR" {
		violations = append(violations, "first line is not BEGIN:VCALENDAR")
	}
	if lines[len(lines)-1] != "END:VCALENDAR" {
		violations = append(violations, "last line is not END:VCALENDAR")
	}

	for _, prop := range []string{"VERSION:", "PRODID:", "CALSCALE:", "METHOD:"} {
		if !hasPrefixLine(lines, prop) {
			violations = append(violations, "missing calendar property "+strings.TrimSuffix(prop, ":"))
		}
	}

	violations = append(violations, validateEvents(lines)...)
	return violations
}

// validateEvents checks every VEVENT block for the required properties and a
// well-formed SEQUENCE value.
func validateEvents(lines []string) []string {
	var violations []string
	required := []string{"UID:", "SEQUENCE:", "DTSTAMP:", "DTSTART", "DTEND", "SUMMARY:", "DESCRIPTION:"}

	var block []string
	inEvent := false
	eventNum := 0
	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			inEvent = true
			eventNum++
			block = block[:0]
		case line == "END:VEVENT":
			inEvent = false
			for _, prop := range required {
				if !hasPrefixLine(block, prop) {
					violations = append(violations, fmt.Sprintf("event %d missing %s", eventNum, strings.TrimSuffix(prop, ":")))
				}
			}
			for _, l := range block {
				if v, ok := strings.CutPrefix(l, "SEQUENCE:"); ok {
					if n, err := strconv.Atoi(v); err != nil || n < 0 {
						violations = append(violations, fmt.Sprintf("event %d has invalid SEQUENCE %q", eventNum, v))
					}
				}
			}
		case inEvent:
			block = append(block, line)
		}
	}
	if inEvent {
		violations = append(violations, fmt.Sprintf("event %d is not closed by END:VEVENT", eventNum))
	}
	return violations
}

func hasPrefixLine(lines []string, prefix string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}
