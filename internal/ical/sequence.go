package ical

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// ScanSequences extracts the UID → SEQUENCE mapping from a previously
// published calendar document. The scan is deliberately tolerant: unknown
// lines, malformed blocks, and truncated input are skipped, so any prior
// file — including an empty or corrupt one — degrades to "no prior
// revision" rather than failing the run.
func ScanSequences(doc []byte) map[string]int {
	seqs := make(map[string]int)

	var inEvent bool
	var uid string
	var seq, seqOK = 0, false

	for _, line := range unfold(doc) {
		switch {
		case line == "BEGIN:VEVENT":
			inEvent = true
			uid = ""
			seq, seqOK = 0, false
		case line == "END:VEVENT":
			if inEvent && uid != "" && seqOK {
				seqs[uid] = seq
			}
			inEvent = false
		case !inEvent:
			// header, footer, or junk between events
		case strings.HasPrefix(line, "UID:"):
			uid = strings.TrimPrefix(line, "UID:")
		case strings.HasPrefix(line, "SEQUENCE:"):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "SEQUENCE:"))
			if err == nil && n >= 0 {
				seq, seqOK = n, true
			}
		}
	}

	return seqs
}

// NextSequence returns the revision for a UID's next publication: previous
// value + 1, or 0 when the UID has not been published before.
func NextSequence(previous map[string]int, uid string) int {
	if prev, ok := previous[uid]; ok {
		return prev + 1
	}
	return 0
}

// unfold splits a document into logical content lines, joining RFC 5545
// continuation lines (physical lines starting with space or tab) onto their
// parent. Accepts both CRLF and bare LF terminators.
func unfold(doc []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(doc))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
