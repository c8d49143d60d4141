// Package ical renders the published calendar document and manages the
// on-disk artifact it replaces on each run.
package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/kujhawk94/noaa2ical/internal/domain"
)

// Stat glyphs used in event summaries. Each glyph directly precedes its
// value, with no separators: "▲75▼60↓5↑12☂30".
const (
	glyphHighTemp = "▲"
	glyphLowTemp  = "▼"
	glyphLowWind  = "↓"
	glyphHighWind = "↑"
	glyphPrecip   = "☂"
)

// maxLineOctets is the RFC 5545 physical line limit before folding.
const maxLineOctets = 75

// Event is one all-day calendar entry, ready to render.
type Event struct {
	Date        string // YYYY-MM-DD
	UID         string
	Sequence    int
	Summary     string
	Description string
}

// NewUID derives the stable event identifier for a date.
func NewUID(date, domain string) string {
	return date + "@" + domain
}

// FormatSummary encodes a day's stats as the compact glyph string used for
// the event summary.
func FormatSummary(st domain.DayStats) string {
	return fmt.Sprintf("%s%d%s%d%s%d%s%d%s%d",
		glyphHighTemp, st.HighTemp,
		glyphLowTemp, st.LowTemp,
		glyphLowWind, st.LowWind,
		glyphHighWind, st.HighWind,
		glyphPrecip, st.MaxPrecip,
	)
}

// Render serializes events into a complete VCALENDAR document. Events are
// emitted in the order given; the caller decides which dates to publish.
// CRLF terminators are applied uniformly after all content is generated.
func Render(calDomain string, now time.Time, events []Event) ([]byte, error) {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//"+calDomain+"//noaa2ical//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, ev := range events {
		start, err := time.Parse("2006-01-02", ev.Date)
		if err != nil {
			return nil, fmt.Errorf("render event %s: %w", ev.UID, err)
		}
		end := start.AddDate(0, 0, 1)

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+ev.UID)
		writeLine(&b, fmt.Sprintf("SEQUENCE:%d", ev.Sequence))
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART;VALUE=DATE:"+start.Format("20060102"))
		writeLine(&b, "DTEND;VALUE=DATE:"+end.Format("20060102"))
		writeLine(&b, "SUMMARY:"+EscapeText(ev.Summary))
		writeLine(&b, "DESCRIPTION:"+EscapeText(ev.Description))
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")

	return []byte(strings.ReplaceAll(b.String(), "\n", "\r\n")), nil
}

// writeLine folds a content line to the physical line limit and terminates
// each physical line with a bare LF; Render rewrites terminators to CRLF once
// the whole document is built.
func writeLine(b *strings.Builder, line string) {
	for _, physical := range FoldLine(line) {
		b.WriteString(physical)
		b.WriteByte('\n')
	}
}

// EscapeText escapes the RFC 5545 TEXT special characters: backslash, the
// list separators comma and semicolon, and literal newlines.
func EscapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ';':
			b.WriteString(`\;`)
		case ',':
			b.WriteString(`\,`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			// swallowed; a following \n produces the escape
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FoldLine splits a content line into physical lines of at most 75 octets,
// with each continuation prefixed by exactly one space. Runes are never split
// across physical lines.
func FoldLine(line string) []string {
	if len(line) <= maxLineOctets {
		return []string{line}
	}

	var physical []string
	var cur strings.Builder
	for _, r := range line {
		if cur.Len()+len(string(r)) > maxLineOctets {
			physical = append(physical, cur.String())
			cur.Reset()
			cur.WriteByte(' ')
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		physical = append(physical, cur.String())
	}
	return physical
}
