package store

import (
	"regexp"
	"strconv"
	"strings"
)

// On-disk layout: token \t field1 \t ... \t fieldN \t pid \n
const (
	fieldSeparator = "\t"
	lineTerminator = "\n"
)

type Record struct {
	Token  uint64
	Fields []string
	PID    int
}

// String renders the record the way get returns it: key fields and pid
// joined by the separator, leading token stripped.
func (r Record) String() string {
	parts := make([]string, 0, len(r.Fields)+1)
	parts = append(parts, r.Fields...)
	parts = append(parts, strconv.Itoa(r.PID))
	return strings.Join(parts, fieldSeparator)
}

func (r Record) line() string {
	parts := make([]string, 0, len(r.Fields)+2)
	parts = append(parts, strconv.FormatUint(r.Token, 10))
	parts = append(parts, r.Fields...)
	parts = append(parts, strconv.Itoa(r.PID))
	return strings.Join(parts, fieldSeparator) + lineTerminator
}

// parseLine decodes one stored line (terminator already stripped). Lines that
// do not decode are reported as !ok; read-time corruption is undefined
// behavior, so callers just skip them.
func parseLine(line string) (r Record, ok bool) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 2 {
		return r, false
	}

	token, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return r, false
	}

	pid, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return r, false
	}

	r.Token = token
	r.Fields = parts[1 : len(parts)-1]
	r.PID = pid
	return r, true
}

// matcher implements the key-matching rule shared by get and delete: a
// line-start anchor, a numeric token segment, then the supplied fields joined
// by the separator. No trailing anchor is applied, so a partial key is a
// textual prefix match that may cross field boundaries. Field values are
// inserted verbatim, so regexp metacharacters in them are live (the validator
// warns about this at write time).
type matcher struct {
	re     *regexp.Regexp
	prefix string // literal fallback when the fields do not compile as a pattern
}

func newMatcher(fields []string) matcher {
	joined := strings.Join(fields, fieldSeparator)

	re, err := regexp.Compile(`^[0-9]+` + fieldSeparator + joined)
	if err != nil {
		return matcher{prefix: joined}
	}

	return matcher{re: re}
}

// newExactMatcher anchors a complete key with a trailing separator: every
// stored line carries the pid field after the last key field, so a full key
// is always followed by one. Used by the add-time duplicate check, where an
// unanchored prefix would treat ("job","1") as a duplicate of ("job","10").
// get and delete keep the unanchored prefix rule.
func newExactMatcher(fields []string) matcher {
	if len(fields) == 0 {
		// an empty key stores as token \t pid only
		return matcher{re: regexp.MustCompile(`^[0-9]+` + fieldSeparator + `[0-9]+$`)}
	}

	joined := strings.Join(fields, fieldSeparator)

	re, err := regexp.Compile(`^[0-9]+` + fieldSeparator + joined + fieldSeparator)
	if err != nil {
		return matcher{prefix: joined + fieldSeparator}
	}

	return matcher{re: re}
}

func (m matcher) match(line string) bool {
	if m.re != nil {
		return m.re.MatchString(line)
	}

	// strip the leading token by hand
	i := strings.Index(line, fieldSeparator)
	if i < 0 {
		return false
	}
	return strings.HasPrefix(line[i+1:], m.prefix)
}
