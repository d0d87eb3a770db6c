package remote

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

const psColumns = 11

// psCommandPattern captures everything after the first ten whitespace
// separated fields, so command lines containing spaces survive intact.
var psCommandPattern = regexp.MustCompile(`^(?:\S+\s+){10}(.*)$`)

// ProcessExists reports whether a process whose command line contains name
// is present in the remote process table.
func (s *Session) ProcessExists(name string) (bool, error) {
	sess, err := s.client.NewSession()
	if err != nil {
		return false, &SessionError{Op: "process-exists", Err: err, IsTemporary: true}
	}
	defer sess.Close()

	out, err := sess.Output("ps auwx")
	if err != nil {
		return false, &SessionError{Op: "process-exists", Err: err, IsTemporary: true}
	}

	found, err := scanProcessTable(string(out), name)
	if err != nil {
		return false, err
	}
	log.Debug().Str("process", name).Bool("found", found).Msg("process table probed")
	return found, nil
}

// scanProcessTable parses ps output, validating the fixed header before
// trusting the column layout of the records.
func scanProcessTable(output, name string) (bool, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return false, &PsOutputError{Reason: "no header line"}
	}
	header := strings.Fields(scanner.Text())
	if len(header) != psColumns || header[len(header)-1] != "COMMAND" {
		return false, &PsOutputError{Reason: "unexpected header", Line: scanner.Text()}
	}

	for scanner.Scan() {
		record := scanner.Text()
		if record == "" {
			continue
		}
		m := psCommandPattern.FindStringSubmatch(record)
		if m == nil {
			return false, &PsOutputError{Reason: "unparsable record", Line: record}
		}
		if strings.Contains(m[1], name) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, &PsOutputError{Reason: err.Error()}
	}
	return false, nil
}
