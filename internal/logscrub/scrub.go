// Package logscrub replaces identifiers in log text with salted hashes.
// Equal identifiers map to equal tokens within one salt, so correlations in
// the log survive anonymization while the identifiers themselves do not.
package logscrub

import (
	"bufio"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
)

var (
	uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	ipv4Pattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// tokenLen is the number of hex characters kept from each hash. Long enough
// to keep distinct identifiers distinct in practice, short enough to keep
// log lines readable.
const tokenLen = 10

const saltBytes = 16

// Scrubber rewrites identifiers using one fixed salt.
type Scrubber struct {
	salt string
}

// New returns a Scrubber for the given salt.
func New(salt string) *Scrubber {
	return &Scrubber{salt: salt}
}

// NewSalt returns a fresh random salt for one-off runs.
func NewSalt() (string, error) {
	b := make([]byte, saltBytes)

	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	return hex.EncodeToString(b), nil
}

// Line replaces every UUID and IPv4 address in line with its salted hash.
func (s *Scrubber) Line(line string) string {
	line = uuidPattern.ReplaceAllStringFunc(line, s.token)

	return ipv4Pattern.ReplaceAllStringFunc(line, s.token)
}

func (s *Scrubber) token(id string) string {
	sum := sha256.Sum256([]byte(s.salt + id))

	return hex.EncodeToString(sum[:])[:tokenLen]
}

// Scanner limits: log lines can get long, but not unbounded.
const (
	scanInitialBuf = 64 * 1024
	scanMaxBuf     = 4 * 1024 * 1024
)

// Copy scrubs r line by line into w, returning the number of lines written.
func (s *Scrubber) Copy(w io.Writer, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scanInitialBuf), scanMaxBuf)

	lines := 0

	for scanner.Scan() {
		_, err := fmt.Fprintln(w, s.Line(scanner.Text()))
		if err != nil {
			return lines, fmt.Errorf("writing output: %w", err)
		}

		lines++
	}

	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("reading input: %w", err)
	}

	return lines, nil
}
