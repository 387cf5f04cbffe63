package chronicle

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// SequenceFileName is the name of the global sequence log within a
	// chronicle's session directory.
	SequenceFileName = "sequence"

	// IndexFileName is the name of the per-channel index file within a
	// channel directory.
	IndexFileName = "index"

	rollFileNamePrefix    = "roll"
	rollFileNameExtension = ".nioc"
	paddedRollNumberWidth = 20

	hexPrefix = "0x"
)

// rollName builds the file name of the roll identified by rollID: the
// "roll" prefix, a 20-digit zero-padded decimal rendering of rollID, and the
// ".nioc" extension. .nioc (not .nio) is authoritative for this package; see
// DESIGN.md Open Question 3.
func rollName(rollID uint64) string {
	return fmt.Sprintf("%s%0*d%s", rollFileNamePrefix, paddedRollNumberWidth, rollID, rollFileNameExtension)
}

// hexChannelDir renders channelID as the directory name for that channel:
// "0x" followed by lowercase hex with no minimum width (0 renders as "0x0").
func hexChannelDir(channelID uint64) string {
	return hexPrefix + strconv.FormatUint(channelID, 16)
}

// parseHex parses a string of the form "0x<hex>" into a uint64. Unlike the
// C++ original's lenient strtoull(..., 16) over the whole string including
// the prefix, this parse is strict: the 0x prefix is required and only the
// suffix is parsed (DESIGN.md Open Question 2).
func parseHex(s string) (uint64, error) {
	if !strings.HasPrefix(s, hexPrefix) {
		return 0, fmt.Errorf("%w: %q does not start with %q", ErrInvalidArgument, s, hexPrefix)
	}
	v, err := strconv.ParseUint(s[len(hexPrefix):], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %s", ErrInvalidArgument, s, err)
	}
	return v, nil
}

// validatePath fails with ErrInvalidArgument unless p exists and is a
// directory.
func validatePath(p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, p, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidArgument, p)
	}
	return nil
}

// iso8601UTC formats t as YYYY-MM-DDTHH:MM:SS.fffffffffZ in UTC with
// nanosecond precision, matching the source's iso8601UtcFormat.
func iso8601UTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}
