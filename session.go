package chronicle

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// setupSessionDirectory builds a fresh, uniquely-named chronicle directory
// under logRoot. The timestamp+uuid suffix makes a collision with a prior
// session effectively impossible; clearAndCreateDirectory handles it
// exactly the same way regardless.
func setupSessionDirectory(logRoot string, now time.Time, warn func(string)) (string, error) {
	dir := filepath.Join(logRoot, iso8601UTC(now)+"_"+uuid.New().String())
	if err := clearAndCreateDirectory(dir, warn); err != nil {
		return "", err
	}
	return dir, nil
}

// clearAndCreateDirectory removes any pre-existing contents at dir,
// surfacing a warning through warn, then creates dir fresh.
func clearAndCreateDirectory(dir string, warn func(string)) error {
	if _, err := os.Stat(dir); err == nil {
		if warn != nil {
			warn("directory " + dir + " exists already; contents will be cleared")
		}
		if err := os.RemoveAll(dir); err != nil {
			return newIoError("remove", dir, err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newIoError("mkdir", dir, err)
	}

	return nil
}
