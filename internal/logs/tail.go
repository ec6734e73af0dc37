package logs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

const maxLineBytes = 1024 * 1024

// Last returns up to limit trailing lines of the file at path, oldest first.
// A missing file yields no lines and no error.
func Last(fsys afero.Fs, path string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	file, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("log path %q is a directory", path)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	ring := make([]string, limit)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := make([]string, count)
	if count < limit {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := range count {
		lines[i] = ring[(next+i)%limit]
	}
	return lines, nil
}
