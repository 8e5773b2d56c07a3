package eventlog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/Tiliavir/babylog/internal/storage"
)

// ReadTail reads the last len(buf) bytes of name into buf and returns the
// filled prefix. Smaller files are read whole. A missing file reads as empty.
// Memory use is bounded by buf regardless of the file size.
func ReadTail(fsys storage.FS, name string, buf []byte) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return buf[:0], nil
		}
		return buf[:0], fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	size, err := f.Size()
	if err != nil {
		return buf[:0], fmt.Errorf("size of %s: %w", name, err)
	}
	if size <= 0 {
		return buf[:0], nil
	}

	n := int64(len(buf))
	if size < n {
		n = size
	}
	if skip := size - n; skip > 0 {
		if seeker, ok := f.(io.Seeker); ok {
			_, err = seeker.Seek(skip, io.SeekStart)
		} else {
			_, err = io.CopyN(io.Discard, f, skip)
		}
		if err != nil {
			return buf[:0], fmt.Errorf("skip to tail of %s: %w", name, err)
		}
	}

	read, err := io.ReadFull(f, buf[:n])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return buf[:0], fmt.Errorf("read tail of %s: %w", name, err)
	}
	return buf[:read], nil
}
