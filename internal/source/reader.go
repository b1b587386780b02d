package source

import (
	"bufio"
	"iter"
	"strings"
	"unicode/utf8"
)

// readChunkSize is the fixed read size; only an incomplete trailing line is
// buffered across chunk boundaries.
const readChunkSize = 64 * 1024

// Lines returns a lazy sequence of the file's text lines. The file is
// opened when iteration starts and closed when it ends, so the sequence is
// restartable per call. A file that cannot be opened yields nothing; lines
// that are not valid UTF-8 are skipped; the final line is yielded even
// without a trailing newline.
func Lines(fsys FS, path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		f, err := fsys.Open(path)
		if err != nil {
			return
		}
		defer func() { _ = f.Close() }()

		r := bufio.NewReaderSize(f, readChunkSize)
		for {
			line, err := r.ReadString('\n')
			line = strings.TrimRight(line, "\r\n")
			if line != "" && utf8.ValidString(line) {
				if !yield(line) {
					return
				}
			}
			if err != nil {
				// io.EOF after the final unterminated line, or a read
				// failure mid-file; either way the sequence ends here.
				return
			}
		}
	}
}
