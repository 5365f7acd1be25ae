package graphics

import "os"

// Reader loads the bytes of a file.
type Reader interface {
	Read(path string) ([]byte, error)
}

type diskReader struct{}

func (diskReader) Read(path string) ([]byte, error) { return os.ReadFile(path) }

func readerOrDisk(r Reader) Reader {
	if r == nil {
		return diskReader{}
	}
	return r
}
