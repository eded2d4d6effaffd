package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

type stageWriter struct {
	f   *os.File
	dst string
	tmp string
}

// NewStageWriter returns a writer that stages content into a temp file
// next to dst and renames it over dst on Close, so readers never observe
// a half-written file. On write or close failure the temp file is removed
// and dst is left untouched.
func NewStageWriter(dst string) (io.WriteCloser, error) {
	tmp := dst + "." + uuid.NewString() + ".temp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("create tmp file failed, err:%w", err)
	}
	return &stageWriter{f: f, dst: dst, tmp: tmp}, nil
}

func (w *stageWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

func (w *stageWriter) Close() error {
	defer os.Remove(w.tmp)
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close tmp file failed, err:%w", err)
	}
	if err := os.Rename(w.tmp, w.dst); err != nil {
		return fmt.Errorf("rename tmp file to target failed, err:%w", err)
	}
	return nil
}
