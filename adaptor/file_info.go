package adaptor

import (
	"io/fs"
	"time"

	"github.com/xxxsen/davfs/store"
)

type defaultFileInfo struct {
	FieldName  string
	FieldSize  int64
	FieldMtime time.Time
	FieldIsDir bool
}

func toFileInfo(ent *store.EntryInfo) fs.FileInfo {
	return &defaultFileInfo{
		FieldName:  ent.Name,
		FieldSize:  ent.Size,
		FieldMtime: ent.Mtime,
		FieldIsDir: ent.IsDir,
	}
}

func (d *defaultFileInfo) Name() string {
	return d.FieldName
}

func (d *defaultFileInfo) Size() int64 {
	return d.FieldSize
}

func (d *defaultFileInfo) Mode() fs.FileMode {
	if d.FieldIsDir {
		return fs.ModeDir | 0755
	}
	return 0644
}

func (d *defaultFileInfo) ModTime() time.Time {
	return d.FieldMtime
}

func (d *defaultFileInfo) IsDir() bool {
	return d.FieldIsDir
}

func (d *defaultFileInfo) Sys() interface{} {
	return nil
}
