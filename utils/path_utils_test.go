package utils

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/davfs/errs"
)

func TestSafeJoin(t *testing.T) {
	root := "/srv/dav"
	tests := []struct {
		rel  string
		want string
	}{
		{"", "/srv/dav"},
		{"a/b.txt", "/srv/dav/a/b.txt"},
		{"/a/b.txt", "/srv/dav/a/b.txt"},
		{"a/../b", "/srv/dav/b"},
		{"./a//b/", "/srv/dav/a/b"},
	}
	for _, tt := range tests {
		got, err := SafeJoin(root, tt.rel)
		assert.NoError(t, err, tt.rel)
		assert.Equal(t, filepath.FromSlash(tt.want), got, tt.rel)
	}
}

func TestSafeJoinRejectsEscape(t *testing.T) {
	root := "/srv/dav"
	for _, rel := range []string{"..", "../x", "../../etc/passwd", "a/../../x"} {
		_, err := SafeJoin(root, rel)
		assert.Error(t, err, rel)
		assert.True(t, errors.Is(err, errs.ErrPathEscape), rel)
	}
}

func TestURLJoin(t *testing.T) {
	assert.Equal(t, "http://x/dav/a/b", URLJoin("http://x/dav/", "/a/b"))
	assert.Equal(t, "http://x/dav/a", URLJoin("http://x/dav", "a"))
	assert.Equal(t, "http://x/dav", URLJoin("http://x/dav/", ""))
}
