package resource

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Etag computes an opaque change-detection fingerprint: a single xxhash
// digest over the absolute physical location, the mtime value and the
// size value, in that order. It changes whenever mtime or size changes
// and differs between distinct physical locations even when mtime and
// size coincide. This is a fast conditional-request check, not an
// integrity guarantee.
func (r *Resource) Etag(ctx context.Context) (string, error) {
	abs, err := r.AbsPath()
	if err != nil {
		return "", err
	}
	info, err := r.store.Stat(ctx, abs)
	if err != nil {
		return "", err
	}
	d := xxhash.New()
	_, _ = d.WriteString(abs)
	_, _ = d.WriteString(strconv.FormatInt(info.Mtime.UnixNano(), 10))
	_, _ = d.WriteString(strconv.FormatInt(info.Size, 10))
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, d.Sum64())
	return hex.EncodeToString(buf), nil
}
