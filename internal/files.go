package internal

import (
	"encoding/json"
	"math"
)

// Upload error codes.
const (
	UploadOK           = 0
	UploadErrCantWrite = 7
)

// UploadedFile describes one file received with the request.
type UploadedFile struct {
	Name      string
	MimeType  string
	TempPath  string
	Size      int64
	ErrorCode int
}

// OK reports whether the upload completed without error.
func (f UploadedFile) OK() bool {
	return f.ErrorCode == UploadOK
}

// normalizeFiles keeps only well-formed descriptors: name, type and
// tmp_name must be strings, error and size must be integers.
func normalizeFiles(raw map[string]any) map[string]UploadedFile {
	out := make(map[string]UploadedFile, len(raw))
	for field, v := range raw {
		desc, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if f, ok := parseDescriptor(desc); ok {
			out[field] = f
		}
	}
	return out
}

func parseDescriptor(desc map[string]any) (UploadedFile, bool) {
	name, ok1 := desc["name"].(string)
	mimeType, ok2 := desc["type"].(string)
	tmp, ok3 := desc["tmp_name"].(string)
	code, ok4 := integer(desc["error"])
	size, ok5 := integer(desc["size"])
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return UploadedFile{}, false
	}
	return UploadedFile{
		Name:      name,
		MimeType:  mimeType,
		TempPath:  tmp,
		ErrorCode: int(code),
		Size:      size,
	}, true
}

// integer accepts Go integer types, integral json.Number and integral float64.
func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
