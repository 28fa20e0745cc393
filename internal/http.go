package internal

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/dmitrymomot/todo/pkg/cookie"
	"github.com/dmitrymomot/todo/pkg/sessiontransport"
)

// Memory kept for multipart parts before they spill to disk.
const multipartMemory = 32 << 20

// FromHTTP builds a Request from a net/http request. Uploaded files are
// spooled to temporary files; the returned cleanup removes them and must
// be called once the response is written.
func FromHTTP(w http.ResponseWriter, r *http.Request, cookies *cookie.Manager, bodyLimit int64) (*Request, func()) {
	var (
		raw     []byte
		form    map[string]any
		files   map[string]any
		readErr error
		temps   []string
	)

	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			readErr = err
		} else {
			form = decodeValues(r.MultipartForm.Value)
			files, temps = spoolFiles(r.MultipartForm.File)
		}
	} else if r.Body != nil {
		if raw, readErr = io.ReadAll(r.Body); readErr != nil {
			raw = nil
		}
	}

	req := NewRequest(RequestInput{
		Context:   r.Context(),
		Header:    r.Header,
		Transport: sessiontransport.NewCookie(w, r, cookies),
		Query:     r.URL.Query(),
		Form:      form,
		Files:     files,
		Method:    r.Method,
		URI:       r.URL.Path,
		Body:      raw,
	})
	if readErr != nil && req.bodyErr == nil {
		req.bodyErr = readErr
	}

	cleanup := func() {
		for _, p := range temps {
			_ = os.Remove(p)
		}
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
	return req, cleanup
}

// spoolFiles copies the first file of every field to a temporary file and
// returns upload descriptors plus the created paths.
func spoolFiles(fields map[string][]*multipart.FileHeader) (map[string]any, []string) {
	out := make(map[string]any, len(fields))
	var temps []string
	for field, headers := range fields {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		desc := map[string]any{
			"name":     fh.Filename,
			"type":     fh.Header.Get("Content-Type"),
			"tmp_name": "",
			"error":    UploadOK,
			"size":     fh.Size,
		}
		path, err := spool(fh)
		if err != nil {
			desc["error"] = UploadErrCantWrite
		} else {
			desc["tmp_name"] = path
			temps = append(temps, path)
		}
		out[field] = desc
	}
	return out, temps
}

func spool(fh *multipart.FileHeader) (path string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return "", err
	}
	defer func() {
		err = errors.Join(err, dst.Close())
		if err != nil {
			_ = os.Remove(dst.Name())
			path = ""
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return dst.Name(), nil
}
