// ABOUTME: Multipart form builder for image uploads
// ABOUTME: Collects the first error so callers check once at close

package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type multipartBody struct {
	buf         *bytes.Buffer
	contentType string
	w           *multipart.Writer
	err         error
}

func newMultipart() *multipartBody {
	buf := &bytes.Buffer{}
	return &multipartBody{buf: buf, w: multipart.NewWriter(buf)}
}

func (mb *multipartBody) field(name, value string) {
	if mb.err != nil {
		return
	}
	mb.err = mb.w.WriteField(name, value)
}

func (mb *multipartBody) file(field, path string) error {
	if mb.err != nil {
		return mb.err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open image %s: %w", path, err)
	}
	defer f.Close()

	part, err := mb.w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		mb.err = err
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		mb.err = fmt.Errorf("cannot read image %s: %w", path, err)
		return mb.err
	}
	return nil
}

func (mb *multipartBody) close() (*multipartBody, error) {
	if mb.err != nil {
		return nil, fmt.Errorf("failed to build form: %w", mb.err)
	}
	if err := mb.w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	mb.contentType = mb.w.FormDataContentType()
	return mb, nil
}
