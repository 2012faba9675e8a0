package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"storeadmin/internal/domain"
)

const maxImage = 5 << 20

var errBadImage = errors.New("image must be a png, jpeg, gif or webp file up to 5 MiB")

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

func readImage(fh *multipart.FileHeader) (domain.Upload, error) {
	if fh.Size > maxImage {
		return domain.Upload{}, errBadImage
	}
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, err
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxImage+1))
	if err != nil {
		return domain.Upload{}, err
	}
	ct := http.DetectContentType(b)
	if len(b) > maxImage || !imageTypes[strings.SplitN(ct, ";", 2)[0]] {
		return domain.Upload{}, errBadImage
	}
	return domain.Upload{FileName: fh.Filename, ContentType: ct, Content: b}, nil
}

// formImage reads one optional image field. A missing file is (nil, nil).
func formImage(c *fiber.Ctx, key string) (*domain.Upload, error) {
	fh, err := c.FormFile(key)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, err
	}
	up, err := readImage(fh)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// formImages reads every file of a repeated image field.
func formImages(c *fiber.Ctx, key string) ([]domain.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.Upload
	for _, fh := range form.File[key] {
		up, err := readImage(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	return out, nil
}
