package handler

import (
	"errors"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"wklejka/internal/blob"
)

// ServeBlob streams a stored binary payload back by filename. Used for both
// /api/images/:filename and /api/files/:filename; the blob store reduces the
// name to its base name, so traversal outside the namespace is impossible.
//
// @Summary Download blob
// @Produce octet-stream
// @Param filename path string true "stored filename"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /api/images/{filename} [get]
func ServeBlob(blobs blob.Store, kind blob.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Params("filename")

		rc, size, err := blobs.Get(c.UserContext(), kind, filename)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "BLOB_NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		ct := mime.TypeByExtension(filepath.Ext(filename))
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.Set(fiber.HeaderContentType, ct)

		// fasthttp closes the stream when it implements io.Closer.
		return c.SendStream(rc, int(size))
	}
}
