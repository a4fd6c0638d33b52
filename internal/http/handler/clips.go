package handler

import (
	"github.com/gofiber/fiber/v2"

	"wklejka/internal/bus"
	"wklejka/internal/service"
)

// clipRequest is the JSON body of a clip submission. Content is raw text for
// text clips and a base64 data URL for image/file clips.
type clipRequest struct {
	Type         string `json:"type"`
	Content      string `json:"content"`
	OriginalName string `json:"originalName"`
}

// ListClips returns a board's clips, newest first. An unknown board yields an
// empty array rather than 404.
//
// @Summary List clips
// @Produce json
// @Param id path string true "board id"
// @Success 200 {array} model.Clip
// @Router /api/boards/{id}/clips [get]
func ListClips(svc service.ClipboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clips, err := svc.ListClips(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(clips)
	}
}

// AddClip stores a submission and broadcasts clip-added.
//
// @Summary Add clip
// @Accept json
// @Produce json
// @Param id path string true "board id"
// @Param body body clipRequest true "clip submission"
// @Success 200 {object} model.Clip
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/boards/{id}/clips [post]
func AddClip(svc service.ClipboardService, events *bus.Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		boardID := c.Params("id")

		var req clipRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		clip, err := svc.AddClip(c.UserContext(), boardID, service.AddClipInput{
			Type:         req.Type,
			Content:      req.Content,
			OriginalName: req.OriginalName,
		})
		if err != nil {
			return serviceError(c, err)
		}

		events.Publish(bus.Event{Type: bus.EventClipAdded, BoardID: boardID, Clip: clip})
		return c.JSON(clip)
	}
}

// DeleteClip removes a clip (and its blob) and broadcasts clip-deleted.
//
// @Summary Delete clip
// @Produce json
// @Param boardId path string true "board id"
// @Param clipId path string true "clip id"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errorPayload
// @Router /api/boards/{boardId}/clips/{clipId} [delete]
func DeleteClip(svc service.ClipboardService, events *bus.Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		boardID := c.Params("boardId")
		clipID := c.Params("clipId")

		if err := svc.DeleteClip(c.UserContext(), boardID, clipID); err != nil {
			return serviceError(c, err)
		}

		events.Publish(bus.Event{Type: bus.EventClipDeleted, BoardID: boardID, ClipID: clipID})
		return c.JSON(fiber.Map{"ok": true})
	}
}
