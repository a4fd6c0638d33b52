package handler

import (
	"github.com/gofiber/fiber/v2"

	"wklejka/internal/bus"
	"wklejka/internal/model"
	"wklejka/internal/service"
)

// boardRequest is the JSON body of board create/rename calls.
type boardRequest struct {
	Name string `json:"name"`
}

// ListBoards returns all boards in creation order.
//
// @Summary List boards
// @Produce json
// @Success 200 {array} model.Board
// @Router /api/boards [get]
func ListBoards(svc service.ClipboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		boards, err := svc.ListBoards(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		if boards == nil {
			boards = []model.Board{}
		}
		return c.JSON(boards)
	}
}

// CreateBoard creates a board and broadcasts board-added.
//
// @Summary Create board
// @Accept json
// @Produce json
// @Param body body boardRequest true "board name"
// @Success 200 {object} model.Board
// @Failure 400 {object} errorPayload
// @Router /api/boards [post]
func CreateBoard(svc service.ClipboardService, events *bus.Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req boardRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		board, err := svc.CreateBoard(c.UserContext(), req.Name)
		if err != nil {
			return serviceError(c, err)
		}

		events.Publish(bus.Event{Type: bus.EventBoardAdded, Board: board})
		return c.JSON(board)
	}
}

// RenameBoard updates a board's name and broadcasts board-updated.
//
// @Summary Rename board
// @Accept json
// @Produce json
// @Param id path string true "board id"
// @Param body body boardRequest true "new name"
// @Success 200 {object} model.Board
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/boards/{id} [put]
func RenameBoard(svc service.ClipboardService, events *bus.Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req boardRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		board, err := svc.RenameBoard(c.UserContext(), c.Params("id"), req.Name)
		if err != nil {
			return serviceError(c, err)
		}

		events.Publish(bus.Event{Type: bus.EventBoardUpdated, Board: board})
		return c.JSON(board)
	}
}

// DeleteBoard removes a board with its clips and blobs, then broadcasts
// board-deleted.
//
// @Summary Delete board
// @Produce json
// @Param id path string true "board id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/boards/{id} [delete]
func DeleteBoard(svc service.ClipboardService, events *bus.Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.DeleteBoard(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}

		events.Publish(bus.Event{Type: bus.EventBoardDeleted, BoardID: id})
		return c.JSON(fiber.Map{"ok": true})
	}
}
