package handler

import (
	"github.com/gofiber/fiber/v2"

	"wklejka/internal/blob"
	"wklejka/internal/bus"
	"wklejka/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic; each mutating route
// broadcasts its bus event exactly once, after the service call succeeds.
func RegisterRoutes(app *fiber.App, svc service.ClipboardService, blobs blob.Store, events *bus.Broadcaster, dataDir string) {
	app.Get("/health", HealthCheck(dataDir))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Get("/boards", ListBoards(svc))
	api.Post("/boards", CreateBoard(svc, events))
	api.Put("/boards/:id", RenameBoard(svc, events))
	api.Delete("/boards/:id", DeleteBoard(svc, events))

	api.Get("/boards/:id/clips", ListClips(svc))
	api.Post("/boards/:id/clips", AddClip(svc, events))
	api.Delete("/boards/:boardId/clips/:clipId", DeleteClip(svc, events))

	api.Get("/images/:filename", ServeBlob(blobs, blob.KindImage))
	api.Get("/files/:filename", ServeBlob(blobs, blob.KindFile))

	app.Use("/ws", UpgradeGate())
	app.Get("/ws", Events(events))
}
