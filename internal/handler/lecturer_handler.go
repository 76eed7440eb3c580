package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
	"github.com/noah-isme/asdos-web/internal/service"
	"github.com/noah-isme/asdos-web/internal/utils"
)

// LecturerHandler serves the dosen dashboard.
type LecturerHandler struct {
	dashboard service.DashboardService
	lowongan  service.LowonganService
	lamaran   service.LamaranService
	logs      service.LogService
	logger    zerolog.Logger
}

// NewLecturerHandler constructs the lecturer dashboard handler.
func NewLecturerHandler(dashboard service.DashboardService, lowongan service.LowonganService, lamaran service.LamaranService, logs service.LogService, logger zerolog.Logger) *LecturerHandler {
	return &LecturerHandler{
		dashboard: dashboard,
		lowongan:  lowongan,
		lamaran:   lamaran,
		logs:      logs,
		logger:    logger.With().Str("component", "lecturer_handler").Logger(),
	}
}

// Register wires routes under the lecturer dashboard prefix.
func (h *LecturerHandler) Register(router fiber.Router) {
	router.Get("/", h.summary)
	router.Get("/lowongan", h.listLowongan)
	router.Post("/lowongan", h.createLowongan)
	router.Put("/lowongan/:id", h.updateLowongan)
	router.Delete("/lowongan/:id", h.deleteLowongan)
	router.Get("/lowongan/:id/lamaran", h.listLamaran)
	router.Patch("/lamaran/:id/status", h.decideLamaran)
	router.Get("/logs", h.listLogs)
	router.Patch("/logs/:id/status", h.verifyLog)
}

func (h *LecturerHandler) summary(c *fiber.Ctx) error {
	result := h.dashboard.Lecturer(c.UserContext(), actorFromContext(c))
	return utils.SendSuccess(c, "dashboard retrieved", result)
}

func (h *LecturerHandler) listLowongan(c *fiber.Ctx) error {
	items, err := h.lowongan.ListMine(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list lowongan")
	}
	return utils.SendSuccess(c, "lowongan retrieved", items)
}

func (h *LecturerHandler) createLowongan(c *fiber.Ctx) error {
	var req dto.LowonganRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	item, err := h.lowongan.Create(c.UserContext(), actorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create lowongan")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lowongan created", item)
}

func (h *LecturerHandler) updateLowongan(c *fiber.Ctx) error {
	var req dto.LowonganRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	item, err := h.lowongan.Update(c.UserContext(), actorFromContext(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update lowongan")
	}
	return utils.SendSuccess(c, "lowongan updated", item)
}

func (h *LecturerHandler) deleteLowongan(c *fiber.Ctx) error {
	if err := h.lowongan.Delete(c.UserContext(), actorFromContext(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err, "failed to delete lowongan")
	}
	return utils.SendSuccess(c, "lowongan deleted", nil)
}

func (h *LecturerHandler) listLamaran(c *fiber.Ctx) error {
	items, err := h.lamaran.ListForLowongan(c.UserContext(), actorFromContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list lamaran")
	}
	return utils.SendSuccess(c, "lamaran retrieved", items)
}

func (h *LecturerHandler) decideLamaran(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	lamaran, err := h.lamaran.Decide(c.UserContext(), actorFromContext(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update lamaran")
	}
	return utils.SendSuccess(c, "lamaran updated", lamaran)
}

func (h *LecturerHandler) listLogs(c *fiber.Ctx) error {
	status := models.Status(strings.ToUpper(strings.TrimSpace(c.Query("status"))))

	items, err := h.logs.ListForDosen(c.UserContext(), actorFromContext(c), status)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list logs")
	}
	return utils.SendSuccess(c, "logs retrieved", items)
}

func (h *LecturerHandler) verifyLog(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	view, err := h.logs.Verify(c.UserContext(), actorFromContext(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to verify log")
	}
	return utils.SendSuccess(c, "log verified", view)
}
