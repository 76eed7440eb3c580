package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/honor"
	"github.com/noah-isme/asdos-web/internal/service"
	"github.com/noah-isme/asdos-web/internal/utils"
)

// StudentHandler serves the mahasiswa dashboard.
type StudentHandler struct {
	dashboard service.DashboardService
	lowongan  service.LowonganService
	lamaran   service.LamaranService
	logs      service.LogService
	honor     service.HonorService
	logger    zerolog.Logger
}

// NewStudentHandler constructs the student dashboard handler.
func NewStudentHandler(dashboard service.DashboardService, lowongan service.LowonganService, lamaran service.LamaranService, logs service.LogService, honorService service.HonorService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		dashboard: dashboard,
		lowongan:  lowongan,
		lamaran:   lamaran,
		logs:      logs,
		honor:     honorService,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires routes under the student dashboard prefix.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/", h.summary)
	router.Get("/lowongan", h.listLowongan)
	router.Post("/lowongan/:id/lamaran", h.apply)
	router.Get("/lamaran", h.listLamaran)
	router.Get("/logs", h.listLogs)
	router.Post("/logs", h.createLog)
	router.Put("/logs/:id", h.updateLog)
	router.Delete("/logs/:id", h.deleteLog)
	router.Get("/honor", h.honorSummary)
}

func (h *StudentHandler) summary(c *fiber.Ctx) error {
	result := h.dashboard.Student(c.UserContext(), actorFromContext(c))
	return utils.SendSuccess(c, "dashboard retrieved", result)
}

func (h *StudentHandler) listLowongan(c *fiber.Ctx) error {
	items, err := h.lowongan.ListOpen(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list lowongan")
	}
	return utils.SendSuccess(c, "lowongan retrieved", items)
}

func (h *StudentHandler) apply(c *fiber.Ctx) error {
	var req dto.LamaranRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	lamaran, err := h.lamaran.Apply(c.UserContext(), actorFromContext(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to submit lamaran")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lamaran submitted", lamaran)
}

func (h *StudentHandler) listLamaran(c *fiber.Ctx) error {
	items, err := h.lamaran.ListMine(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list lamaran")
	}
	return utils.SendSuccess(c, "lamaran retrieved", items)
}

func (h *StudentHandler) listLogs(c *fiber.Ctx) error {
	items, err := h.logs.ListMine(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list logs")
	}
	return utils.SendSuccess(c, "logs retrieved", items)
}

func (h *StudentHandler) createLog(c *fiber.Ctx) error {
	var req dto.LogRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	view, err := h.logs.Create(c.UserContext(), actorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create log")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "log submitted", view)
}

func (h *StudentHandler) updateLog(c *fiber.Ctx) error {
	var req dto.LogRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	view, err := h.logs.Update(c.UserContext(), actorFromContext(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update log")
	}
	return utils.SendSuccess(c, "log updated", view)
}

func (h *StudentHandler) deleteLog(c *fiber.Ctx) error {
	if err := h.logs.Delete(c.UserContext(), actorFromContext(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err, "failed to delete log")
	}
	return utils.SendSuccess(c, "log deleted", nil)
}

func (h *StudentHandler) honorSummary(c *fiber.Ctx) error {
	month, err := parseQueryInt(c, "bulan")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid bulan")
	}
	year, err := parseQueryInt(c, "tahun")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid tahun")
	}

	summary, err := h.honor.Summary(c.UserContext(), actorFromContext(c), honor.Period{Month: month, Year: year})
	if err != nil {
		return respondError(c, h.logger, err, "failed to compute honor")
	}
	return utils.SendSuccess(c, "honor computed", summary)
}
