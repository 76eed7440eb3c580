package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/service"
	"github.com/noah-isme/asdos-web/internal/utils"
)

// AdminHandler serves the admin dashboard: accounts, courses and the audit trail.
type AdminHandler struct {
	dashboard service.DashboardService
	users     service.UserService
	courses   service.CourseService
	activity  service.ActivityService
	logger    zerolog.Logger
}

// NewAdminHandler constructs the admin dashboard handler.
func NewAdminHandler(dashboard service.DashboardService, users service.UserService, courses service.CourseService, activity service.ActivityService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		dashboard: dashboard,
		users:     users,
		courses:   courses,
		activity:  activity,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register wires routes under the admin dashboard prefix.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/", h.summary)

	router.Get("/users", h.listUsers)
	router.Post("/users", h.createUser)
	router.Get("/users/:id", h.getUser)
	router.Put("/users/:id", h.updateUser)
	router.Delete("/users/:id", h.deleteUser)

	router.Get("/courses", h.listCourses)
	router.Post("/courses", h.createCourse)
	router.Put("/courses/:kode", h.updateCourse)
	router.Delete("/courses/:kode", h.deleteCourse)

	router.Get("/activity", h.listActivity)
}

func (h *AdminHandler) summary(c *fiber.Ctx) error {
	result := h.dashboard.Admin(c.UserContext(), actorFromContext(c))
	return utils.SendSuccess(c, "dashboard retrieved", result)
}

func (h *AdminHandler) listUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list users")
	}
	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *AdminHandler) getUser(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), actorFromContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to load user")
	}
	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *AdminHandler) createUser(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	user, err := h.users.Create(c.UserContext(), actorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create user")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *AdminHandler) updateUser(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	user, err := h.users.Update(c.UserContext(), actorFromContext(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update user")
	}
	return utils.SendSuccess(c, "user updated", user)
}

func (h *AdminHandler) deleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), actorFromContext(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err, "failed to delete user")
	}
	return utils.SendSuccess(c, "user deleted", nil)
}

func (h *AdminHandler) listCourses(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list courses")
	}
	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *AdminHandler) createCourse(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	course, err := h.courses.Create(c.UserContext(), actorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create course")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *AdminHandler) updateCourse(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	course, err := h.courses.Update(c.UserContext(), actorFromContext(c), c.Params("kode"), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update course")
	}
	return utils.SendSuccess(c, "course updated", course)
}

func (h *AdminHandler) deleteCourse(c *fiber.Ctx) error {
	if err := h.courses.Delete(c.UserContext(), actorFromContext(c), c.Params("kode")); err != nil {
		return respondError(c, h.logger, err, "failed to delete course")
	}
	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *AdminHandler) listActivity(c *fiber.Ctx) error {
	var req dto.ActivityListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.activity.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list activity")
	}
	return utils.SendSuccess(c, "activity retrieved", page)
}
