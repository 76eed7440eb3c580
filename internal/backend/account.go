package backend

import (
	"context"
	"net/http"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
)

const (
	adminUserRoute   = "api/account/admin/user"
	adminCourseRoute = "api/course/admin/matakuliah"
)

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, call{endpoint: "users.list", method: http.MethodGet, path: segments(adminUserRoute), token: token, strict: true}, &users)
	return users, err
}

// GetUser returns one account.
func (c *Client) GetUser(ctx context.Context, token, id string) (models.User, error) {
	var user models.User
	err := c.do(ctx, call{endpoint: "users.get", method: http.MethodGet, path: segments(adminUserRoute, id), token: token, strict: true}, &user)
	return user, err
}

// CreateUser registers an account of any role.
func (c *Client) CreateUser(ctx context.Context, token string, req dto.UserRequest) (models.User, error) {
	var user models.User
	err := c.do(ctx, call{endpoint: "users.create", method: http.MethodPost, path: segments(adminUserRoute), token: token, body: req, strict: true}, &user)
	return user, err
}

// UpdateUser replaces an account's details.
func (c *Client) UpdateUser(ctx context.Context, token, id string, req dto.UserRequest) (models.User, error) {
	var user models.User
	err := c.do(ctx, call{endpoint: "users.update", method: http.MethodPut, path: segments(adminUserRoute, id), token: token, body: req, strict: true}, &user)
	return user, err
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, call{endpoint: "users.delete", method: http.MethodDelete, path: segments(adminUserRoute, id), token: token, strict: true}, nil)
}

// ListCourses returns every course.
func (c *Client) ListCourses(ctx context.Context, token string) ([]models.MataKuliah, error) {
	var courses []models.MataKuliah
	err := c.do(ctx, call{endpoint: "courses.list", method: http.MethodGet, path: segments(adminCourseRoute), token: token}, &courses)
	return courses, err
}

// CreateCourse adds a course.
func (c *Client) CreateCourse(ctx context.Context, token string, req dto.CourseRequest) (models.MataKuliah, error) {
	var course models.MataKuliah
	err := c.do(ctx, call{endpoint: "courses.create", method: http.MethodPost, path: segments(adminCourseRoute), token: token, body: req}, &course)
	return course, err
}

// UpdateCourse replaces a course's details.
func (c *Client) UpdateCourse(ctx context.Context, token, kode string, req dto.CourseRequest) (models.MataKuliah, error) {
	var course models.MataKuliah
	err := c.do(ctx, call{endpoint: "courses.update", method: http.MethodPut, path: segments(adminCourseRoute, kode), token: token, body: req}, &course)
	return course, err
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, token, kode string) error {
	return c.do(ctx, call{endpoint: "courses.delete", method: http.MethodDelete, path: segments(adminCourseRoute, kode), token: token}, nil)
}
