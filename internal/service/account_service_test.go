package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/asdos-web/internal/dto"
)

func TestAuthServiceLoginValidatesAndTrims(t *testing.T) {
	svc := NewAuthService(newFakeBackend(), testValidator(), testLogger())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "  ", Password: "x"})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	result, err := svc.Login(context.Background(), dto.LoginRequest{Username: " 2106123456 ", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "issued.2106123456.sig", result.Token)
}

func TestAuthServiceRegisterNormalisesInput(t *testing.T) {
	svc := NewAuthService(newFakeBackend(), testValidator(), testLogger())

	message, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "<b>Ayu</b> Lestari",
		Email:    " AYU@UI.AC.ID ",
		Username: "ayu",
		NIM:      "2106123456",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	require.Equal(t, "Registrasi berhasil", message)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{FullName: "x", Email: "bad", Username: "x", NIM: "1", Password: "rahasia123"})
	require.Error(t, err)
}

func TestUserServiceCreateRecordsMaskedActivity(t *testing.T) {
	repo := &memoryActivityRepo{}
	fake := newFakeBackend()
	svc := NewUserService(fake, NewActivityService(repo, testLogger()), testValidator(), testLogger())

	user, err := svc.Create(context.Background(), adminActor, dto.UserRequest{
		FullName: "Dosen Satu",
		Email:    "dosen@ui.ac.id",
		Username: "dosen1",
		NIP:      "198701012015",
		Role:     "lecturer",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	require.Equal(t, "LECTURER", user.Role)

	require.Len(t, repo.entries, 1)
	require.Equal(t, "user.created", repo.entries[0].Action)
	require.Equal(t, "adm-1", repo.entries[0].ActorID)
	require.Equal(t, "***", repo.entries[0].Metadata["password"])
}

func TestUserServiceRejectsSelfDelete(t *testing.T) {
	svc := NewUserService(newFakeBackend(), nil, testValidator(), testLogger())

	require.ErrorIs(t, svc.Delete(context.Background(), adminActor, adminActor.ID), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), adminActor, "u-2"))
}

func TestCourseServiceUpdateFallsBackToPathKode(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := NewCourseService(newFakeBackend(), NewActivityService(repo, testLogger()), testValidator(), testLogger())

	course, err := svc.Update(context.Background(), adminActor, "cs101", dto.CourseRequest{Nama: "<i>Basis</i> Data"})
	require.NoError(t, err)
	require.Equal(t, "Basis Data", course.Nama)
	require.Equal(t, "course.updated", repo.entries[0].Action)
}
