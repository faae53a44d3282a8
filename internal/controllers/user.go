package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/services"
	"maintenance-portal/pkg/formstate"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

// UserController - раздел администратора; RequireStaff стоит на группе маршрутов,
// сервис проверяет права повторно.
type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (ctrl *UserController) spec() listSpec[entities.User] {
	return listSpec[entities.User]{
		Title:    "Utilisateurs",
		BasePath: "/users",
		NewURL:   "/users/new",
		Facets:   services.UserFacets(),
		Table:    services.UserTable(),
	}
}

func (ctrl *UserController) GetUsers(c echo.Context) error {
	return renderList(c, ctrl.userService.GetUsers(c.Request().Context()), ctrl.spec())
}

func (ctrl *UserController) ExportUsers(c echo.Context) error {
	res := ctrl.userService.GetUsers(c.Request().Context())
	return exportList(c, res, ctrl.spec(), "utilisateurs.xlsx", middleware.FromContext(c, ctrl.logger))
}

func (ctrl *UserController) NewUser(c echo.Context) error {
	return c.Render(http.StatusOK, "user_form", newUserPage(formstate.New(dto.CreateUserDTO{})))
}

func (ctrl *UserController) CreateUser(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)

	var values dto.CreateUserDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(dto.CreateUserDTO{})
	err := submit(c, form, values, msgCreated, func() error {
		_, err := ctrl.userService.CreateUser(c.Request().Context(), form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase == formstate.Succeeded {
		return utils.RedirectWithFlash(c, "/users", form.Message)
	}
	// Пароль обратно в форму не отдаём.
	form.Values.Password = ""
	return c.Render(formStatus(form), "user_form", newUserPage(form))
}

func (ctrl *UserController) EditUser(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	u, err := ctrl.userService.FindUser(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err, logger)
	}
	form := formstate.New(dto.UpdateUserDTO{Username: u.Username, Email: u.Email, IsStaff: u.IsStaff})
	return c.Render(http.StatusOK, "user_form", editUserPage(form, id))
}

func (ctrl *UserController) UpdateUser(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}

	var values dto.UpdateUserDTO
	if err := c.Bind(&values); err != nil {
		return badRequest(c, err, logger)
	}

	form := formstate.New(dto.UpdateUserDTO{})
	err = submit(c, form, values, msgSaved, func() error {
		_, err := ctrl.userService.UpdateUser(c.Request().Context(), id, form.Values)
		return err
	})
	if err != nil {
		return handleError(c, err, logger)
	}
	if form.Phase == formstate.Succeeded {
		return utils.RedirectWithFlash(c, "/users", form.Message)
	}
	form.Values.Password = ""
	return c.Render(formStatus(form), "user_form", editUserPage(form, id))
}

func (ctrl *UserController) DeleteUser(c echo.Context) error {
	logger := middleware.FromContext(c, ctrl.logger)
	id, err := utils.ParseID(c)
	if err != nil {
		return handleError(c, err, logger)
	}
	if err := ctrl.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return handleError(c, err, logger)
	}
	return utils.RedirectWithFlash(c, "/users", msgDeleted)
}

func newUserPage(form *formstate.Form[dto.CreateUserDTO]) FormPage[dto.CreateUserDTO] {
	return FormPage[dto.CreateUserDTO]{Title: "Nouvel utilisateur", Action: "/users/new", Form: form}
}

func editUserPage(form *formstate.Form[dto.UpdateUserDTO], id int) FormPage[dto.UpdateUserDTO] {
	return FormPage[dto.UpdateUserDTO]{
		Title:     fmt.Sprintf("Utilisateur n°%d", id),
		Action:    fmt.Sprintf("/users/%d", id),
		DeleteURL: fmt.Sprintf("/users/%d/delete", id),
		Form:      form,
	}
}
