package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-directory/internal/api/dto"
	"github.com/spec-kit/staff-directory/internal/auth"
	"github.com/spec-kit/staff-directory/internal/domain"
	"github.com/spec-kit/staff-directory/internal/service"
	apperrors "github.com/spec-kit/staff-directory/pkg/util"
)

// StaffHandler exposes the account lifecycle over HTTP.
type StaffHandler struct {
	staffService *service.StaffService
	throttle     *auth.LoginThrottle
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService, throttle *auth.LoginThrottle) *StaffHandler {
	return &StaffHandler{staffService: staffService, throttle: throttle}
}

// Register handles POST /staff.
func (h *StaffHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.staffService.Register(c.UserContext(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Secret:    req.Password,
		Email:     req.Email,
		AddressID: req.AddressID,
		StoreID:   req.StoreID,
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"staff": dto.FromAccount(account)},
	})
}

// Login handles POST /staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	ctx := c.UserContext()
	if !h.throttle.Allow(ctx, req.Username) {
		return apperrors.NewDomainError("TOO_MANY_ATTEMPTS", "too many failed login attempts", http.StatusTooManyRequests, nil)
	}

	account, err := h.staffService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.throttle.RecordFailure(ctx, req.Username)
		}
		return apperrors.MapError(err)
	}
	h.throttle.Reset(ctx, req.Username)

	return c.JSON(fiber.Map{
		"data": fiber.Map{"staff": dto.FromAccount(account)},
	})
}

// ChangePassword handles POST /staff/password/change.
func (h *StaffHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("username, old and new password required", nil)
	}

	if err := h.staffService.RotateCredential(c.UserContext(), req.Username, req.OldPassword, req.NewPassword); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

// Get handles GET /staff/:username.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	account, err := h.staffService.FindByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"staff": dto.FromAccount(account)}})
}

// ModifyField handles PATCH /staff/:id.
func (h *StaffHandler) ModifyField(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("staff id must be an integer", nil)
	}

	var req dto.ModifyFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Field == "" {
		return apperrors.NewValidationError("field required", nil)
	}

	account, err := h.staffService.ModifyField(c.UserContext(), id, req.Field, req.Value)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"staff": dto.FromAccount(account)}})
}

// Delete handles DELETE /staff/:username. The operation is irreversible, so
// the payload must echo the username of the account being removed.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	username := c.Params("username")

	var req dto.DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ConfirmUsername != username {
		return apperrors.NewValidationError("confirm_username must match the account being deleted", map[string]any{
			"username": username,
		})
	}

	if err := h.staffService.Delete(c.UserContext(), username); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted", "username": username}})
}
