package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-service/internal/api/dto"
	"github.com/spec-kit/social-service/internal/auth"
	"github.com/spec-kit/social-service/internal/domain"
	"github.com/spec-kit/social-service/internal/service"
	apperrors "github.com/spec-kit/social-service/pkg/util"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profileService}
}

// Get handles GET /api/profile/.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid token")
	}

	profile, err := h.profiles.Get(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": toProfileResponse(profile)})
}

// Update handles PATCH /api/profile/.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid token")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.profiles.Update(c.UserContext(), principal.User.ID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Interests: req.Interests,
		Location:  req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": toProfileResponse(profile)})
}

func toProfileResponse(profile *domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Bio:       profile.Bio,
		Interests: profile.Interests,
		Location:  profile.Location,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
