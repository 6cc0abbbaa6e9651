package handlers

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/ui"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

const flashCookie = "sd_toast"

// visitorID returns the id assigned by the visitor middleware.
func visitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(observability.VisitorLocalKey).(string)
	return id
}

func paramID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func setFlash(c *fiber.Ctx, message string, severity ui.Severity) {
	data, err := json.Marshal(ui.Toast{Message: message, Severity: severity})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func takeFlash(c *fiber.Ctx) *ui.Toast {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.ClearCookie(flashCookie)
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	var toast ui.Toast
	if err := json.Unmarshal([]byte(decoded), &toast); err != nil {
		return nil
	}
	return &toast
}
