package presenters

import (
	"fmt"

	"leftunder/domain"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse degrades any failure to the {success:false, message} envelope.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return c.Status(status).JSON(domain.BaseResponse{
		Success: false,
		Message: message,
	})
}
