package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bigexperiment/youtube-transcript-Api/models"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(models.ErrorResponse{Error: message})
}

// RespondWithUsage sends a 400 that also tells the caller how to call the endpoint.
func RespondWithUsage(c *fiber.Ctx, message, usage string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: message, Usage: usage})
}

// RespondWithUnavailable sends the 500 for a transcript that could not be
// retrieved by any strategy.
func RespondWithUnavailable(c *fiber.Ctx, message, note string, suggestions []string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error:       message,
		Note:        note,
		Suggestions: suggestions,
	})
}

// RespondWithJSON sends data as the JSON response body.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var messages []string
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			messages = append(messages, err.Error())
		}
		return messages
	}
	for _, fe := range verrs {
		element := fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			element = fmt.Sprintf("%s (value: %s)", element, fe.Param())
		}
		messages = append(messages, element)
	}
	return messages
}

// SanitizeInput trims surrounding whitespace from caller input.
func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
