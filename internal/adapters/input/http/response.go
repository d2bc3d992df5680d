package http

import (
	"errors"
	"net/http"

	"mock-interview/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// Created response
	Created = Status{Code: http.StatusCreated, Message: []string{"Created"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Data not found"}}
	// ConFlict response
	ConFlict = Status{Code: http.StatusConflict, Message: []string{"Sorry, Data is conflict"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Sorry, Service is temporarily unavailable. Please try again"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status    Status      `json:"status,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

func withMessage(status Status, messages ...string) Status {
	status.Message = append([]string{}, messages...)
	return status
}

// respondError maps pipeline errors onto HTTP statuses
func respondError(c *fiber.Ctx, err error) error {
	var (
		status    Status
		retryable bool
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = withMessage(BadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		status = withMessage(NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrNoAnswers):
		status = withMessage(ConFlict, err.Error())
	case errors.Is(err, domain.ErrExhaustedFallback):
		status = withMessage(ServiceUnavailable, err.Error())
		retryable = true
	case errors.Is(err, domain.ErrTransientProvider):
		status = withMessage(ServiceUnavailable, err.Error())
		retryable = true
	case errors.Is(err, domain.ErrPermanentProvider):
		status = withMessage(Status{Code: http.StatusBadGateway}, err.Error())
	default:
		logrus.Errorln(err)
		status = InternalServerError
	}
	return c.Status(status.Code).JSON(ResponseBody{Status: status, Retryable: retryable})
}

// QuestionResponse struct - HTTP response DTO
type QuestionResponse struct {
	Question string `json:"question"`
}
