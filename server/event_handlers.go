package server

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/bloodcare/bloodcare/store"
)

// EventPayload is the create/update body for donation events
type EventPayload struct {
	Name        string     `form:"name" json:"name"`
	Description string     `form:"description" json:"description"`
	Location    string     `form:"location" json:"location"`
	StartAt     *time.Time `form:"start_at" json:"start_at"`
	EndAt       *time.Time `form:"end_at" json:"end_at"`
	Capacity    int        `form:"capacity" json:"capacity"`
	Status      string     `form:"status" json:"status"`
}

// Validate will run validation rules
func (p EventPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Location, validation.Required, validation.Length(1, 300)),
		validation.Field(&p.Capacity, validation.Min(0)),
		validation.Field(&p.Status, validation.In(
			store.EventStatusUpcoming,
			store.EventStatusOngoing,
			store.EventStatusClosed,
		)),
	)
}

func (s *Server) handleListEvents(c *fiber.Ctx) error {
	records, err := s.repo.Events().List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "OK",
		Data:    records,
	})
}

func (s *Server) handleGetEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.New("Invalid event id", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	record, err := s.repo.Events().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "OK",
		Data:    record,
	})
}

func (s *Server) handleCreateEvent(c *fiber.Ctx) error {
	payload := new(EventPayload)

	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid event payload")
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
	}

	record, err := s.repo.Events().Create(c.UserContext(), &store.DonationEvent{
		Name:        payload.Name,
		Description: payload.Description,
		Location:    payload.Location,
		StartAt:     payload.StartAt,
		EndAt:       payload.EndAt,
		Capacity:    payload.Capacity,
		Status:      payload.Status,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(ApiResponse{
		Success: true,
		Message: "Event created",
		Data:    record,
	})
}

func (s *Server) handleUpdateEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.New("Invalid event id", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	payload := new(EventPayload)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid event payload")
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
	}

	// existence check keeps update-of-missing-event a clean 404
	if _, err := s.repo.Events().GetByID(c.UserContext(), id); err != nil {
		return err
	}

	record, err := s.repo.Events().Update(c.UserContext(), &store.DonationEvent{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Location:    payload.Location,
		StartAt:     payload.StartAt,
		EndAt:       payload.EndAt,
		Capacity:    payload.Capacity,
		Status:      payload.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "Event updated",
		Data:    record,
	})
}

func (s *Server) handleDeleteEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.New("Invalid event id", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	if err := s.repo.Events().Remove(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "Event deleted",
	})
}
