package server

import (
	"medlex/internal/middleware"
	"medlex/internal/models"
	"medlex/internal/service"

	"github.com/gofiber/fiber/v2"
)

type wordChangeRequest struct {
	Word         string `json:"word"`
	Definition   string `json:"definition"`
	Phonetics    string `json:"phonetics"`
	PartOfSpeech string `json:"part_of_speech"`
}

// LookupWord handles GET /medical-dictionary?word=
func (s *Server) LookupWord(c *fiber.Ctx) error {
	word := c.Query("word")
	if word == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Query parameter 'word' is required"))
	}

	entry, err := s.dictService.Lookup(c.Context(), word)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(entry)
}

// GetMatchingWords handles GET /medical-dictionary/get-matching-words?str=&limit=
func (s *Server) GetMatchingWords(c *fiber.Ctx) error {
	str := c.Query("str")
	if str == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Query parameter 'str' is required"))
	}
	limit := c.QueryInt("limit", 10)

	words, err := s.dictService.SearchPrefix(c.Context(), str, limit)
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Matching words fetched successfully",
		"count":   len(words),
		"words":   words,
	})
}

// AddWord handles POST /medical-dictionary/add
func (s *Server) AddWord(c *fiber.Ctx) error {
	return s.submitWordChange(c, fiber.StatusCreated)
}

// UpdateWord handles PATCH /medical-dictionary/update
func (s *Server) UpdateWord(c *fiber.Ctx) error {
	return s.submitWordChange(c, fiber.StatusOK)
}

func (s *Server) submitWordChange(c *fiber.Ctx, successStatus int) error {
	var req wordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	callerID, role := callerIdentity(c)
	result, err := s.dictService.SubmitChange(c.Context(), callerID, role, service.SubmitChangeInput{
		Term:         req.Word,
		Definition:   req.Definition,
		Phonetics:    req.Phonetics,
		PartOfSpeech: req.PartOfSpeech,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	message := "Update request submitted for review"
	outcome := "queued"
	if result.Applied {
		message = "Word added/updated successfully"
		outcome = "applied"
	}
	middleware.ModerationDecisions.WithLabelValues("change", outcome).Inc()

	return c.Status(successStatus).JSON(fiber.Map{
		"message": message,
		"result":  result,
	})
}

// DeleteWord handles DELETE /medical-dictionary
func (s *Server) DeleteWord(c *fiber.Ctx) error {
	var req struct {
		Word string `json:"word"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Word == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Word is required"))
	}

	callerID, role := callerIdentity(c)
	result, err := s.dictService.SubmitDelete(c.Context(), callerID, role, req.Word)
	if err != nil {
		return models.Respond(c, err)
	}

	outcome := "queued"
	if result.Applied {
		outcome = "applied"
	}
	middleware.ModerationDecisions.WithLabelValues("delete", outcome).Inc()

	return c.JSON(fiber.Map{"message": result.Message})
}

// GetAddUpdateWordRequests handles GET /medical-dictionary/add-update-word-requests
func (s *Server) GetAddUpdateWordRequests(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	requests, err := s.dictService.ListUpdateRequests(c.Context(), p.Limit, p.Skip)
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Fetched dictionary word add/update requests successfully",
		"count":    len(requests),
		"requests": requests,
	})
}

// GetDeleteWordRequests handles GET /medical-dictionary/delete-word-requests
func (s *Server) GetDeleteWordRequests(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	requests, err := s.dictService.ListDeleteRequests(c.Context(), p.Limit, p.Skip)
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Delete word requests fetched successfully",
		"count":    len(requests),
		"requests": requests,
	})
}
