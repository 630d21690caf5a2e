package server

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/bloodcare/bloodcare/auth"
)

func (s *Server) handleProfile(c *fiber.Ctx) error {
	sc, ok := auth.SecurityContextFrom(c.UserContext())
	if !ok {
		return auth.ErrInsufficientAuthority
	}

	account, err := s.repo.Accounts().FindWithProfile(c.UserContext(), sc.Subject)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile")
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "OK",
		Data:    account,
	})
}

func (s *Server) handleListAccounts(c *fiber.Ctx) error {
	records, err := s.repo.Accounts().ListWithProfiles(c.UserContext())
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list accounts")
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "OK",
		Data:    records,
	})
}

func (s *Server) handleGetAccountProfile(c *fiber.Ctx) error {
	account, err := s.repo.Accounts().GetByIdentifier(c.UserContext(), c.Params("id"))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load account")
	}

	withProfile, err := s.repo.Accounts().FindWithProfile(c.UserContext(), account.Username)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile")
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "OK",
		Data:    withProfile.Profile,
	})
}

func (s *Server) handleGetAccount(c *fiber.Ctx) error {
	record, err := s.repo.Accounts().GetByIdentifier(c.UserContext(), c.Params("id"))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load account")
	}

	return c.JSON(ApiResponse{
		Success: true,
		Message: "OK",
		Data:    record,
	})
}
