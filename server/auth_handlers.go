package server

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/bloodcare/bloodcare/store"
)

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// GetIdentifier returns the login identifier; the field accepts a username
// or an email address.
func (r LoginRequest) GetIdentifier() string {
	return r.Username
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid login payload")
	}

	// both outcomes answer with the same shape: a null token plus the
	// rejection reason, or the issued token with its account fields
	result := s.auther.Login(c.UserContext(), payload.GetIdentifier(), payload.GetPassword())
	if !result.Succeeded() {
		return c.Status(fiber.StatusUnauthorized).JSON(result)
	}

	return c.JSON(result)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	scheme := s.cfg.GetAuthScheme() + " "

	if header == "" || !strings.HasPrefix(header, scheme) {
		return c.Status(fiber.StatusBadRequest).SendString("Logout failed")
	}

	return c.SendString(s.auther.Logout(strings.TrimSpace(strings.TrimPrefix(header, scheme))))
}

// handleValidate answers with a bare boolean. The check is advisory: it
// never rejects the request, even for garbage tokens.
func (s *Server) handleValidate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	scheme := s.cfg.GetAuthScheme() + " "

	token := ""
	if strings.HasPrefix(header, scheme) {
		token = strings.TrimSpace(strings.TrimPrefix(header, scheme))
	}

	return c.JSON(s.auther.Validate(token))
}

// RegisterRequest is the registration form payload
type RegisterRequest struct {
	Username        string     `form:"username" json:"username"`
	Email           string     `form:"email" json:"email"`
	Password        string     `form:"password" json:"password"`
	ConfirmPassword string     `form:"confirm_password" json:"confirm_password"`
	FullName        string     `form:"full_name" json:"full_name"`
	Phone           string     `form:"phone_number" json:"phone_number"`
	Gender          string     `form:"gender" json:"gender"`
	City            string     `form:"city" json:"city"`
	District        string     `form:"district" json:"district"`
	Ward            string     `form:"ward" json:"ward"`
	Street          string     `form:"street" json:"street"`
	BloodType       string     `form:"blood_type" json:"blood_type"`
	DateOfBirth     *time.Time `form:"date_of_birth" json:"date_of_birth"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Username, validation.Length(3, 100)),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.Length(9, 16)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(validateStringEquals(r.Password)),
		),
	)
}

func validateStringEquals(expected string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != expected {
			return goerrors.New("passwords do not match", goerrors.CategoryValidation)
		}
		return nil
	}
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid registration payload")
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
	}

	account, err := store.NewRegisterAccountHandler(s.repo).Execute(c.UserContext(), store.RegisterAccountMessage{
		Username:    payload.Username,
		Email:       payload.Email,
		Password:    payload.Password,
		FullName:    payload.FullName,
		Phone:       payload.Phone,
		Gender:      payload.Gender,
		City:        payload.City,
		District:    payload.District,
		Ward:        payload.Ward,
		Street:      payload.Street,
		BloodType:   payload.BloodType,
		DateOfBirth: payload.DateOfBirth,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(ApiResponse{
		Success: true,
		Message: "Account registered successfully",
		Data: fiber.Map{
			"id":           account.ID,
			"account_code": account.AccountCode,
			"username":     account.Username,
			"email":        account.Email,
		},
	})
}
