package store

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"

	"github.com/bloodcare/bloodcare/auth"
)

// RegisterAccountMessage carries everything needed to open a new member
// account with its donor profile.
type RegisterAccountMessage struct {
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	Gender      string     `json:"gender"`
	City        string     `json:"city"`
	District    string     `json:"district"`
	Ward        string     `json:"ward"`
	Street      string     `json:"street"`
	BloodType   string     `json:"blood_type"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	UseHashid   bool       `json:"-"`
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

// RegisterAccountHandler opens the account and its profile in a single
// transaction. New registrations always start as active members.
type RegisterAccountHandler struct {
	repo RepositoryManager
}

func NewRegisterAccountHandler(repo RepositoryManager) *RegisterAccountHandler {
	return &RegisterAccountHandler{repo: repo}
}

func (h *RegisterAccountHandler) Execute(ctx context.Context, event RegisterAccountMessage) (*Account, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterAccountHandler) execute(ctx context.Context, event RegisterAccountMessage) (*Account, error) {
	account := &Account{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	username := getUsername(event.Username, event.Email)

	if taken, err := h.repo.Accounts().ExistsByUsername(ctx, username); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username availability")
	} else if taken {
		return nil, goerrors.New("Username is already taken", goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict)
	}

	if taken, err := h.repo.Accounts().ExistsByEmail(ctx, event.Email); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email availability")
	} else if taken {
		return nil, goerrors.New("Email is already in use", goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict)
	}

	phone, err := NormalizePhone(event.Phone)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid phone number")
	}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := auth.HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		account.PasswordHash = hash
		account.Username = username
		account.Email = event.Email
		account.Active = true
		account.Role = auth.RoleMember
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				account.ID = id
			}
		}

		if account, err = h.repo.Accounts().CreateTx(ctx, tx, account); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create account")
		}

		profile := &Profile{
			AccountID:   account.ID,
			FullName:    event.FullName,
			Phone:       phone,
			Gender:      event.Gender,
			City:        event.City,
			District:    event.District,
			Ward:        event.Ward,
			Street:      event.Street,
			BloodType:   event.BloodType,
			DateOfBirth: event.DateOfBirth,
		}

		if _, err = h.repo.Profiles().CreateTx(ctx, tx, profile); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create donor profile")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "account registration transaction failed")
	}

	return account, nil
}

func getUsername(username, email string) string {
	if username != "" {
		return username
	}

	if strings.Contains(email, "@") {
		username = strings.Split(email, "@")[0]
	}

	return username
}
