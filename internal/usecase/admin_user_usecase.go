package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
	"github.com/shiyas-dx/Project/internal/validator"
)

type AdminUserUsecase struct {
	tx     repo.TransactionManager
	users  repo.UserRepository
	orders repo.OrderRepository
	items  repo.OrderItemRepository
}

func NewAdminUserUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
) *AdminUserUsecase {
	return &AdminUserUsecase{tx: tx, users: users, orders: orders, items: items}
}

type AdminUserOutput struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Blocked   bool   `json:"blocked"`
}

type ToggleBlockOutput struct {
	ID      int64  `json:"id"`
	Blocked bool   `json:"blocked"`
	Detail  string `json:"detail"`
}

// EditUserInput applies only the fields that are set.
type EditUserInput struct {
	FirstName *string
	Username  *string
	Email     *string
}

func (u *AdminUserUsecase) List(ctx context.Context) ([]AdminUserOutput, error) {
	users, err := u.users.ListNewestFirst(ctx)
	if err != nil {
		return []AdminUserOutput{}, NewInternalError("db error", err)
	}
	out := make([]AdminUserOutput, 0, len(users))
	for _, usr := range users {
		out = append(out, toAdminUserOutput(usr))
	}
	return out, nil
}

// ToggleBlock flips the target's active flag. Blocking also drops the user's
// refresh tokens and invalidates issued access tokens.
func (u *AdminUserUsecase) ToggleBlock(ctx context.Context, adminUserID int64, targetID int64) (ToggleBlockOutput, error) {
	var out ToggleBlockOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		target, err := r.Users().FindByID(ctx, targetID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		if err != nil {
			return NewInternalError("db error", err)
		}
		if target.ID == adminUserID {
			return NewHTTPError(http.StatusForbidden, "You cannot block yourself.")
		}
		if target.IsSuperuser {
			return NewHTTPError(http.StatusForbidden, "You cannot block a Superuser.")
		}

		nowActive := !target.IsActive
		if err := r.Users().SetActive(ctx, target.ID, nowActive); err != nil {
			return NewInternalError("db error", err)
		}

		action := model.AuditActionUnblockUser
		if !nowActive {
			action = model.AuditActionBlockUser
			if err := r.RefreshTokens().DeleteAllByUserID(ctx, target.ID); err != nil {
				return NewInternalError("db error", err)
			}
			if err := r.Users().IncrementTokenVersion(ctx, target.ID); err != nil {
				return NewInternalError("db error", err)
			}
		}

		out = ToggleBlockOutput{ID: target.ID, Blocked: !nowActive, Detail: "User is now active"}
		if out.Blocked {
			out.Detail = "User is now blocked"
		}

		return writeAudit(ctx, r, adminUserID, action, model.AuditResourceUser, target.ID,
			map[string]interface{}{"is_active": target.IsActive},
			map[string]interface{}{"is_active": nowActive},
		)
	})
	if err != nil {
		return ToggleBlockOutput{}, err
	}
	return out, nil
}

func (u *AdminUserUsecase) Edit(ctx context.Context, adminUserID int64, targetID int64, in EditUserInput) (AdminUserOutput, error) {
	var out AdminUserOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		target, err := r.Users().FindByID(ctx, targetID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		if err != nil {
			return NewInternalError("db error", err)
		}
		if target.IsSuperuser {
			return NewHTTPError(http.StatusForbidden, "You cannot edit a superuser.")
		}

		before := userSnapshot(*target)
		fields := map[string]string{}

		if in.FirstName != nil {
			target.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.Email != nil {
			email := strings.TrimSpace(*in.Email)
			if email != "" && !validator.IsEmail(email) {
				fields["email"] = "Enter a valid email address."
			} else {
				target.Email = email
			}
		}
		if in.Username != nil {
			username := strings.TrimSpace(*in.Username)
			if err := validator.ValidateUsername(username); err != nil {
				fields["username"] = err.Error()
			} else if username != target.Username {
				taken, err := r.Users().ExistsByUsername(ctx, username, target.ID)
				if err != nil {
					return NewInternalError("db error", err)
				}
				if taken {
					fields["username"] = "A user with that username already exists."
				} else {
					target.Username = username
				}
			}
		}
		if len(fields) > 0 {
			return NewValidationError("validation error", fields)
		}

		if err := r.Users().Update(ctx, target); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return NewValidationError("validation error", map[string]string{
					"username": "A user with that username already exists.",
				})
			}
			return NewInternalError("db error", err)
		}

		out = toAdminUserOutput(*target)
		return writeAudit(ctx, r, adminUserID, model.AuditActionEditUser, model.AuditResourceUser, target.ID, before, userSnapshot(*target))
	})
	if err != nil {
		return AdminUserOutput{}, err
	}
	return out, nil
}

// ListOrders returns the target's orders newest-first.
func (u *AdminUserUsecase) ListOrders(ctx context.Context, targetID int64) ([]OrderOutput, error) {
	_, err := u.users.FindByID(ctx, targetID)
	if errors.Is(err, repo.ErrNotFound) {
		return []OrderOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return []OrderOutput{}, NewInternalError("db error", err)
	}
	return listOrdersWithItems(ctx, u.orders, u.items, targetID)
}

func toAdminUserOutput(usr model.User) AdminUserOutput {
	return AdminUserOutput{
		ID:        usr.ID,
		FirstName: usr.FirstName,
		Username:  usr.Username,
		Email:     usr.Email,
		Blocked:   !usr.IsActive,
	}
}

func userSnapshot(usr model.User) map[string]interface{} {
	return map[string]interface{}{
		"first_name": usr.FirstName,
		"username":   usr.Username,
		"email":      usr.Email,
	}
}
