package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

const usersTable = "users"

var userColumns = []interface{}{
	"id", "email", "full_name", "password_hash", "role",
	"phone", "city", "avatar_url", "created_at", "updated_at",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	query, args, err := a.db.Insert(usersTable).Rows(goqu.Record{
		"id":            user.ID,
		"email":         user.Email,
		"full_name":     user.FullName,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"phone":         nullString(user.Phone),
		"city":          nullString(user.City),
		"avatar_url":    nullString(user.AvatarURL),
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.NewConflictError(fmt.Sprintf("email %s already registered", user.Email))
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getByField(ctx, "id", id)
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getByField(ctx, "email", email)
}

func (a *UserAdapter) getByField(ctx context.Context, field, value string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From(usersTable).
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	var phone, city, avatarURL sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.Role,
		&phone, &city, &avatarURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	user.Phone = phone.String
	user.City = city.String
	user.AvatarURL = avatarURL.String

	return user, nil
}

// Update updates a user profile
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now()

	query, args, err := a.db.Update(usersTable).
		Set(goqu.Record{
			"full_name":  user.FullName,
			"phone":      nullString(user.Phone),
			"city":       nullString(user.City),
			"avatar_url": nullString(user.AvatarURL),
			"updated_at": user.UpdatedAt,
		}).
		Where(goqu.Ex{"id": user.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update user", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("user with id %s not found", user.ID))
}

// UpdateRole changes the user's role
func (a *UserAdapter) UpdateRole(ctx context.Context, id string, role entities.Role) error {
	if !entities.ValidRole(role) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid role %q", role))
	}

	query, args, err := a.db.Update(usersTable).
		Set(goqu.Record{
			"role":       role,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build role query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update role", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("user with id %s not found", id))
}
