package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, avatar_url,
	role, status, is_verified, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row scanner) (*entity.User, error) {
	u := &entity.User{}
	var email string
	if err := row.Scan(&u.ID, &email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.AvatarURL, &u.Role, &u.Status, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	e, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	u.Email = e
	return u, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	if u.ID == "" {
		id := uuid.NewString()
		row := r.db.QueryRow(ctx, `
			INSERT INTO users (id, email, password_hash, first_name, last_name, phone, avatar_url, role, status, is_verified)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at
		`, id, u.Email.String(), u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.AvatarURL,
			string(u.Role), string(u.Status), u.IsVerified)
		if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		u.ID = id
		return u, nil
	}
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5, phone = $6,
		    avatar_url = $7, role = $8, status = $9, is_verified = $10, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, u.ID, u.Email.String(), u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.AvatarURL,
		string(u.Role), string(u.Status), u.IsVerified)
	if err := row.Scan(&u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.String()))
}

func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email.String())
}

func (r *UserRepository) List(ctx context.Context, p repository.Page) ([]*entity.User, int64, error) {
	p = p.Normalize()
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, p.Limit, p.Offset())
	users, err := collect(rows, err, scanUser)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM users WHERE id = $1`, id)
}

var _ repository.UserRepository = (*UserRepository)(nil)
