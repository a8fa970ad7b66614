package postgresql

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/rental"
)

type StaffRepo struct {
	db db.DB
}

func NewStaffRepo(db db.DB) rental.StaffRepository {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) CreateUser(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO staff_users (username, password) VALUES ($1, $2)",
		username, string(hashedPassword))
	return err
}

func (r *StaffRepo) ValidateUser(ctx context.Context, username, password string) (bool, error) {
	var hashedPassword string
	err := r.db.ExecQueryRow(ctx,
		"SELECT password FROM staff_users WHERE username = $1", username).Scan(&hashedPassword)
	if err != nil {
		return false, errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
