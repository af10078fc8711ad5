package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studydash/internal/models"
)

const personColumns = `id, given_name, family_name, matriculation_number, birth_date, address`

// PersonRepository handles persistence for persons.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository creates a new repository instance.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// FindByID returns a person by id.
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*models.Person, error) {
	query := r.db.Rebind(`SELECT ` + personColumns + ` FROM persons WHERE id = ?`)
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		return nil, err
	}
	return &person, nil
}

// FindByMatriculation looks a person up by the natural key.
func (r *PersonRepository) FindByMatriculation(ctx context.Context, number string) (*models.Person, error) {
	query := r.db.Rebind(`SELECT ` + personColumns + ` FROM persons WHERE matriculation_number = ?`)
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, number); err != nil {
		return nil, err
	}
	return &person, nil
}

// Create persists a new person and assigns its id.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	const query = `INSERT INTO persons (given_name, family_name, matriculation_number, birth_date, address) VALUES (:given_name, :family_name, :matriculation_number, :birth_date, :address) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, person)
	if err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	person.ID = id
	return nil
}

// Update modifies a person.
func (r *PersonRepository) Update(ctx context.Context, person *models.Person) error {
	const query = `UPDATE persons SET given_name = :given_name, family_name = :family_name, matriculation_number = :matriculation_number, birth_date = :birth_date, address = :address WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}
