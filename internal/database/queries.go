package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition is returned when a lost item is moved to a status its
// current status does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

const lostItemColumns = "id, reference_id, name, description, image_url, status, found_by, " +
	"dropped_off_by, found_in, claimed_by, collected_by, dropped_off_at, category_id, created_at, updated_at"

func scanLostItem(row interface{ Scan(...any) error }) (LostItem, error) {
	var item LostItem
	err := row.Scan(
		&item.Id,
		&item.ReferenceId,
		&item.Name,
		&item.Description,
		&item.ImageUrl,
		&item.Status,
		&item.FoundBy,
		&item.DroppedOffBy,
		&item.FoundIn,
		&item.ClaimedBy,
		&item.CollectedBy,
		&item.DroppedOffAt,
		&item.CategoryId,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	return item, err
}

func (db *PgLostFoundRepository) CreateUser(params CreateUserParams) (User, error) {
	now := time.Now().UTC()
	res := db.queryRow(
		"INSERT INTO users (id, role_id, first_name, last_name, email, password_hash, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) "+
			"RETURNING id, role_id, first_name, last_name, email, created_at, updated_at",
		params.Id,
		params.RoleId,
		params.FirstName,
		params.LastName,
		params.EmailAddress,
		params.PasswordHash,
		now,
		now,
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.RoleId,
		&u.FirstName,
		&u.LastName,
		&u.EmailAddress,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgLostFoundRepository) GetUserById(id string) (User, error) {
	row := db.queryRow(
		"SELECT id, role_id, first_name, last_name, email, password_hash, created_at, updated_at "+
			"FROM users WHERE id = $1 LIMIT 1",
		id,
	)

	var u User
	err := row.Scan(
		&u.Id,
		&u.RoleId,
		&u.FirstName,
		&u.LastName,
		&u.EmailAddress,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgLostFoundRepository) GetUserByEmail(email string) (User, error) {
	row := db.queryRow(
		"SELECT id, role_id, first_name, last_name, email, password_hash, created_at, updated_at "+
			"FROM users WHERE email = $1 LIMIT 1",
		email,
	)

	var u User
	err := row.Scan(
		&u.Id,
		&u.RoleId,
		&u.FirstName,
		&u.LastName,
		&u.EmailAddress,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgLostFoundRepository) CountUsers() (int, error) {
	var count int
	err := db.queryRow("SELECT COUNT(*) FROM users").Scan(&count)

	return count, err
}

func (db *PgLostFoundRepository) ListRoles() ([]Role, error) {
	rows, err := db.query("SELECT id, name FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err = rows.Scan(&role.Id, &role.Name); err != nil {
			return nil, err
		}

		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (db *PgLostFoundRepository) ListCategories() ([]ItemCategory, error) {
	rows, err := db.query("SELECT id, name FROM item_categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []ItemCategory
	for rows.Next() {
		var category ItemCategory
		if err = rows.Scan(&category.Id, &category.Name); err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (db *PgLostFoundRepository) CreateLostItem(params CreateLostItemParams) (LostItem, error) {
	var droppedOffBy sql.NullString
	if params.DroppedOffBy != "" {
		droppedOffBy = sql.NullString{String: params.DroppedOffBy, Valid: true}
	}

	now := time.Now().UTC()
	res := db.queryRow(
		"INSERT INTO lost_items (reference_id, name, description, image_url, status, found_by, "+
			"dropped_off_by, found_in, dropped_off_at, category_id, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) "+
			"RETURNING "+lostItemColumns,
		params.ReferenceId,
		params.Name,
		params.Description,
		params.ImageUrl,
		StatusDroppedOff,
		params.FoundBy,
		droppedOffBy,
		params.FoundIn,
		params.DroppedOffAt,
		params.CategoryId,
		now,
		now,
	)

	return scanLostItem(res)
}

func (db *PgLostFoundRepository) GetLostItemByReference(referenceId string) (LostItem, error) {
	row := db.queryRow(
		"SELECT "+lostItemColumns+" FROM lost_items WHERE reference_id = $1 LIMIT 1",
		referenceId,
	)

	return scanLostItem(row)
}

func (db *PgLostFoundRepository) ListLostItems(status ItemStatus) ([]LostItem, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if status != "" {
		rows, err = db.query(
			"SELECT "+lostItemColumns+" FROM lost_items WHERE status = $1 ORDER BY created_at DESC",
			status,
		)
	} else {
		rows, err = db.query("SELECT " + lostItemColumns + " FROM lost_items ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LostItem
	for rows.Next() {
		item, err := scanLostItem(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (db *PgLostFoundRepository) ClaimLostItem(referenceId, userId string) (LostItem, error) {
	return db.transitionLostItem(referenceId, userId, StatusClaimed, "claimed_by")
}

func (db *PgLostFoundRepository) CollectLostItem(referenceId, userId string) (LostItem, error) {
	return db.transitionLostItem(referenceId, userId, StatusCollected, "collected_by")
}

// transitionLostItem advances an item's status inside one transaction. The
// current row is locked so a concurrent claim cannot race past the status
// check. updated_at is refreshed here, never automatically.
func (db *PgLostFoundRepository) transitionLostItem(referenceId, userId string, next ItemStatus, actorColumn string) (LostItem, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return LostItem{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var (
		id      int
		current ItemStatus
	)
	err = tx.QueryRow(
		"SELECT id, status FROM lost_items WHERE reference_id = $1 FOR UPDATE",
		referenceId,
	).Scan(&id, &current)
	if err != nil {
		return LostItem{}, err
	}

	if !current.CanTransitionTo(next) {
		err = fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
		return LostItem{}, err
	}

	row := tx.QueryRow(
		"UPDATE lost_items SET status = $2, "+actorColumn+" = $3, updated_at = $4 "+
			"WHERE id = $1 RETURNING "+lostItemColumns,
		id,
		next,
		userId,
		time.Now().UTC(),
	)

	var item LostItem
	item, err = scanLostItem(row)
	if err != nil {
		return LostItem{}, err
	}

	if err = tx.Commit(); err != nil {
		return LostItem{}, err
	}

	return item, nil
}
