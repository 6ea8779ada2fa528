package database

// Queries backing the reference-data seeder. Each insert batch runs in its
// own transaction and is committed once.

func (db *PgLostFoundRepository) RoleNames() ([]string, error) {
	return db.stringColumn("SELECT name FROM roles")
}

func (db *PgLostFoundRepository) InsertRoles(names []string) error {
	return db.insertBatch("INSERT INTO roles (name) VALUES ($1)", names)
}

func (db *PgLostFoundRepository) CategoryNames() ([]string, error) {
	return db.stringColumn("SELECT name FROM item_categories")
}

func (db *PgLostFoundRepository) InsertCategories(names []string) error {
	return db.insertBatch("INSERT INTO item_categories (name) VALUES ($1)", names)
}

func (db *PgLostFoundRepository) DropOffLocationNames() ([]string, error) {
	return db.stringColumn("SELECT name FROM drop_off_locations")
}

func (db *PgLostFoundRepository) InsertDropOffLocations(locations []DropOffLocation) error {
	if len(locations) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, loc := range locations {
		_, err = tx.Exec(
			"INSERT INTO drop_off_locations (name, description) VALUES ($1, $2)",
			loc.Name,
			loc.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (db *PgLostFoundRepository) RoomCodes() ([]string, error) {
	return db.stringColumn("SELECT code FROM rooms")
}

func (db *PgLostFoundRepository) InsertRooms(codes []string) error {
	return db.insertBatch("INSERT INTO rooms (code) VALUES ($1)", codes)
}

func (db *PgLostFoundRepository) stringColumn(query string) ([]string, error) {
	rows, err := db.query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err = rows.Scan(&v); err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	return values, rows.Err()
}

func (db *PgLostFoundRepository) insertBatch(query string, values []string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	db.trace(query)
	for _, v := range values {
		if _, err = tx.Exec(query, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}
