// Package seed pre-populates the reference tables (roles, item categories,
// drop-off locations, rooms). Seeding is idempotent: entries are inserted
// only when no row with the same natural key exists, so repeated runs never
// duplicate rows.
package seed

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/campusops/lostfound/internal/database"
)

//go:embed data/*.csv
var dataFiles embed.FS

var userRoles = []string{"student", "staff", "admin"}

var itemCategories = []string{
	"Electronics",
	"Clothing",
	"Books & Stationery",
	"Keys",
	"ID & Cards",
	"Bags & Wallets",
	"Sports Equipment",
	"Jewelry",
	"Other",
}

// UserRoles returns the known role names.
func UserRoles() []string {
	roles := make([]string, len(userRoles))
	copy(roles, userRoles)
	return roles
}

// Store is the subset of the repository the seeder needs. Each Insert call
// is expected to commit its batch in a single transaction.
type Store interface {
	RoleNames() ([]string, error)
	InsertRoles(names []string) error
	CategoryNames() ([]string, error)
	InsertCategories(names []string) error
	DropOffLocationNames() ([]string, error)
	InsertDropOffLocations(locations []database.DropOffLocation) error
	RoomCodes() ([]string, error)
	InsertRooms(codes []string) error
}

// Run seeds all four reference datasets in a fixed order. The order carries
// no data dependency, it only keeps the logs stable.
func Run(logger *log.Logger, store Store) error {
	if err := seedRoles(logger, store); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if err := seedCategories(logger, store); err != nil {
		return fmt.Errorf("seed item categories: %w", err)
	}
	if err := seedDropOffLocations(logger, store); err != nil {
		return fmt.Errorf("seed drop-off locations: %w", err)
	}
	if err := seedRooms(logger, store); err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}

	logger.Println("reference tables pre-populated")
	return nil
}

func seedRoles(logger *log.Logger, store Store) error {
	existing, err := store.RoleNames()
	if err != nil {
		return err
	}

	missing := missingKeys(cleanKeys(logger, "role", userRoles), existing)
	if err := store.InsertRoles(missing); err != nil {
		return err
	}

	logger.Printf("user roles pre-populated (%d inserted)", len(missing))
	return nil
}

func seedCategories(logger *log.Logger, store Store) error {
	existing, err := store.CategoryNames()
	if err != nil {
		return err
	}

	missing := missingKeys(cleanKeys(logger, "item category", itemCategories), existing)
	if err := store.InsertCategories(missing); err != nil {
		return err
	}

	logger.Printf("item categories pre-populated (%d inserted)", len(missing))
	return nil
}

func seedDropOffLocations(logger *log.Logger, store Store) error {
	locations, err := loadDropOffLocations(logger)
	if err != nil {
		return err
	}

	existing, err := store.DropOffLocationNames()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(locations))
	byName := make(map[string]database.DropOffLocation, len(locations))
	for _, loc := range locations {
		names = append(names, loc.Name)
		byName[loc.Name] = loc
	}

	var missing []database.DropOffLocation
	for _, name := range missingKeys(names, existing) {
		missing = append(missing, byName[name])
	}

	if err := store.InsertDropOffLocations(missing); err != nil {
		return err
	}

	logger.Printf("drop-off locations pre-populated (%d inserted)", len(missing))
	return nil
}

func seedRooms(logger *log.Logger, store Store) error {
	codes, err := loadRoomCodes(logger)
	if err != nil {
		return err
	}

	existing, err := store.RoomCodes()
	if err != nil {
		return err
	}

	missing := missingKeys(codes, existing)
	if err := store.InsertRooms(missing); err != nil {
		return err
	}

	logger.Printf("rooms pre-populated (%d inserted)", len(missing))
	return nil
}

// missingKeys returns desired keys absent from existing, preserving the
// order of desired. Pure, so idempotence is testable without a store.
func missingKeys(desired, existing []string) []string {
	present := make(map[string]struct{}, len(existing))
	for _, key := range existing {
		present[key] = struct{}{}
	}

	var missing []string
	for _, key := range desired {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
			present[key] = struct{}{}
		}
	}

	return missing
}

// cleanKeys trims keys and drops empty ones with a warning.
func cleanKeys(logger *log.Logger, kind string, keys []string) []string {
	var cleaned []string
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			logger.Printf("warning: skipping %s with empty name", kind)
			continue
		}

		cleaned = append(cleaned, key)
	}

	return cleaned
}

func loadDropOffLocations(logger *log.Logger) ([]database.DropOffLocation, error) {
	records, err := readCSV("data/drop_off_locations.csv")
	if err != nil {
		return nil, err
	}

	var locations []database.DropOffLocation
	for _, record := range records {
		name := strings.TrimSpace(record["name"])
		if name == "" {
			logger.Println("warning: skipping drop-off location with empty name")
			continue
		}

		locations = append(locations, database.DropOffLocation{
			Name:        name,
			Description: strings.TrimSpace(record["description"]),
		})
	}

	return locations, nil
}

func loadRoomCodes(logger *log.Logger) ([]string, error) {
	records, err := readCSV("data/rooms.csv")
	if err != nil {
		return nil, err
	}

	var codes []string
	for _, record := range records {
		code := strings.TrimSpace(record["room code"])
		if code == "" {
			logger.Println("warning: skipping room with empty code")
			continue
		}

		codes = append(codes, code)
	}

	return codes, nil
}

// readCSV parses an embedded reference file into header-keyed records.
func readCSV(path string) ([]map[string]string, error) {
	f, err := dataFiles.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}

	var records []map[string]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[strings.TrimSpace(col)] = row[i]
			}
		}

		records = append(records, record)
	}

	return records, nil
}
