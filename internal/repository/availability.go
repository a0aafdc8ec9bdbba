package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rulezero/playerconnector/internal/database"
	"github.com/rulezero/playerconnector/internal/model"
)

// AvailabilityRepository handles availability data access
type AvailabilityRepository struct {
	db database.Database
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// newAvailabilityID mints a client-side record id. Minting the id up front
// lets the record creation and the owner's collection append travel in the
// same transaction.
func newAvailabilityID() string {
	return "availability:" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// CreateForUser creates an availability record and appends it to the owning
// user's collection in a single transaction. The minted id is written back
// to availability.ID before execution.
func (r *AvailabilityRepository) CreateForUser(ctx context.Context, userID string, availability *model.Availability) error {
	availability.ID = newAvailabilityID()

	batch := database.NewAtomicBatch()
	batch.Add(`
		CREATE type::record($id) CONTENT {
			day_of_week: $day_of_week,
			start_time: $start_time,
			end_time: $end_time
		}
	`, map[string]interface{}{
		"id":          availability.ID,
		"day_of_week": availability.DayOfWeek,
		"start_time":  availability.StartTime,
		"end_time":    availability.EndTime,
	})
	batch.Add(`UPDATE type::record($user_id) SET availabilities += $availability_id`, map[string]interface{}{
		"user_id":         userID,
		"availability_id": availability.ID,
	})

	return batch.Execute(ctx, r.db)
}

// GetByID retrieves an availability by ID. Returns nil (no error) when the
// record does not exist.
func (r *AvailabilityRepository) GetByID(ctx context.Context, id string) (*model.Availability, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	availability, err := parseAvailabilityResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return availability, nil
}

// GetByIDs retrieves the given availability records, preserving the order
// of the input ids. Ids that no longer resolve are skipped.
func (r *AvailabilityRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Availability, error) {
	availabilities := make([]*model.Availability, 0, len(ids))
	for _, id := range ids {
		availability, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if availability == nil {
			continue
		}
		availabilities = append(availabilities, availability)
	}
	return availabilities, nil
}

// GetAll retrieves all availability records
func (r *AvailabilityRepository) GetAll(ctx context.Context) ([]*model.Availability, error) {
	results, err := r.db.Query(ctx, `SELECT * FROM availability`, nil)
	if err != nil {
		return nil, err
	}

	records := unwrapResults(results)
	availabilities := make([]*model.Availability, 0, len(records))
	for _, data := range records {
		availability, err := parseAvailabilityData(data)
		if err != nil {
			return nil, fmt.Errorf("parse availability record: %w", err)
		}
		availabilities = append(availabilities, availability)
	}
	return availabilities, nil
}

// Update overwrites all mutable fields of an availability record
func (r *AvailabilityRepository) Update(ctx context.Context, availability *model.Availability) error {
	query := `
		UPDATE type::record($id) SET
			day_of_week = $day_of_week,
			start_time = $start_time,
			end_time = $end_time
	`

	vars := map[string]interface{}{
		"id":          availability.ID,
		"day_of_week": availability.DayOfWeek,
		"start_time":  availability.StartTime,
		"end_time":    availability.EndTime,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete removes an availability record and blindly detaches it from any
// owning user's collection, without loading the owner. Both statements run
// in one transaction.
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`UPDATE user SET availabilities -= $availability_id`, map[string]interface{}{
		"availability_id": id,
	})
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": id})
	return batch.Execute(ctx, r.db)
}

func parseAvailabilityResult(result interface{}) (*model.Availability, error) {
	data, err := unwrapResult(result)
	if err != nil {
		return nil, err
	}
	return parseAvailabilityData(data)
}

func parseAvailabilityData(data map[string]interface{}) (*model.Availability, error) {
	var availability model.Availability
	if err := decodeRecord(data, nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}
