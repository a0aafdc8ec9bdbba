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

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// userProjection selects the user row together with its game memberships,
// which live on plays edges rather than on the record itself.
const userProjection = `*, ->plays->game AS game_ids`

// newUserID mints a client-side record id. Minting the id up front lets the
// record creation and its membership RELATE statements travel in the same
// transaction.
func newUserID() string {
	return "user:" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Create creates a new user together with its initial game membership edges
// in a single transaction. The assigned id is written back to user.ID.
func (r *UserRepository) Create(ctx context.Context, user *model.User, gameIDs []string) error {
	if len(gameIDs) == 0 {
		return r.createRecord(ctx, user)
	}

	user.ID = newUserID()

	batch := database.NewAtomicBatch()
	vars := userContentVars(user)
	vars["id"] = user.ID
	batch.Add(`
		CREATE type::record($id) CONTENT {
			first_name: $first_name,
			last_name: $last_name,
			phone: IF $phone IS NOT NULL THEN $phone ELSE NONE END,
			address: $address,
			city: $city,
			region: $region,
			login_name: $login_name,
			email: $email,
			hash: $hash,
			availabilities: $availabilities
		}
	`, vars)
	for _, gameID := range gameIDs {
		stagePlaysLink(batch, user.ID, gameID)
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		user.ID = ""
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: login name or email already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// createRecord creates a bare user row with a database-assigned id
func (r *UserRepository) createRecord(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			first_name: $first_name,
			last_name: $last_name,
			phone: IF $phone IS NOT NULL THEN $phone ELSE NONE END,
			address: $address,
			city: $city,
			region: $region,
			login_name: $login_name,
			email: $email,
			hash: $hash,
			availabilities: $availabilities
		}
	`

	result, err := r.db.Query(ctx, query, userContentVars(user))
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: login name or email already exists", database.ErrDuplicate)
		}
		return err
	}

	id, err := extractCreatedID(result)
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by ID, including its game membership projection.
// Returns nil (no error) when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM type::record($id)`, userProjection)
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetAll retrieves all users
func (r *UserRepository) GetAll(ctx context.Context) ([]*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM user`, userProjection)

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseUserList(results)
}

// Update persists the user's profile fields and availability collection.
// Game membership lives on plays edges; use UpdateWithGameLinks when the
// same operation also edits membership.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return r.UpdateWithGameLinks(ctx, user, nil, nil)
}

// UpdateWithGameLinks persists the user's profile fields and applies the
// membership edge diff in a single transaction: one RELATE per added game,
// one edge deletion per removed game. A rejected profile write (unique
// constraint) therefore rolls the edge edits back with it.
func (r *UserRepository) UpdateWithGameLinks(ctx context.Context, user *model.User, add, remove []string) error {
	vars := userContentVars(user)
	vars["id"] = user.ID

	batch := database.NewAtomicBatch()
	batch.Add(`
		UPDATE type::record($id) SET
			first_name = $first_name,
			last_name = $last_name,
			phone = IF $phone IS NOT NULL THEN $phone ELSE NONE END,
			address = $address,
			city = $city,
			region = $region,
			login_name = $login_name,
			email = $email,
			availabilities = $availabilities
	`, vars)
	for _, gameID := range add {
		stagePlaysLink(batch, user.ID, gameID)
	}
	for _, gameID := range remove {
		stagePlaysUnlink(batch, user.ID, gameID)
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: login name or email already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// SearchByName retrieves users whose first or last name contains the query,
// case-insensitively.
func (r *UserRepository) SearchByName(ctx context.Context, query string) ([]*model.User, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM user
		WHERE string::contains(string::lowercase(first_name), $query)
		   OR string::contains(string::lowercase(last_name), $query)
	`, userProjection)
	vars := map[string]interface{}{"query": strings.ToLower(query)}

	results, err := r.db.Query(ctx, q, vars)
	if err != nil {
		return nil, err
	}

	return parseUserList(results)
}

// ApplyGameLinks edits the user's game membership edges without touching the
// row itself: one RELATE per added game, one edge deletion per removed game,
// all in a single transaction.
func (r *UserRepository) ApplyGameLinks(ctx context.Context, userID string, add, remove []string) error {
	batch := database.NewAtomicBatch()
	for _, gameID := range add {
		stagePlaysLink(batch, userID, gameID)
	}
	for _, gameID := range remove {
		stagePlaysUnlink(batch, userID, gameID)
	}
	return batch.Execute(ctx, r.db)
}

// DeleteCascade removes the user, its plays edges, and every availability
// record it owns, as one atomic unit of work. No reciprocal reference
// survives in any game's member set.
func (r *UserRepository) DeleteCascade(ctx context.Context, user *model.User) error {
	batch := database.NewAtomicBatch()
	stageDetachUser(batch, user.ID)
	for _, availabilityID := range user.AvailabilityIDs {
		batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": availabilityID})
	}
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": user.ID})
	return batch.Execute(ctx, r.db)
}

// userContentVars collects the user's writable fields as query variables
func userContentVars(user *model.User) map[string]interface{} {
	availabilities := user.AvailabilityIDs
	if availabilities == nil {
		availabilities = []string{}
	}
	return map[string]interface{}{
		"first_name":     user.FirstName,
		"last_name":      user.LastName,
		"phone":          nilIfEmpty(user.Phone),
		"address":        user.Address,
		"city":           user.City,
		"region":         user.Region,
		"login_name":     user.LoginName,
		"email":          user.Email,
		"hash":           user.Hash,
		"availabilities": availabilities,
	}
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func parseUserResult(result interface{}) (*model.User, error) {
	data, err := unwrapResult(result)
	if err != nil {
		return nil, err
	}
	return parseUserData(data)
}

func parseUserData(data map[string]interface{}) (*model.User, error) {
	// Extract hash before JSON marshal/unmarshal (since User.Hash has json:"-")
	hash, _ := data["hash"].(string)

	if v, ok := data["availabilities"]; ok {
		data["availabilities"] = convertRecordIDList(v)
	}

	var user model.User
	if err := decodeRecord(data, []string{"game_ids"}, &user); err != nil {
		return nil, err
	}

	user.Hash = hash
	return &user, nil
}

func parseUserList(results []interface{}) ([]*model.User, error) {
	records := unwrapResults(results)
	users := make([]*model.User, 0, len(records))
	for _, data := range records {
		user, err := parseUserData(data)
		if err != nil {
			return nil, fmt.Errorf("parse user record: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}
