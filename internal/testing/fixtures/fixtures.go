// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t)
//	game := f.CreateGame(t)
//	f.LinkPlays(t, user, game)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/rulezero/playerconnector/internal/database"
	"github.com/rulezero/playerconnector/internal/model"
	"github.com/rulezero/playerconnector/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Factory creates test entities in the database
type Factory struct {
	db           database.Database
	users        *repository.UserRepository
	games        *repository.GameRepository
	availability *repository.AvailabilityRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		db:           db,
		users:        repository.NewUserRepository(db),
		games:        repository.NewGameRepository(db),
		availability: repository.NewAvailabilityRepository(db),
	}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	// Store cancel to prevent leak warning
	_ = cancel
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	FirstName string
	LastName  string
	LoginName string
	Email     string
	Password  string
	City      string
	Region    string
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	suffix := randomID()
	o := &UserOpts{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%s", suffix),
		LoginName: fmt.Sprintf("user_%s", suffix),
		Email:     fmt.Sprintf("user_%s@test.local", suffix),
		Password:  "testpass123",
		City:      "Testville",
		Region:    "TS",
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	user := &model.User{
		FirstName: o.FirstName,
		LastName:  o.LastName,
		LoginName: o.LoginName,
		Email:     o.Email,
		City:      o.City,
		Region:    o.Region,
		Hash:      string(hash),
	}

	if err := f.users.Create(ctx(), user, nil); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	return user
}

// ============================================================================
// Game Fixtures
// ============================================================================

// GameOpts customizes game creation
type GameOpts struct {
	Name        string
	Description string
	MinPlayers  int
	MaxPlayers  int
}

// CreateGame creates a game with optional customizations
func (f *Factory) CreateGame(t *testing.T, opts ...func(*GameOpts)) *model.Game {
	t.Helper()

	o := &GameOpts{
		Name:        fmt.Sprintf("Game %s", randomID()),
		Description: "A test game",
		MinPlayers:  2,
		MaxPlayers:  4,
	}
	for _, fn := range opts {
		fn(o)
	}

	game := &model.Game{
		Name:        o.Name,
		Description: o.Description,
		MinPlayers:  o.MinPlayers,
		MaxPlayers:  o.MaxPlayers,
	}

	if err := f.games.Create(ctx(), game, nil); err != nil {
		t.Fatalf("fixtures: failed to create game: %v", err)
	}

	return game
}

// ============================================================================
// Availability Fixtures
// ============================================================================

// AvailabilityOpts customizes availability creation
type AvailabilityOpts struct {
	DayOfWeek string
	StartTime string
	EndTime   string
}

// CreateAvailabilityForUser creates an availability record owned by the user
func (f *Factory) CreateAvailabilityForUser(t *testing.T, user *model.User, opts ...func(*AvailabilityOpts)) *model.Availability {
	t.Helper()

	o := &AvailabilityOpts{
		DayOfWeek: "Monday",
		StartTime: "09:00",
		EndTime:   "17:00",
	}
	for _, fn := range opts {
		fn(o)
	}

	availability := &model.Availability{
		DayOfWeek: o.DayOfWeek,
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
	}

	if err := f.availability.CreateForUser(ctx(), user.ID, availability); err != nil {
		t.Fatalf("fixtures: failed to create availability: %v", err)
	}
	user.AvailabilityIDs = append(user.AvailabilityIDs, availability.ID)

	return availability
}

// ============================================================================
// Membership Fixtures
// ============================================================================

// LinkPlays creates a plays edge between the user and the game
func (f *Factory) LinkPlays(t *testing.T, user *model.User, game *model.Game) {
	t.Helper()

	if err := f.users.ApplyGameLinks(ctx(), user.ID, []string{game.ID}, nil); err != nil {
		t.Fatalf("fixtures: failed to link user to game: %v", err)
	}
	user.GameIDs = append(user.GameIDs, game.ID)
	game.UserIDs = append(game.UserIDs, user.ID)
}
