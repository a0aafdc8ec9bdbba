package tests

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulezero/playerconnector/internal/model"
	"github.com/rulezero/playerconnector/internal/repository"
	"github.com/rulezero/playerconnector/internal/service"
	"github.com/rulezero/playerconnector/internal/testing/fixtures"
	"github.com/rulezero/playerconnector/internal/testing/helpers"
	"github.com/rulezero/playerconnector/internal/testing/testdb"
)

/*
FEATURE: Associations
DOMAIN: User/Game Membership & Availability Ownership

ACCEPTANCE CRITERIA:
===================

AC-ASSOC-001: Membership Symmetry
  GIVEN user Alice is a member of games 1 and 2
  WHEN we read Alice and both games
  THEN Alice's game set and each game's member set reference each other

AC-ASSOC-002: Membership Reconciliation
  GIVEN Alice with games {1,2} and an existing game 3
  WHEN Alice is patched to games {2,3}
  THEN Alice's games are {2,3}
  AND game 1 no longer lists Alice
  AND game 3 lists Alice

AC-ASSOC-003: Cascade Completeness
  GIVEN a user with 3 availability records and membership in 2 games
  WHEN the user is deleted
  THEN no availability record for that user remains
  AND neither game lists the user

AC-ASSOC-004: Game Deletion Detaches Members
  GIVEN a game with 2 member users
  WHEN the game is deleted
  THEN neither user's game set references it

AC-ASSOC-005: Availability Ownership Order
  GIVEN a user with availability records created in order A, B
  WHEN we read the user
  THEN the representative availability is A
  AND linking B explicitly makes B the representative

AC-ASSOC-006: Unresolved References Abort Creation
  GIVEN a game id that does not exist
  WHEN a user is created referencing it
  THEN the request fails with NotFound
  AND no user record is persisted

AC-ASSOC-007: Rejected Patch Leaves Membership Untouched
  GIVEN Alice with game {1} and Bob holding a registered email
  WHEN Alice is patched to Bob's email together with games {1,2}
  THEN the request fails with Conflict
  AND Alice's membership is still {1}
*/

func newServices(tdb *testdb.TestDB) (*service.UserService, *service.GamesService, *service.AvailabilityService) {
	userRepo := repository.NewUserRepository(tdb.DB)
	gameRepo := repository.NewGameRepository(tdb.DB)
	availabilityRepo := repository.NewAvailabilityRepository(tdb.DB)

	users := service.NewUserService(service.UserServiceConfig{
		Users:        userRepo,
		Games:        gameRepo,
		Availability: availabilityRepo,
	})
	games := service.NewGamesService(service.GamesServiceConfig{
		Games: gameRepo,
		Users: userRepo,
	})
	availability := service.NewAvailabilityService(service.AvailabilityServiceConfig{
		Availability: availabilityRepo,
		Users:        userRepo,
	})
	return users, games, availability
}

func TestAssociations_MembershipSymmetry(t *testing.T) {
	// AC-ASSOC-001: Membership Symmetry
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	users, games, _ := newServices(tdb)

	game1 := f.CreateGame(t)
	game2 := f.CreateGame(t)

	created, err := users.CreateUser(tdb.Ctx(), &model.CreateUserRequest{
		FirstName: "Alice",
		LastName:  "Anderson",
		LoginName: fmt.Sprintf("alice_%s", game1.ID),
		Email:     fmt.Sprintf("alice_%s@test.local", game1.ID),
		Password:  "longenoughpassword",
		GameIDs:   []string{game1.ID, game2.ID},
	})
	require.NoError(t, err)
	require.Len(t, created.GameIDs, 2)

	for _, gameID := range []string{game1.ID, game2.ID} {
		gameData, err := games.GetGame(tdb.Ctx(), gameID)
		require.NoError(t, err)
		assert.Contains(t, gameData.UserIDs, created.UserID,
			"game %s should list user %s as member", gameID, created.UserID)
	}
}

func TestAssociations_MembershipReconciliation(t *testing.T) {
	// AC-ASSOC-002: Membership Reconciliation
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	users, games, _ := newServices(tdb)

	game1 := f.CreateGame(t)
	game2 := f.CreateGame(t)
	game3 := f.CreateGame(t)

	alice, err := users.CreateUser(tdb.Ctx(), &model.CreateUserRequest{
		FirstName: "Alice",
		LastName:  "Anderson",
		LoginName: fmt.Sprintf("alice_%s", game2.ID),
		Email:     fmt.Sprintf("alice_%s@test.local", game2.ID),
		Password:  "longenoughpassword",
		GameIDs:   []string{game1.ID, game2.ID},
	})
	require.NoError(t, err)

	desired := []string{game2.ID, game3.ID}
	patched, err := users.PatchUser(tdb.Ctx(), alice.UserID, &model.UpdateUserRequest{
		GameIDs: &desired,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, desired, patched.GameIDs)

	g1, err := games.GetGame(tdb.Ctx(), game1.ID)
	require.NoError(t, err)
	assert.NotContains(t, g1.UserIDs, alice.UserID, "game 1 should no longer list Alice")

	g3, err := games.GetGame(tdb.Ctx(), game3.ID)
	require.NoError(t, err)
	assert.Contains(t, g3.UserIDs, alice.UserID, "game 3 should list Alice")
}

func TestAssociations_CascadeCompleteness(t *testing.T) {
	// AC-ASSOC-003: Cascade Completeness
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	users, games, _ := newServices(tdb)

	user := f.CreateUser(t)
	game1 := f.CreateGame(t)
	game2 := f.CreateGame(t)
	f.LinkPlays(t, user, game1)
	f.LinkPlays(t, user, game2)

	var availabilityIDs []string
	for i := 0; i < 3; i++ {
		a := f.CreateAvailabilityForUser(t, user)
		availabilityIDs = append(availabilityIDs, a.ID)
	}

	require.NoError(t, users.DeleteUser(tdb.Ctx(), user.ID))

	helpers.AssertRecordNotExists(t, tdb.DB, "user", user.ID)
	for _, id := range availabilityIDs {
		helpers.AssertRecordNotExists(t, tdb.DB, "availability", id)
	}

	for _, gameID := range []string{game1.ID, game2.ID} {
		gameData, err := games.GetGame(tdb.Ctx(), gameID)
		require.NoError(t, err)
		assert.NotContains(t, gameData.UserIDs, user.ID,
			"game %s should not list deleted user", gameID)
	}
}

func TestAssociations_GameDeletionDetachesMembers(t *testing.T) {
	// AC-ASSOC-004: Game Deletion Detaches Members
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	users, games, _ := newServices(tdb)

	user1 := f.CreateUser(t)
	user2 := f.CreateUser(t)
	game := f.CreateGame(t)
	f.LinkPlays(t, user1, game)
	f.LinkPlays(t, user2, game)

	require.NoError(t, games.DeleteGame(tdb.Ctx(), game.ID))

	helpers.AssertRecordNotExists(t, tdb.DB, "game", game.ID)

	for _, userID := range []string{user1.ID, user2.ID} {
		userData, err := users.GetUser(tdb.Ctx(), userID)
		require.NoError(t, err)
		assert.NotContains(t, userData.GameIDs, game.ID,
			"user %s should not reference deleted game", userID)
	}
}

func TestAssociations_AvailabilityOwnershipOrder(t *testing.T) {
	// AC-ASSOC-005: Availability Ownership Order
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	users, _, availability := newServices(tdb)

	user := f.CreateUser(t)

	a, err := availability.CreateForUser(tdb.Ctx(), user.ID, &model.CreateAvailabilityRequest{
		DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	b, err := availability.CreateForUser(tdb.Ctx(), user.ID, &model.CreateAvailabilityRequest{
		DayOfWeek: "Tuesday", StartTime: "18:00", EndTime: "20:00",
	})
	require.NoError(t, err)

	userData, err := users.GetUser(tdb.Ctx(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, userData.AvailabilityID)
	assert.Equal(t, a.AvailabilityID, *userData.AvailabilityID,
		"first created slot should be the representative")

	listed, err := availability.ListForUser(tdb.Ctx(), user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, a.AvailabilityID, listed[0].AvailabilityID)
	assert.Equal(t, b.AvailabilityID, listed[1].AvailabilityID)

	relinked, err := users.UpdateUserAvailability(tdb.Ctx(), user.ID, b.AvailabilityID)
	require.NoError(t, err)
	require.NotNil(t, relinked.AvailabilityID)
	assert.Equal(t, b.AvailabilityID, *relinked.AvailabilityID,
		"explicitly linked slot should become the representative")
}

func TestAssociations_RejectedPatchLeavesMembershipUntouched(t *testing.T) {
	// AC-ASSOC-007: Rejected Patch Leaves Membership Untouched
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	users, games, _ := newServices(tdb)

	game1 := f.CreateGame(t)
	game2 := f.CreateGame(t)
	bob := f.CreateUser(t)

	alice, err := users.CreateUser(tdb.Ctx(), &model.CreateUserRequest{
		FirstName: "Alice",
		LastName:  "Anderson",
		LoginName: fmt.Sprintf("alice_%s", game1.ID),
		Email:     fmt.Sprintf("alice_%s@test.local", game1.ID),
		Password:  "longenoughpassword",
		GameIDs:   []string{game1.ID},
	})
	require.NoError(t, err)

	// Email collides with Bob, so the write is rejected by the unique index.
	desired := []string{game1.ID, game2.ID}
	_, err = users.PatchUser(tdb.Ctx(), alice.UserID, &model.UpdateUserRequest{
		Email:   &bob.Email,
		GameIDs: &desired,
	})
	require.ErrorIs(t, err, service.ErrDuplicateUser)

	reloaded, err := users.GetUser(tdb.Ctx(), alice.UserID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{game1.ID}, reloaded.GameIDs,
		"membership must not change when the patch is rejected")

	g2, err := games.GetGame(tdb.Ctx(), game2.ID)
	require.NoError(t, err)
	assert.NotContains(t, g2.UserIDs, alice.UserID,
		"the new game must not list Alice after the rejected patch")
}

func TestAssociations_UnresolvedReferencesAbortCreation(t *testing.T) {
	// AC-ASSOC-006: Unresolved References Abort Creation
	tdb := testdb.New(t)
	defer tdb.Close()

	users, _, _ := newServices(tdb)

	_, err := users.CreateUser(tdb.Ctx(), &model.CreateUserRequest{
		FirstName: "Ghost",
		LastName:  "Reference",
		LoginName: "ghost_reference",
		Email:     "ghost_reference@test.local",
		Password:  "longenoughpassword",
		GameIDs:   []string{"game:doesnotexist"},
	})
	require.ErrorIs(t, err, service.ErrGameNotFound)

	results := tdb.MustQuery(
		"SELECT * FROM user WHERE login_name = $login_name",
		map[string]interface{}{"login_name": "ghost_reference"},
	)
	require.NotEmpty(t, results)
	resp, ok := results[0].(map[string]interface{})
	require.True(t, ok)
	if list, ok := resp["result"].([]interface{}); ok {
		assert.Empty(t, list, "no user record should persist after failed creation")
	}
}
