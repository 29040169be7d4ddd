package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"starwars/internal/database"
	"starwars/internal/logger"
	"starwars/internal/models"
	"starwars/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openTestDB returns a migrated in-memory database private to the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.OpenSQLite(dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type fixture struct {
	users      *repositories.GORMUserRepository
	planets    *repositories.GORMPlanetRepository
	characters *repositories.GORMCharacterRepository
	favorites  *repositories.GORMFavoriteRepository
	user       models.User
	planet     models.Planet
	character  models.Character
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := openTestDB(t)
	f := fixture{
		users:      repositories.NewGORMUserRepository(db),
		planets:    repositories.NewGORMPlanetRepository(db),
		characters: repositories.NewGORMCharacterRepository(db),
		favorites:  repositories.NewGORMFavoriteRepository(db),
		user:       models.User{Email: "luke@rebellion.org", Username: "luke", Password: "x-wing"},
		planet:     models.Planet{Name: "Tatooine"},
		character:  models.Character{Name: "Obi-Wan Kenobi"},
	}
	require.NoError(t, f.users.Create(ctx, &f.user))
	require.NoError(t, f.planets.Create(ctx, &f.planet))
	require.NoError(t, f.characters.Create(ctx, &f.character))
	return f
}

func TestGORMCatalog_GetByIDNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	planet, err := f.planets.GetByID(ctx, f.planet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tatooine", planet.Name)
	assert.Nil(t, planet.Description)

	_, err = f.planets.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.characters.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.users.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMFavoriteRepository_CreateIfAbsentIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fav, err := models.NewFavorite(f.user.ID, models.PlanetTarget(f.planet.ID))
	require.NoError(t, err)
	created, err := f.favorites.CreateIfAbsent(ctx, fav)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, fav.ID)

	again, err := models.NewFavorite(f.user.ID, models.PlanetTarget(f.planet.ID))
	require.NoError(t, err)
	created, err = f.favorites.CreateIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	list, err := f.favorites.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGORMFavoriteRepository_ConcurrentAddsLeaveOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fav, _ := models.NewFavorite(f.user.ID, models.CharacterTarget(f.character.ID))
			created, err := f.favorites.CreateIfAbsent(ctx, fav)
			if err != nil {
				errs <- err
				return
			}
			results <- created
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
	createdCount := 0
	for created := range results {
		if created {
			createdCount++
		}
	}
	assert.Equal(t, 1, createdCount)

	list, err := f.favorites.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGORMFavoriteRepository_ListPreloadsTargetsInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, target := range []models.FavoriteTarget{
		models.CharacterTarget(f.character.ID),
		models.PlanetTarget(f.planet.ID),
	} {
		fav, err := models.NewFavorite(f.user.ID, target)
		require.NoError(t, err)
		_, err = f.favorites.CreateIfAbsent(ctx, fav)
		require.NoError(t, err)
	}

	list, err := f.favorites.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NotNil(t, list[0].Character)
	assert.Nil(t, list[0].Planet)
	assert.Equal(t, "Obi-Wan Kenobi", list[0].Character.Name)

	require.NotNil(t, list[1].Planet)
	assert.Nil(t, list[1].Character)
	assert.Equal(t, "Tatooine", list[1].Planet.Name)

	other, err := f.favorites.ListByUser(ctx, f.user.ID+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGORMFavoriteRepository_DeleteAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	target := models.PlanetTarget(f.planet.ID)

	err := f.favorites.Delete(ctx, f.user.ID, target)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	fav, err := models.NewFavorite(f.user.ID, target)
	require.NoError(t, err)
	_, err = f.favorites.CreateIfAbsent(ctx, fav)
	require.NoError(t, err)

	found, err := f.favorites.Find(ctx, f.user.ID, target)
	require.NoError(t, err)
	assert.Equal(t, fav.ID, found.ID)

	require.NoError(t, f.favorites.Delete(ctx, f.user.ID, target))
	_, err = f.favorites.Find(ctx, f.user.ID, target)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMFavoriteRepository_RejectsRowsWithoutExactlyOneTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	planetID, characterID := f.planet.ID, f.character.ID

	_, err := f.favorites.CreateIfAbsent(ctx, &models.Favorite{UserID: f.user.ID, PlanetID: &planetID, PeopleID: &characterID})
	assert.ErrorIs(t, err, models.ErrInvalidTarget)

	_, err = f.favorites.CreateIfAbsent(ctx, &models.Favorite{UserID: f.user.ID})
	assert.ErrorIs(t, err, models.ErrInvalidTarget)
}

func TestGORMUserRepository_DeleteCascadesToFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fav, err := models.NewFavorite(f.user.ID, models.PlanetTarget(f.planet.ID))
	require.NoError(t, err)
	_, err = f.favorites.CreateIfAbsent(ctx, fav)
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, f.user.ID))

	list, err := f.favorites.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, f.users.Delete(ctx, f.user.ID), repositories.ErrNotFound)
}

func TestGORMUserRepository_EmailAndUsernameUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.users.Create(ctx, &models.User{Email: "luke@rebellion.org", Username: "other", Password: "pw"})
	assert.Error(t, err)
	err = f.users.Create(ctx, &models.User{Email: "other@rebellion.org", Username: "luke", Password: "pw"})
	assert.Error(t, err)
}

// newMockedFavoriteRepository backs the repository with go-sqlmock through
// the Postgres dialector, for driver failures SQLite cannot produce.
func newMockedFavoriteRepository(t *testing.T) (*repositories.GORMFavoriteRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.GormConfig(logger.Discard()))
	require.NoError(t, err)
	return repositories.NewGORMFavoriteRepository(db), mock
}

func TestGORMFavoriteRepository_UniqueViolationMeansAlreadyPresent(t *testing.T) {
	repo, mock := newMockedFavoriteRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "favorito"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	fav, err := models.NewFavorite(1, models.PlanetTarget(7))
	require.NoError(t, err)
	created, err := repo.CreateIfAbsent(context.Background(), fav)
	assert.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMFavoriteRepository_StoreFailureIsReturned(t *testing.T) {
	repo, mock := newMockedFavoriteRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "favorito"`).WillReturnError(errors.New("connection refused"))

	_, err := repo.ListByUser(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotErrorIs(t, err, repositories.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
