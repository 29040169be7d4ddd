package database_test

import (
	"context"
	"fmt"
	"testing"

	"starwars/internal/database"
	"starwars/internal/logger"
	"starwars/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t, "postgresql://u:p@h:5432/db", database.PostgresDSN("postgres://u:p@h:5432/db"))
	assert.Equal(t, "postgresql://u:p@h:5432/db", database.PostgresDSN("postgresql://u:p@h:5432/db"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/test.db?_foreign_keys=on", database.SQLiteDSN("/tmp/test.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", database.SQLiteDSN("file:x?mode=memory"))
}

func TestSeed_FillsEmptyTablesOnce(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()), log)
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Ping(ctx, db))

	users := repositories.NewGORMUserRepository(db)
	planets := repositories.NewGORMPlanetRepository(db)
	characters := repositories.NewGORMCharacterRepository(db)

	require.NoError(t, database.Seed(ctx, users, planets, characters, log))
	require.NoError(t, database.Seed(ctx, users, planets, characters, log))

	allUsers, err := users.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, allUsers, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(allUsers[0].Password), []byte(database.SeedUserPassword)))

	allPlanets, err := planets.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allPlanets, 5)

	allCharacters, err := characters.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allCharacters, 4)
}
