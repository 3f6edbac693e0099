package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	likeeDomain "github.com/furrymatch/service-matching/internal/domain/likee"
	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	ownerDomain "github.com/furrymatch/service-matching/internal/domain/owner"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/domain/searchcriteria"
)

// dryRunDB renders SQL with the postgres dialect without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=dry password=dry dbname=dry sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestSearchQuery_RendersFilterAndExclusions(t *testing.T) {
	db := dryRunDB(t)
	owner, active := uuid.New(), uuid.New()
	female := petDomain.SexFemale

	f, err := searchcriteria.NewFilter(owner, active, searchcriteria.Criteria{
		Sex:      &female,
		Province: "San Jose",
	})
	require.NoError(t, err)

	var models []PetModel
	stmt := searchPage(db, f, 3, 10).Find(&models).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "JOIN owners ON owners.id = pets.owner_id")
	assert.Contains(t, sql, "LEFT JOIN search_criteria ON search_criteria.pet_id = pets.id")
	assert.Contains(t, sql, "pets.sex = $")
	assert.Contains(t, sql, "owners.province = $")
	assert.Contains(t, sql, "pets.owner_id <> $")
	assert.Contains(t, sql, "pets.id NOT IN (SELECT likees.second_pet_id FROM likees WHERE likees.first_pet_id = $")
	assert.Contains(t, sql, "ORDER BY pets.created_at DESC, pets.id")
	assert.Contains(t, sql, "LIMIT $")
	assert.Contains(t, sql, "OFFSET $")
	assert.NotContains(t, sql, "pets.pet_type")

	assert.Contains(t, stmt.Vars, "F")
	assert.Contains(t, stmt.Vars, "San Jose")
	assert.Contains(t, stmt.Vars, owner)
	assert.Contains(t, stmt.Vars, active)
	require.GreaterOrEqual(t, len(stmt.Vars), 2)
	assert.Equal(t, []interface{}{10, 20}, stmt.Vars[len(stmt.Vars)-2:])
}

func TestSearchQuery_EmptyCriteriaStillExcludes(t *testing.T) {
	db := dryRunDB(t)
	f, err := searchcriteria.NewFilter(uuid.New(), uuid.New(), searchcriteria.Criteria{})
	require.NoError(t, err)

	var models []PetModel
	sql := searchPage(db, f, 1, 20).Find(&models).Statement.SQL.String()

	assert.Contains(t, sql, "pets.owner_id <> $1")
	assert.Contains(t, sql, "likees.first_pet_id = $2")
	assert.NotContains(t, sql, "owners.province")
}

func TestLikeeInsert_IgnoresExistingPair(t *testing.T) {
	db := dryRunDB(t)
	l, err := likeeDomain.NewLikee(uuid.New(), uuid.New())
	require.NoError(t, err)

	sql := insertLikeIfAbsent(db, l).Statement.SQL.String()
	assert.Contains(t, sql, `INSERT INTO "likees"`)
	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, `"first_pet_id","second_pet_id"`)
	assert.Contains(t, sql, "DO NOTHING")
}

func TestOwnerInsert_IgnoresExistingProfile(t *testing.T) {
	db := dryRunDB(t)
	o, err := ownerDomain.NewOwner(uuid.New(), ownerDomain.Profile{})
	require.NoError(t, err)

	stmt := insertOwnerIfAbsent(db, o).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, `INSERT INTO "owners"`)
	assert.Contains(t, sql, `ON CONFLICT ("id") DO NOTHING`)
	assert.Contains(t, stmt.Vars, o.ID())
}

func TestPairKey_IsOrderIndependent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, pairKey(a, b), pairKey(b, a))
	assert.NotEqual(t, pairKey(a, b), pairKey(a, uuid.New()))
}

func TestMatchPairScope_MatchesBothOrders(t *testing.T) {
	db := dryRunDB(t)
	a, b := uuid.New(), uuid.New()

	var m MatchModel
	stmt := pairScope(db, a, b).First(&m).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "(first_pet_id = $1 AND second_pet_id = $2) OR (first_pet_id = $3 AND second_pet_id = $4)")
	assert.Equal(t, []interface{}{a, b, b, a}, stmt.Vars[:4])
}

func TestMatchColumnUpdate_TouchesOneColumn(t *testing.T) {
	db := dryRunDB(t)
	id := uuid.New()

	stmt := matchColumnUpdate(db, id, "notify_match", false).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `UPDATE "matches" SET "notify_match"=$1`)
	assert.Contains(t, sql, "WHERE id = $")
	assert.NotContains(t, sql, "contract_id")
	assert.Contains(t, stmt.Vars, id)
}

func TestMatchConversion_RoundTrip(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ab, _ := likeeDomain.NewLikee(a, b)
	ba, _ := likeeDomain.NewLikee(b, a)
	m, err := matchDomain.NewMatch(ba, ab, time.Now())
	require.NoError(t, err)

	back := toMatchDomain(toMatchModel(m))
	assert.Equal(t, m.FirstLikedID(), back.FirstLikedID())
	assert.Equal(t, m.SecondLikedID(), back.SecondLikedID())
	assert.Equal(t, m.FirstPetID(), back.FirstPetID())
	assert.True(t, back.NotifyMatch())
}

func TestSearchCriteriaConversion_PreservesUnsetFields(t *testing.T) {
	yes := true
	cat := petDomain.PetTypeCat
	sc := searchcriteria.New(uuid.New(), searchcriteria.Criteria{PetType: &cat, Pedigree: &yes, Canton: "Escazu"})

	m := toSearchCriteriaModel(sc)
	assert.Nil(t, m.Objective)
	assert.Nil(t, m.Province)
	require.NotNil(t, m.FilterType)
	assert.Equal(t, "CAT", *m.FilterType)

	back := toSearchCriteriaDomain(m).Criteria()
	assert.Nil(t, back.Sex)
	assert.Equal(t, "Escazu", back.Canton)
	assert.Equal(t, "", back.Province)
	assert.True(t, *back.Pedigree)
}
