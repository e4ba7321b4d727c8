package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fgoexport/internal/model"
)

func testServants() []model.Servant {
	return []model.Servant{
		{
			ID: 100100, CollectionNo: 2, Name: "Artoria Pendragon", ClassName: "saber", Rarity: 5,
			NoblePhantasms: []model.NoblePhantasm{{ID: 100101, Num: 1, Name: "Excalibur", Card: model.CardBuster}},
			Skills: []model.Skill{
				{ID: 1, Num: 1, Name: "Charisma", Target: []model.SkillTarget{model.TargetAll}, Buttons: []model.ButtonGroup{}},
				{ID: 2, Num: 2, Name: "Mana Burst", Target: []model.SkillTarget{model.TargetOne}, Buttons: []model.ButtonGroup{}},
			},
		},
		{
			ID: 100200, CollectionNo: 3, Name: "Artoria Pendragon (lancer)", ClassName: "lancer", Rarity: 5,
			Skills: []model.Skill{{
				ID: 3, Num: 3, Name: "Shift",
				Target:    []model.SkillTarget{model.TargetTransform},
				Buttons:   []model.ButtonGroup{},
				Transform: &model.Transform{Ascension: 1, TargetAscension: 3},
			}},
		},
	}
}

func TestExportRepository_SaveServants(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewExportRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveServants(ctx, testServants()))

	names, err := repo.LoadServantNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Artoria Pendragon", "Artoria Pendragon (lancer)"}, names)

	n, err := repo.CountSkillsByTarget(ctx, model.TargetTransform)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var targetAscension int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT target_ascension FROM skills WHERE skill_id = 3`).Scan(&targetAscension))
	assert.Equal(t, 3, targetAscension)
}

func TestExportRepository_SaveIsFullRewrite(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewExportRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveServants(ctx, testServants()))
	require.NoError(t, repo.SaveServants(ctx, testServants()[:1]))

	names, err := repo.LoadServantNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Artoria Pendragon"}, names)

	n, err := repo.CountSkillsByTarget(ctx, model.TargetTransform)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExportRepository_SaveMysticCodes(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewExportRepository(pool)
	ctx := context.Background()

	codes := []model.MysticCode{{
		ID:     1,
		Name:   "Mystic Code: Chaldea",
		Assets: map[string]string{model.AssetMale: "m.png", model.AssetFemale: "f.png"},
		Skills: []model.Skill{
			{ID: 960, Num: 0, Name: "Emergency Evade", Target: []model.SkillTarget{model.TargetOne}, Buttons: []model.ButtonGroup{}},
			{ID: 961, Num: 1, Name: "Order Change", Target: []model.SkillTarget{model.TargetOrderChange}, Buttons: []model.ButtonGroup{}},
		},
	}}

	require.NoError(t, repo.SaveServants(ctx, testServants()))
	require.NoError(t, repo.SaveMysticCodes(ctx, codes))

	n, err := repo.CountSkillsByTarget(ctx, model.TargetOne)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "servant and mystic code skills are both counted")

	var assets string
	require.NoError(t, pool.QueryRow(ctx, `SELECT data->'assets'->>'female' FROM mystic_codes WHERE id = 1`).Scan(&assets))
	assert.Equal(t, "f.png", assets)
}
