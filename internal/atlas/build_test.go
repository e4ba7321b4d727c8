package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fgoexport/internal/model"
	"github.com/udisondev/fgoexport/internal/skill"
)

const servantExport = `[
  {
    "id": 300200, "collectionNo": 2, "name": "Example", "className": "archer",
    "type": "normal", "rarity": 4, "gender": "male",
    "noblePhantasms": [{"id": 300201, "num": 1, "name": "Arrow", "card": "arts"}],
    "skills": [
      {
        "id": 11, "num": 1, "name": "Mind's Eye", "unmodifiedDetail": "Evade [g]",
        "detail": "Evade", "icon": "eye.png", "priority": 0,
        "coolDown": [8, 8, 8, 8, 8, 7, 7, 7, 7, 6],
        "script": {},
        "functions": [{"funcTargetType": "self", "funcType": "addState", "buffs": [{"name": "Evade"}]}]
      }
    ]
  },
  {
    "id": 100100, "collectionNo": 1, "name": "Example", "className": "saber",
    "type": "normal", "rarity": 5, "gender": "female",
    "noblePhantasms": [{"id": 100101, "num": 1, "name": "Sword", "card": "buster"}],
    "skills": [
      {
        "id": 21, "num": 1, "name": "Mana Burst", "unmodifiedDetail": "Buster up",
        "icon": "burst.png", "priority": 0,
        "coolDown": [7, 7, 7, 7, 7, 6, 6, 6, 6, 5],
        "functions": [{"funcTargetType": "ptOne", "funcType": "addState"}]
      },
      {
        "id": 22, "num": 2, "name": "Ascension", "unmodifiedDetail": "Change",
        "icon": "asc.png", "priority": 1,
        "coolDown": [5, 5, 5, 5, 5, 5, 5, 5, 5, 5],
        "functions": [
          {"funcTargetType": "self", "funcType": "transformServant", "svals": [{"SetLimitCount": 3}]}
        ]
      }
    ]
  },
  {
    "id": 9999, "collectionNo": 0, "name": "Enemy Only", "className": "saber",
    "type": "enemyCollection", "rarity": 1
  }
]`

func TestBuildServants(t *testing.T) {
	servants, err := BuildServants([]byte(servantExport), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, servants, 2)

	first := servants[0]
	assert.Equal(t, 1, first.CollectionNo)
	assert.Equal(t, "Example", first.Name)
	assert.Equal(t, []model.NoblePhantasm{{ID: 100101, Num: 1, Name: "Sword", Card: model.CardBuster}}, first.NoblePhantasms)
	require.Len(t, first.Skills, 2)
	assert.Equal(t, []model.SkillTarget{model.TargetOne}, first.Skills[0].Target)
	assert.Equal(t, "Buster up", first.Skills[0].Detail)
	assert.Equal(t, map[int]int{1: 7, 6: 6, 10: 5}, first.Skills[0].Cooldown.Milestones)
	require.NotNil(t, first.Skills[1].Transform)
	assert.Equal(t, model.Transform{Ascension: 1, TargetAscension: 3}, *first.Skills[1].Transform)

	second := servants[1]
	assert.Equal(t, 2, second.CollectionNo)
	assert.Equal(t, "Example (archer)", second.Name)
	require.Len(t, second.Skills, 1)
	assert.Equal(t, []model.SkillTarget{model.TargetAll}, second.Skills[0].Target)
	assert.Equal(t, "Evade [g]", second.Skills[0].Detail)
	assert.Nil(t, second.Skills[0].Transform)
}

func TestBuildServants_BasicSchema(t *testing.T) {
	export := `[{
		"id": 1, "collectionNo": 1, "name": "Shifter", "className": "caster", "type": "normal",
		"skills": [{
			"id": 5, "num": 3, "name": "Shift", "detail": "Transform", "unmodifiedDetail": "ignored",
			"priority": 2, "coolDown": [9, 9, 9, 9, 9, 8, 8, 8, 8, 7],
			"functions": [{"funcTargetType": "transformServant", "svals": [{"SetLimitCount": 4}]}]
		}]
	}]`
	opts := DefaultOptions()
	opts.Schema = SchemaBasic
	opts.CooldownMode = skill.CooldownMax

	servants, err := BuildServants([]byte(export), opts)
	require.NoError(t, err)
	require.Len(t, servants, 1)
	require.Len(t, servants[0].Skills, 1)

	s := servants[0].Skills[0]
	assert.Equal(t, "Transform", s.Detail)
	assert.Equal(t, []model.SkillTarget{model.TargetTransform}, s.Target)
	require.NotNil(t, s.Transform)
	assert.Equal(t, model.Transform{Ascension: 2, TargetAscension: 4}, *s.Transform)
	require.NotNil(t, s.Cooldown.Max)
	assert.Equal(t, 9, *s.Cooldown.Max)
}

func TestBuildServants_CommandNPAndChoice(t *testing.T) {
	export := `[{
		"id": 1, "collectionNo": 1, "name": "Picker", "className": "ruler", "type": "normal",
		"skills": [{
			"id": 7, "num": 1, "name": "Pick",
			"coolDown": [8, 8, 8, 8, 8, 7, 7, 7, 7, 6],
			"script": {"SelectAddInfo": [{"title": "Choose", "btn": [{"name": "Left"}, {"name": ""}, {"name": "Right"}]}]},
			"functions": [
				{"funcTargetType": "commandTypeSelfTreasureDevice", "buffs": []},
				{"funcTargetType": "commandTypeSelfTreasureDevice", "buffs": [{"name": "Buster NP"}]},
				{"funcTargetType": "commandTypeSelfTreasureDevice", "buffs": [{"name": "Arts NP"}]},
				{"funcTargetType": "ptOne"}
			]
		}]
	}]`

	servants, err := BuildServants([]byte(export), DefaultOptions())
	require.NoError(t, err)
	s := servants[0].Skills[0]

	assert.Equal(t, []model.SkillTarget{model.TargetChoice2, model.TargetOne, model.TargetCommandNPType2}, s.Target)
	assert.Equal(t, []model.ButtonGroup{
		{Title: "Choose", Buttons: []string{"Left", "Right"}},
		{Buttons: []string{"Buster NP", "Arts NP"}},
	}, s.Buttons)
}

func TestBuildServants_MalformedFieldsDegrade(t *testing.T) {
	export := `[{
		"id": "oops", "collectionNo": 1, "name": 12, "className": "saber", "type": "normal",
		"noblePhantasms": {"not": "a list"},
		"skills": [{
			"id": 3, "name": "Odd", "coolDown": "fast",
			"script": {"SelectAddInfo": {"btn": "x"}},
			"functions": [{"funcTargetType": 5, "buffs": "none"}, "garbage", {"svals": 1}]
		}]
	}]`

	servants, err := BuildServants([]byte(export), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, servants, 1)

	sv := servants[0]
	assert.Equal(t, 0, sv.ID)
	assert.Equal(t, "", sv.Name)
	assert.Empty(t, sv.NoblePhantasms)
	require.Len(t, sv.Skills, 1)
	assert.Equal(t, []model.SkillTarget{model.TargetAll}, sv.Skills[0].Target)
	assert.Empty(t, sv.Skills[0].Buttons)
	assert.Empty(t, sv.Skills[0].Cooldown.Milestones)
}

func TestBuildServants_UnknownCardType(t *testing.T) {
	export := `[{
		"id": 1, "collectionNo": 1, "name": "Bad", "className": "saber", "type": "normal",
		"noblePhantasms": [{"id": 2, "num": 1, "name": "NP", "card": "extra"}]
	}]`

	_, err := BuildServants([]byte(export), DefaultOptions())
	assert.ErrorIs(t, err, model.ErrUnknownCardType)
}

func TestBuildServants_Documents(t *testing.T) {
	servants, err := BuildServants(nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, servants)

	_, err = BuildServants([]byte(`{"id": 1}`), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = BuildServants([]byte(`[{"id": 1`), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestBuildMysticCodes(t *testing.T) {
	export := `[
	  {
	    "id": 20, "name": "Chaldea Combat Uniform",
	    "extraAssets": {"item": {"male": "m20.png", "female": "f20.png"}},
	    "skills": [
	      {"id": 980, "num": 0, "name": "Gandr", "coolDown": [15, 15, 15, 15, 15, 14, 14, 14, 14, 13],
	       "functions": [{"funcTargetType": "enemy"}]},
	      {"id": 981, "num": 0, "name": "Order Change", "coolDown": [15, 15, 15, 15, 15, 14, 14, 14, 14, 13],
	       "functions": [{"funcTargetType": "ptselectOneSub"}]}
	    ]
	  },
	  {
	    "id": 1, "name": "Mystic Code: Chaldea",
	    "extraAssets": {"item": {"male": "m1.png"}},
	    "skills": [
	      {"id": 960, "num": 0, "name": "Emergency Evade", "coolDown": [15, 15, 15, 15, 15, 14, 14, 14, 14, 13],
	       "functions": [{"funcTargetType": "ptOne"}]}
	    ]
	  }
	]`

	codes, err := BuildMysticCodes([]byte(export), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, codes, 2)

	assert.Equal(t, 1, codes[0].ID)
	assert.Equal(t, map[string]string{"male": "m1.png", "female": ""}, codes[0].Assets)

	combat := codes[1]
	assert.Equal(t, 20, combat.ID)
	require.Len(t, combat.Skills, 2)
	assert.Equal(t, 0, combat.Skills[0].Num)
	assert.Equal(t, 1, combat.Skills[1].Num)
	assert.Equal(t, []model.SkillTarget{model.TargetAll}, combat.Skills[0].Target)
	assert.Equal(t, []model.SkillTarget{model.TargetOrderChange}, combat.Skills[1].Target)
}

func TestLookupSchema(t *testing.T) {
	s, err := LookupSchema("basic")
	require.NoError(t, err)
	assert.Equal(t, SchemaBasic, s)

	_, err = LookupSchema("xml")
	assert.Error(t, err)
}
