package atlas

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/udisondev/fgoexport/internal/model"
	"github.com/udisondev/fgoexport/internal/skill"
)

// ErrInvalidDocument is returned when an export is not a JSON array.
var ErrInvalidDocument = errors.New("invalid export document")

// Options configure the entity builders.
type Options struct {
	Schema       Schema
	CooldownMode skill.CooldownMode
	// PlayableTypes filters servants by their "type" field; empty keeps all.
	PlayableTypes []string
	NameOverrides []NameOverride
}

// DefaultOptions returns the options for the JP nice export.
func DefaultOptions() Options {
	return Options{
		Schema:        SchemaNice,
		CooldownMode:  skill.CooldownMilestone,
		PlayableTypes: []string{"heroine", "normal"},
		NameOverrides: DefaultNameOverrides(),
	}
}

// records returns the top-level array elements of an export.
// Empty input means no data and yields no records.
func records(raw []byte) ([]gjson.Result, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: top level is %s, want array", ErrInvalidDocument, doc.Type)
	}
	return doc.Array(), nil
}

// buildSkills assembles every skill of a record. When indexNum is set the
// skill num is its position in the list instead of the raw num field.
func buildSkills(v gjson.Result, opts Options, indexNum bool) ([]model.Skill, error) {
	skills := []model.Skill{}
	var err error
	each(field(v, "skills"), func(raw gjson.Result) {
		if err != nil {
			return
		}
		n := num(field(raw, "num"))
		if indexNum {
			n = len(skills)
		}
		var s model.Skill
		s, err = skill.Assemble(decodeSkill(raw, n, opts.Schema), opts.CooldownMode)
		if err != nil {
			return
		}
		skills = append(skills, s)
	})
	return skills, err
}

// BuildServants normalizes a servant export. Records are processed in
// ascending collection number order, which fixes the outcome of name
// disambiguation.
func BuildServants(raw []byte, opts Options) ([]model.Servant, error) {
	recs, err := records(raw)
	if err != nil {
		return nil, fmt.Errorf("servant export: %w", err)
	}

	slices.SortStableFunc(recs, func(a, b gjson.Result) int {
		return cmp.Compare(num(field(a, "collectionNo")), num(field(b, "collectionNo")))
	})

	namer := NewNamer(opts.NameOverrides)
	servants := make([]model.Servant, 0, len(recs))
	for _, v := range recs {
		if len(opts.PlayableTypes) > 0 && !slices.Contains(opts.PlayableTypes, str(field(v, "type"))) {
			continue
		}

		s, err := buildServant(v, opts, namer)
		if err != nil {
			return nil, err
		}
		servants = append(servants, s)
	}

	slog.Info("built servants", "records", len(recs), "servants", len(servants))
	return servants, nil
}

func buildServant(v gjson.Result, opts Options, namer *Namer) (model.Servant, error) {
	id := num(field(v, "id"))
	rawName := str(field(v, "name"))
	className := str(field(v, "className"))

	name := namer.Name(NameRecord{
		Name:      rawName,
		Rarity:    num(field(v, "rarity")),
		Gender:    str(field(v, "gender")),
		ClassName: className,
	})
	if name != rawName {
		slog.Debug("servant renamed", "id", id, "from", rawName, "to", name)
	}

	nps := []model.NoblePhantasm{}
	var npErr error
	each(field(v, "noblePhantasms"), func(np gjson.Result) {
		if npErr != nil {
			return
		}
		card, err := model.ParseCardType(str(field(np, "card")))
		if err != nil {
			npErr = fmt.Errorf("servant %d noble phantasm %d: %w", id, num(field(np, "id")), err)
			return
		}
		nps = append(nps, model.NoblePhantasm{
			ID:   num(field(np, "id")),
			Num:  num(field(np, "num")),
			Name: str(field(np, "name")),
			Card: card,
		})
	})
	if npErr != nil {
		return model.Servant{}, npErr
	}

	skills, err := buildSkills(v, opts, false)
	if err != nil {
		return model.Servant{}, fmt.Errorf("servant %d: %w", id, err)
	}

	return model.Servant{
		ID:             id,
		CollectionNo:   num(field(v, "collectionNo")),
		Name:           name,
		ClassName:      className,
		Rarity:         num(field(v, "rarity")),
		NoblePhantasms: nps,
		Skills:         skills,
	}, nil
}

// BuildMysticCodes normalizes a mystic code export, sorted by id.
// The export reports num 0 for every mystic code skill, so skills are
// numbered by position.
func BuildMysticCodes(raw []byte, opts Options) ([]model.MysticCode, error) {
	recs, err := records(raw)
	if err != nil {
		return nil, fmt.Errorf("mystic code export: %w", err)
	}

	codes := make([]model.MysticCode, 0, len(recs))
	for _, v := range recs {
		id := num(field(v, "id"))
		skills, err := buildSkills(v, opts, true)
		if err != nil {
			return nil, fmt.Errorf("mystic code %d: %w", id, err)
		}

		item := field(field(v, "extraAssets"), "item")
		codes = append(codes, model.MysticCode{
			ID:   id,
			Name: str(field(v, "name")),
			Assets: map[string]string{
				model.AssetMale:   str(field(item, model.AssetMale)),
				model.AssetFemale: str(field(item, model.AssetFemale)),
			},
			Skills: skills,
		})
	}

	slices.SortStableFunc(codes, func(a, b model.MysticCode) int {
		return cmp.Compare(a.ID, b.ID)
	})

	slog.Info("built mystic codes", "count", len(codes))
	return codes, nil
}
