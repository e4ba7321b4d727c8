package skill

import (
	"fmt"

	"github.com/udisondev/fgoexport/internal/model"
)

// Assemble builds a normalized skill from its raw fields.
// Transform data is attached only when the Transform tag was inferred; the
// current ascension is the raw priority value.
func Assemble(in Input, mode CooldownMode) (model.Skill, error) {
	cooldown, err := NormalizeCooldown(in.Cooldown, mode)
	if err != nil {
		return model.Skill{}, fmt.Errorf("skill %d: %w", in.ID, err)
	}

	c := Classify(in.Scripts, in.Functions)

	s := model.Skill{
		ID:       in.ID,
		Num:      in.Num,
		Name:     in.Name,
		Detail:   in.Detail,
		Icon:     in.Icon,
		Cooldown: cooldown,
		Target:   c.Targets,
		Buttons:  c.Buttons,
	}
	if s.HasTarget(model.TargetTransform) {
		s.Transform = &model.Transform{Ascension: in.Priority}
		if c.TargetAscension != nil {
			s.Transform.TargetAscension = *c.TargetAscension
		}
	}
	return s, nil
}
