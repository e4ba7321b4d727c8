package skill

import "github.com/udisondev/fgoexport/internal/model"

// commandNPState tracks a run of commandTypeSelfTreasureDevice functions.
// Pending is entered by the first function of the run, which carries no button.
type commandNPState int8

const (
	commandNPUnset commandNPState = iota
	commandNPPending
	commandNPRejected
)

func (s commandNPState) reject() commandNPState {
	if s == commandNPUnset {
		return s
	}
	return commandNPRejected
}

// Classification is the result of Classify.
type Classification struct {
	Targets []model.SkillTarget
	Buttons []model.ButtonGroup
	// TargetAscension is nil unless a transform function was seen.
	TargetAscension *int
}

// Classify infers target tags and button groups of a skill from its script
// choices and function list. Targets is never empty and holds no duplicates.
func Classify(scripts Scripts, functions []Function) Classification {
	c := Classification{Buttons: []model.ButtonGroup{}}

	var targets []model.SkillTarget
	if group, ok := choiceGroup(scripts); ok {
		switch len(group.Buttons) {
		case 2:
			targets = append(targets, model.TargetChoice2)
			c.Buttons = append(c.Buttons, group)
		case 3:
			targets = append(targets, model.TargetChoice3)
			c.Buttons = append(c.Buttons, group)
		}
	}

	fr := classifyFunctions(functions)
	targets = append(targets, fr.targets...)
	if len(targets) == 0 {
		targets = append(targets, model.TargetAll)
	}
	c.Targets = model.DedupeTargets(targets)

	if len(fr.commandButtons) > 0 {
		c.Buttons = append(c.Buttons, model.ButtonGroup{Buttons: fr.commandButtons})
	}
	c.TargetAscension = fr.targetAscension
	return c
}

// choiceGroup collects the non-empty button names of the first choice entry.
func choiceGroup(scripts Scripts) (model.ButtonGroup, bool) {
	if len(scripts.Choices) == 0 {
		return model.ButtonGroup{}, false
	}
	first := scripts.Choices[0]
	names := make([]string, 0, len(first.Buttons))
	for _, name := range first.Buttons {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return model.ButtonGroup{Title: first.Title, Buttons: names}, true
}

type functionResult struct {
	targets         []model.SkillTarget
	commandButtons  []string
	targetAscension *int
}

func classifyFunctions(functions []Function) functionResult {
	var (
		res   functionResult
		state commandNPState
	)

	for _, fn := range functions {
		if fn.TargetType == "" {
			continue
		}

		switch fn.TargetType {
		case TargetTypePtOne:
			res.targets = append(res.targets, model.TargetOne)
			state = state.reject()
		case TargetTypeCommandSelfTreasure:
			switch state {
			case commandNPUnset:
				state = commandNPPending
			case commandNPPending:
				if len(fn.BuffNames) > 0 && fn.BuffNames[0] != "" {
					res.commandButtons = append(res.commandButtons, fn.BuffNames[0])
				}
			}
		case TargetTypePtSelectOneSub:
			res.targets = append(res.targets, model.TargetOrderChange)
		case FuncTypeTransformServant:
			// target type alias of the transform function, handled below
		default:
			state = state.reject()
		}

		if fn.isTransform() {
			res.targets = append(res.targets, model.TargetTransform)
			v := 0
			if len(fn.Params) > 0 && fn.Params[0].SetLimitCount != nil {
				v = *fn.Params[0].SetLimitCount
			}
			res.targetAscension = &v
		}

		if state == commandNPRejected {
			switch len(res.commandButtons) {
			case 2:
				res.targets = append(res.targets, model.TargetCommandNPType2)
			case 3:
				res.targets = append(res.targets, model.TargetCommandNPType3)
			}
			state = commandNPUnset
		}
	}

	return res
}
