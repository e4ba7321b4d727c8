package atlas

import (
	"github.com/tidwall/gjson"

	"github.com/udisondev/fgoexport/internal/skill"
)

// decodeSkill maps one raw skill object to classifier input.
// skillNum is passed in because mystic code exports report a wrong num.
func decodeSkill(v gjson.Result, skillNum int, schema Schema) skill.Input {
	return skill.Input{
		ID:        num(field(v, "id")),
		Num:       skillNum,
		Name:      str(field(v, "name")),
		Detail:    str(field(v, schema.DetailField)),
		Icon:      str(field(v, "icon")),
		Cooldown:  ints(field(v, "coolDown")),
		Priority:  num(field(v, "priority")),
		Scripts:   decodeScripts(field(v, "script")),
		Functions: decodeFunctions(field(v, "functions"), schema),
	}
}

// decodeScripts reads script.SelectAddInfo[].{title, btn[].name}.
func decodeScripts(v gjson.Result) skill.Scripts {
	var s skill.Scripts
	each(field(v, "SelectAddInfo"), func(info gjson.Result) {
		c := skill.Choice{Title: str(field(info, "title"))}
		each(field(info, "btn"), func(btn gjson.Result) {
			c.Buttons = append(c.Buttons, str(field(btn, "name")))
		})
		s.Choices = append(s.Choices, c)
	})
	return s
}

func decodeFunctions(v gjson.Result, schema Schema) []skill.Function {
	var out []skill.Function
	each(v, func(fn gjson.Result) {
		f := skill.Function{
			TargetType: str(field(fn, schema.TargetTypeField)),
			Type:       str(field(fn, schema.FuncTypeField)),
		}
		each(field(fn, "buffs"), func(buff gjson.Result) {
			f.BuffNames = append(f.BuffNames, str(field(buff, "name")))
		})
		each(field(fn, "svals"), func(sval gjson.Result) {
			f.Params = append(f.Params, skill.Param{SetLimitCount: numPtr(field(sval, "SetLimitCount"))})
		})
		out = append(out, f)
	})
	return out
}
