// Package skill classifies raw Atlas skill fragments into normalized model.Skill values.
//
// Input arrives already decoded into the schema-independent types below; the
// per-export field naming lives in package atlas.
package skill

// Raw target and function type values understood by the classifier.
const (
	TargetTypePtOne               = "ptOne"
	TargetTypeCommandSelfTreasure = "commandTypeSelfTreasureDevice"
	TargetTypePtSelectOneSub      = "ptselectOneSub"
	FuncTypeTransformServant      = "transformServant"
)

// Choice is one script.SelectAddInfo entry.
type Choice struct {
	Title   string
	Buttons []string // btn[].name, empty names kept
}

// Scripts is the part of a skill script the classifier looks at.
type Scripts struct {
	Choices []Choice
}

// Param is one svals entry of a function.
type Param struct {
	SetLimitCount *int
}

// Function описывает одну запись functions[] скилла.
type Function struct {
	TargetType string   // funcTargetType
	Type       string   // funcType, empty in exports that fold it into TargetType
	BuffNames  []string // buffs[].name
	Params     []Param  // svals
}

// isTransform accepts both the function type and the target type as the
// transform marker; older exports only carry the latter.
func (f Function) isTransform() bool {
	return f.Type == FuncTypeTransformServant || f.TargetType == FuncTypeTransformServant
}

// Input carries the raw fields of one skill fragment.
type Input struct {
	ID        int
	Num       int
	Name      string
	Detail    string
	Icon      string
	Cooldown  []int
	Priority  int
	Scripts   Scripts
	Functions []Function
}
