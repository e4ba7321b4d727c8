package model

import (
	"encoding/json"
	"slices"
	"strconv"
)

// SkillTarget это тег поведения скилла, выведенный из script/functions.
// Serialized as its string value.
type SkillTarget string

const (
	TargetUnknown        SkillTarget = "Unknown"
	TargetOne            SkillTarget = "TargetOne"
	TargetAll            SkillTarget = "TargetAll"
	TargetCommandNPType2 SkillTarget = "CommandNPType2"
	TargetCommandNPType3 SkillTarget = "CommandNPType3"
	TargetChoice2        SkillTarget = "Choice2"
	TargetChoice3        SkillTarget = "Choice3"
	TargetTransform      SkillTarget = "Transform"
	TargetOrderChange    SkillTarget = "OrderChange"
)

// DedupeTargets collapses repeated tags keeping the first occurrence of each.
func DedupeTargets(targets []SkillTarget) []SkillTarget {
	out := make([]SkillTarget, 0, len(targets))
	for _, t := range targets {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// ButtonGroup is one row of selectable buttons shown for a skill.
type ButtonGroup struct {
	Title   string   `json:"title,omitempty"`
	Buttons []string `json:"buttons"`
}

// Transform holds ascension data for Transform skills.
type Transform struct {
	Ascension       int `json:"ascension"`
	TargetAscension int `json:"targetAscension"`
}

// Cooldown summarizes a per-level cooldown table.
// Exactly one of Max and Milestones is meaningful: Max is set in maximum mode,
// Milestones (level -> turns) otherwise.
type Cooldown struct {
	Max        *int
	Milestones map[int]int
}

// MaxCooldown returns a Cooldown in maximum mode.
func MaxCooldown(v int) Cooldown {
	return Cooldown{Max: &v}
}

// MarshalJSON encodes a number in maximum mode and a level-keyed object otherwise.
func (c Cooldown) MarshalJSON() ([]byte, error) {
	if c.Max != nil {
		return []byte(strconv.Itoa(*c.Max)), nil
	}
	m := make(map[string]int, len(c.Milestones))
	for level, v := range c.Milestones {
		m[strconv.Itoa(level)] = v
	}
	return json.Marshal(m)
}

// Skill is a normalized servant or mystic code skill.
// Built once by skill.Assemble and not modified afterwards.
type Skill struct {
	ID        int           `json:"id"`
	Num       int           `json:"num"`
	Name      string        `json:"name"`
	Detail    string        `json:"detail"`
	Icon      string        `json:"icon"`
	Cooldown  Cooldown      `json:"cooldown"`
	Target    []SkillTarget `json:"target"`
	Buttons   []ButtonGroup `json:"buttons"`
	Transform *Transform    `json:"transform"`
}

// HasTarget reports whether t is among the skill's tags.
func (s *Skill) HasTarget(t SkillTarget) bool {
	return slices.Contains(s.Target, t)
}
