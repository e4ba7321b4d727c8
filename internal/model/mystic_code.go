package model

// Asset variant keys of MysticCode.Assets.
const (
	AssetMale   = "male"
	AssetFemale = "female"
)

// MysticCode описывает мистик-код мастера со своими скиллами.
type MysticCode struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Assets map[string]string `json:"assets"`
	Skills []Skill           `json:"skills"`
}
