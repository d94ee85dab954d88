package domain

// Stat modifier kinds
const (
	ModifierAdd      = "add"
	ModifierMultiply = "multiply"
)

// StatModifier changes one player stat when an upgrade is applied
type StatModifier struct {
	Stat   string  `json:"stat" yaml:"stat" validate:"required"`
	Kind   string  `json:"kind" yaml:"kind" validate:"required,oneof=add multiply"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// UpgradeOption is one purchasable effect offered during a draft.
// Options are defined statically and compared by Key.
type UpgradeOption struct {
	Key           string         `json:"key" yaml:"key" validate:"required,max=64"`
	DisplayName   string         `json:"display_name" yaml:"display_name"`
	Description   string         `json:"description,omitempty" yaml:"description"`
	Rarity        string         `json:"rarity,omitempty" yaml:"rarity"`
	Cost          int64          `json:"cost" yaml:"cost" validate:"gte=0"`
	PurchaseLimit int            `json:"purchase_limit" yaml:"purchase_limit" validate:"gte=0"` // 0 = unlimited
	Prerequisites []string       `json:"prerequisites,omitempty" yaml:"prerequisites"`
	Effects       []StatModifier `json:"effects,omitempty" yaml:"effects" validate:"dive"`
}

// Unlimited reports whether the option can be purchased any number of times
func (o UpgradeOption) Unlimited() bool {
	return o.PurchaseLimit <= 0
}
