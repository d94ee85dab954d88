package catalog

import (
	"fmt"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

// File is the on-disk catalog document
type File struct {
	Version       string                 `yaml:"version" validate:"required"`
	Slots         int                    `yaml:"slots" validate:"gte=0,lte=10"`
	Wage          int64                  `yaml:"wage" validate:"gte=0"`
	LevelUpBonus  []domain.StatModifier  `yaml:"level_up_bonus" validate:"dive"`
	RarityWeights map[string]float64     `yaml:"rarity_weights"`
	Options       []domain.UpgradeOption `yaml:"options" validate:"required,min=1,dive"`
}

// Catalog is the validated, immutable set of upgrade options
type Catalog struct {
	version       string
	slots         int
	wage          int64
	levelUpBonus  []domain.StatModifier
	rarityWeights map[string]float64
	options       []domain.UpgradeOption
	byKey         map[string]int
}

// New validates the options and builds a catalog from them
func New(f File) (*Catalog, error) {
	if err := Validate(&f); err != nil {
		return nil, err
	}

	options := make([]domain.UpgradeOption, len(f.Options))
	byKey := make(map[string]int, len(f.Options))
	for i, opt := range f.Options {
		if opt.DisplayName == "" {
			opt.DisplayName = DisplayName(opt.Key)
		}
		options[i] = opt
		byKey[opt.Key] = i
	}

	slots := f.Slots
	if slots == 0 {
		slots = DefaultSlots
	}

	return &Catalog{
		version:       f.Version,
		slots:         slots,
		wage:          f.Wage,
		levelUpBonus:  append([]domain.StatModifier(nil), f.LevelUpBonus...),
		rarityWeights: f.RarityWeights,
		options:       options,
		byKey:         byKey,
	}, nil
}

// Options returns a fresh copy of every option, suitable as a draft pool
func (c *Catalog) Options() []domain.UpgradeOption {
	out := make([]domain.UpgradeOption, len(c.options))
	copy(out, c.options)
	return out
}

// Get returns the option with the given key
func (c *Catalog) Get(key string) (domain.UpgradeOption, error) {
	i, ok := c.byKey[key]
	if !ok {
		return domain.UpgradeOption{}, fmt.Errorf("%w: %s", domain.ErrUnknownOption, key)
	}
	return c.options[i], nil
}

// Len returns the number of options
func (c *Catalog) Len() int { return len(c.options) }

// Slots returns how many offers a draft should contain
func (c *Catalog) Slots() int { return c.slots }

// Wage returns the currency deposited on every level-up
func (c *Catalog) Wage() int64 { return c.wage }

// Version returns the catalog format version
func (c *Catalog) Version() string { return c.version }

// LevelUpBonus returns the effects applied on every resolved draft
func (c *Catalog) LevelUpBonus() []domain.StatModifier {
	return append([]domain.StatModifier(nil), c.levelUpBonus...)
}

// RarityWeights returns the optional rarity weight table; nil means uniform
func (c *Catalog) RarityWeights() map[string]float64 {
	if len(c.rarityWeights) == 0 {
		return nil
	}
	out := make(map[string]float64, len(c.rarityWeights))
	for k, v := range c.rarityWeights {
		out[k] = v
	}
	return out
}
