package levelup

import (
	"context"
	"fmt"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
	"github.com/osse101/UpgradeDraft_Go/internal/player"
)

// upgradeEffects pays for and applies a chosen option to its player.
// It never touches the draft session, which holds its own lock while calling Apply.
type upgradeEffects struct {
	player *player.Player
	bonus  []domain.StatModifier
}

// Apply withdraws the cost, applies the option's modifiers and then the
// per-level bonus. Nothing is changed when the player cannot pay.
func (e *upgradeEffects) Apply(ctx context.Context, option domain.UpgradeOption) error {
	if err := checkModifiers(option.Effects); err != nil {
		return err
	}

	if err := e.player.Withdraw(option.Cost); err != nil {
		return err
	}

	for _, mod := range option.Effects {
		if err := e.player.ApplyModifier(mod); err != nil {
			if refundErr := e.player.Deposit(option.Cost); refundErr != nil {
				logger.FromContext(ctx).Error(LogMsgRefundFailed, "player_id", e.player.ID(), "error", refundErr)
			}
			return err
		}
	}

	for _, mod := range e.bonus {
		if err := e.player.ApplyModifier(mod); err != nil {
			logger.FromContext(ctx).Warn("Skipping invalid level-up bonus", "stat", mod.Stat, "error", err)
		}
	}

	if heal := e.player.Stat(player.StatHealOnLevel); heal > 0 {
		e.player.Heal(int(heal))
	}
	return nil
}

func checkModifiers(mods []domain.StatModifier) error {
	for _, mod := range mods {
		if mod.Kind != domain.ModifierAdd && mod.Kind != domain.ModifierMultiply {
			return fmt.Errorf("unknown modifier kind %q for stat %s", mod.Kind, mod.Stat)
		}
	}
	return nil
}
