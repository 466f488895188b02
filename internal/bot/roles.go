package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sweeperleader/internal/leaderboard"
	"sweeperleader/internal/rank"
	"sweeperleader/internal/store"
)

// moveRankRole swaps the tier roles after a rank change. Role trouble
// is logged and swallowed: the experience is already committed
func (bot *Bot) moveRankRole(guildid, userid, oldTier, newTier string) {
	if guildid == "" {
		return
	}
	if oldTier != rank.Unranked {
		bot.revokeRole(guildid, userid, oldTier)
	}
	if newTier != rank.Unranked {
		bot.grantRole(guildid, userid, newTier)
	}
}

// moveCleanerRole applies a rotation event to the Discord role
func (bot *Bot) moveCleanerRole(guildid string, event *leaderboard.RotationEvent) {
	if guildid == "" {
		return
	}
	if event.From != "" {
		bot.revokeRole(guildid, event.From, bot.cfg.CleanerRole)
	}
	if event.To != "" {
		bot.grantRole(guildid, event.To, bot.cfg.CleanerRole)
	}
}

func (bot *Bot) grantRole(guildid, userid, roleName string) {
	roleid, err := bot.roleId(guildid, roleName)
	if err != nil {
		log.Warn().Err(err).Str("role", roleName).Msg("Could not resolve role")
		return
	}
	if err := bot.discord.GuildMemberRoleAdd(guildid, userid, roleid); err != nil {
		log.Warn().Err(err).Str("user", userid).Str("role", roleName).Msg("Could not grant role")
	}
}

func (bot *Bot) revokeRole(guildid, userid, roleName string) {
	roleid, err := bot.roleId(guildid, roleName)
	if err != nil {
		log.Warn().Err(err).Str("role", roleName).Msg("Could not resolve role")
		return
	}
	if err := bot.discord.GuildMemberRoleRemove(guildid, userid, roleid); err != nil {
		log.Warn().Err(err).Str("user", userid).Str("role", roleName).Msg("Could not revoke role")
	}
}

func (bot *Bot) roleId(guildid, roleName string) (string, error) {
	roles, err := bot.discord.GuildRoles(guildid)
	if err != nil {
		return "", fmt.Errorf("could not list roles of guild %s: %w", guildid, err)
	}
	for _, role := range roles {
		if role.Name == roleName {
			return role.ID, nil
		}
	}
	return "", fmt.Errorf("no role named %q in guild %s", roleName, guildid)
}

func (bot *Bot) memberHasRole(guildid, userid, roleName string) bool {
	member, err := bot.discord.GuildMember(guildid, userid)
	if err != nil {
		log.Warn().Err(err).Str("user", userid).Msg("Could not fetch member")
		return false
	}
	roleid, err := bot.roleId(guildid, roleName)
	if err != nil {
		return false
	}
	for _, id := range member.Roles {
		if id == roleid {
			return true
		}
	}
	return false
}

// restoreTracker rebuilds the Cleaner tracker from the backing store
func restoreTracker(ctx context.Context, kv store.KV) (*leaderboard.Tracker, error) {
	leader, ok, err := kv.Get(ctx, store.BucketCleaner, cleanerLeaderKey)
	if err != nil {
		return nil, err
	}
	if !ok || leader == "" {
		return leaderboard.NewTracker(), nil
	}
	raw, ok, err := kv.Get(ctx, store.BucketCleaner, cleanerSinceKey)
	if err != nil {
		return nil, err
	}
	since := time.Now()
	if ok {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			since = parsed
		}
	}
	return leaderboard.RestoreTracker(leader, since), nil
}

// persistCleaner writes the tracker state through to the store so a
// restart keeps the bonus timer honest
func (bot *Bot) persistCleaner(ctx context.Context) {
	leader, held := bot.tracker.Leader()
	if !held {
		if err := bot.kv.Delete(ctx, store.BucketCleaner, cleanerLeaderKey); err != nil {
			log.Error().Err(err).Msg("Could not clear Cleaner state")
		}
		return
	}
	since, _ := bot.tracker.HeldSince()
	if err := bot.kv.Put(ctx, store.BucketCleaner, cleanerLeaderKey, leader); err != nil {
		log.Error().Err(err).Msg("Could not persist Cleaner leader")
		return
	}
	if err := bot.kv.Put(ctx, store.BucketCleaner, cleanerSinceKey, since.UTC().Format(time.RFC3339)); err != nil {
		log.Error().Err(err).Msg("Could not persist Cleaner hold time")
	}
}
