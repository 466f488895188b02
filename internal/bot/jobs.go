package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// autopostLeaderboard is the weekly scheduled build. Any failure
// degrades to "no leaderboard this cycle"; the scheduling loop lives on
func (bot *Bot) autopostLeaderboard() {
	channelid := bot.cfg.LeaderboardChannel
	if channelid == "" {
		log.Debug().Msg("No leaderboard channel configured, skipping autopost")
		return
	}
	guildid, err := bot.guildForChannel(channelid)
	if err != nil {
		log.Error().Err(err).Str("channel", channelid).Msg("Could not resolve leaderboard channel")
		return
	}
	log.Info().Msg("Autoposting the weekly leaderboard")
	bot.sendResponses(channelid, bot.leaderboard(context.Background(), guildid))
}

// birthdaySweep announces today's birthdays and hands out the birthday
// role. The 2x multiplier itself is applied per award, not here
func (bot *Bot) birthdaySweep() {
	ctx := context.Background()
	celebrating, err := bot.birthdays.Today(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Could not run the birthday sweep")
		return
	}
	if len(celebrating) == 0 {
		return
	}

	channelid := bot.cfg.BirthdayChannel
	for _, userid := range celebrating {
		log.Info().Str("user", userid).Msg("Birthday today")
		if channelid != "" {
			bot.sendResponses(channelid, BirthdayToday(userid))
			if guildid, err := bot.guildForChannel(channelid); err == nil {
				bot.grantRole(guildid, userid, bot.cfg.BirthdayRole)
			}
		}
	}
}

func (bot *Bot) dailyBackup() {
	if bot.backup == nil {
		return
	}
	path, err := bot.backup.Backup(context.Background(), time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Backup failed")
		return
	}
	log.Info().Str("path", path).Msg("Daily backup complete")
}

func (bot *Bot) podcastPoll() {
	if bot.podcast == nil || bot.cfg.PodcastChannel == "" {
		return
	}
	episode, err := bot.podcast.Poll(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Podcast poll failed")
		return
	}
	if episode == nil {
		return
	}
	bot.sendResponses(bot.cfg.PodcastChannel, PodcastMessage(episode))
}

func (bot *Bot) guildForChannel(channelid string) (string, error) {
	channel, err := bot.discord.Channel(channelid)
	if err != nil {
		return "", err
	}
	return channel.GuildID, nil
}
