package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"sweeperleader/internal/birthday"
	"sweeperleader/internal/common"
	"sweeperleader/internal/config"
	"sweeperleader/internal/fortnite"
	"sweeperleader/internal/leaderboard"
	"sweeperleader/internal/ledger"
	"sweeperleader/internal/podcast"
	"sweeperleader/internal/rank"
	"sweeperleader/internal/render"
	"sweeperleader/internal/store"
	"sweeperleader/internal/tournament"
)

// Experience awarded for qualifying chat activity
const (
	MESSAGE_XP  = 5
	REACTION_XP = 10
)

// How many players appear on the rendered leaderboard
const LEADERBOARD_SIZE = 10

// Keys of the persisted Cleaner state
const (
	cleanerLeaderKey = "leader"
	cleanerSinceKey  = "since"
)

// Backupper is implemented by stores that can snapshot themselves,
// used by the daily backup job
type Backupper interface {
	Backup(ctx context.Context, now time.Time) (string, error)
}

type Bot struct {
	cfg         *config.Config
	kv          store.KV
	ledger      *ledger.Ledger
	tiers       *rank.Table
	stats       *fortnite.Client
	tracker     *leaderboard.Tracker
	birthdays   *birthday.Registry
	tournaments *tournament.Registry
	podcast     *podcast.Poller
	backup      Backupper

	discord *discordgo.Session
}

func New(cfg *config.Config, kv store.KV, xpLedger *ledger.Ledger, tiers *rank.Table, stats *fortnite.Client, poller *podcast.Poller, backup Backupper) (*Bot, error) {

	bot := Bot{
		cfg:         cfg,
		kv:          kv,
		ledger:      xpLedger,
		tiers:       tiers,
		stats:       stats,
		birthdays:   birthday.NewRegistry(kv),
		tournaments: tournament.NewRegistry(kv),
		podcast:     poller,
		backup:      backup,
	}

	// Pick up the Cleaner state from the previous run so the bonus
	// timer survives restarts
	tracker, err := restoreTracker(context.Background(), kv)
	if err != nil {
		return nil, err
	}
	bot.tracker = tracker

	return &bot, nil
}

func (bot *Bot) Run() error {
	discord, err := discordgo.New("Bot " + bot.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	discord.AddHandler(bot.onMessage)
	discord.AddHandler(bot.onReactionAdd)

	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()
	bot.discord = discord
	log.Info().Msg("Discord session open")

	// Scheduled jobs tick on the main cycle; each fires only when its
	// own period has elapsed
	executors := []common.TimedExecutor{
		common.NewTimedExecutor("leaderboard autopost", bot.cfg.LeaderboardPeriod, bot.autopostLeaderboard),
		common.NewTimedExecutor("birthday sweep", bot.cfg.BirthdayPeriod, bot.birthdaySweep),
		common.NewTimedExecutor("daily backup", bot.cfg.BackupPeriod, bot.dailyBackup),
		common.NewTimedExecutor("podcast poll", bot.cfg.PodcastPeriod, bot.podcastPoll),
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	ticker := time.NewTicker(bot.cfg.MainCycle)
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			log.Info().Msg("Shutting down")
			return nil
		case <-ticker.C:
			for i := range executors {
				executors[i].Execute()
			}
		}
	}
}

func (bot *Bot) onMessage(discord *discordgo.Session, message *discordgo.MessageCreate) {

	// Reject bots, including myself
	if message.Author.Bot {
		return
	}
	// Ignore private messages; experience only counts on the server
	if message.GuildID == "" {
		return
	}

	ctx := context.Background()

	// Every message earns experience, command or not
	bot.awardActivity(ctx, message.GuildID, message.ChannelID, message.Author.ID, MESSAGE_XP)

	parseResult := Parse(message.Content)
	switch parseResult.parseid {
	case PARSEID_NO_BOT_PREFIX:
		return
	case PARSEID_OK:
		log.Debug().Str("content", message.Content).Msg("Command understood")
		bot.sendResponses(message.ChannelID, bot.dispatch(ctx, discord, message, parseResult))
	default:
		log.Debug().Str("content", message.Content).Str("reason", parseResult.errorMessage).Msg("Wrong input")
		bot.sendResponses(message.ChannelID, InputNotValid(parseResult.errorMessage))
	}
}

func (bot *Bot) onReactionAdd(discord *discordgo.Session, reaction *discordgo.MessageReactionAdd) {

	if reaction.GuildID == "" {
		return
	}
	if reaction.Member != nil && reaction.Member.User != nil && reaction.Member.User.Bot {
		return
	}

	ctx := context.Background()
	bot.awardActivity(ctx, reaction.GuildID, reaction.ChannelID, reaction.UserID, REACTION_XP)
}

func (bot *Bot) dispatch(ctx context.Context, discord *discordgo.Session, message *discordgo.MessageCreate, parseResult ParseResult) []Response {

	switch parseResult.command {
	case COMMAND_RANK:
		return bot.rank(ctx, message.Author.ID)
	case COMMAND_LEADERBOARD:
		return bot.leaderboard(ctx, message.GuildID)
	case COMMAND_LINKEPIC:
		switch handle := parseResult.arguments.(type) {
		default:
			panic(fmt.Sprintf("unexpected type of epic handle %T", handle))
		case string:
			return bot.linkEpic(ctx, message.Author.ID, handle)
		}
	case COMMAND_SETBIRTHDAY:
		switch date := parseResult.arguments.(type) {
		default:
			panic(fmt.Sprintf("unexpected type of birthday %T", date))
		case string:
			return bot.setBirthday(ctx, message.Author.ID, date)
		}
	case COMMAND_GIVEXP:
		switch args := parseResult.arguments.(type) {
		default:
			panic(fmt.Sprintf("unexpected type of givexp arguments %T", args))
		case GiveXp:
			return bot.giveXp(ctx, message, args)
		}
	case COMMAND_TOURNAMENT:
		switch args := parseResult.arguments.(type) {
		default:
			panic(fmt.Sprintf("unexpected type of tournament arguments %T", args))
		case TournamentArgs:
			return bot.tournament(ctx, message.Author.ID, args)
		}
	case COMMAND_STATUS:
		return bot.status(ctx)
	case COMMAND_HELP:
		return HelpMessage()
	default:
		panic(fmt.Sprintf("command %d is not one of the possible ones", parseResult.command))
	}
}

// awardActivity adds experience for a message or reaction, announcing
// and granting the rank role when the tier changes
func (bot *Bot) awardActivity(ctx context.Context, guildid, channelid, userid string, amount int) {

	multiplier := bot.multiplierFor(ctx, userid, time.Now())
	result, err := bot.ledger.Award(ctx, userid, amount, multiplier)
	if err != nil {
		if errors.Is(err, ledger.ErrPersistence) {
			log.Error().Err(err).Str("user", userid).Msg("Award not committed")
		} else {
			log.Error().Err(err).Str("user", userid).Msg("Award rejected")
		}
		return
	}

	if result.TierChanged {
		log.Info().Str("user", userid).Str("tier", result.NewTier).Msg("Rank up")
		bot.sendResponses(channelid, RankUpMessage(userid, result.NewTier))
		bot.moveRankRole(guildid, userid, result.OldTier, result.NewTier)
	}
}

// multiplierFor decides the experience multiplier at the moment of the
// award: 2x on the user's birthday, 2x for a Cleaner who has held the
// role long enough, 1x otherwise
func (bot *Bot) multiplierFor(ctx context.Context, userid string, now time.Time) float64 {
	celebrating, err := bot.birthdays.IsBirthday(ctx, userid, now)
	if err != nil {
		log.Error().Err(err).Str("user", userid).Msg("Could not check birthday")
	}
	if celebrating {
		return 2
	}
	if leader, ok := bot.tracker.Leader(); ok && leader == userid && bot.tracker.BonusEligible(now) {
		return 2
	}
	return 1
}

func (bot *Bot) rank(ctx context.Context, userid string) []Response {
	total, err := bot.ledger.Total(ctx, userid)
	if err != nil {
		log.Error().Err(err).Str("user", userid).Msg("Could not read experience")
		return ErrorMessage()
	}
	tier, err := bot.tiers.TierFor(total)
	if err != nil {
		log.Error().Err(err).Int("total", total).Msg("Could not compute tier")
		return ErrorMessage()
	}
	return RankMessage(userid, total, tier)
}

// leaderboard builds a fresh board: look up every linked player,
// rank, render, and rotate the Cleaner role if the leader changed
func (bot *Bot) leaderboard(ctx context.Context, guildid string) []Response {

	links, err := bot.epicLinks(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Could not list epic links")
		return NoLeaderboard()
	}

	entries := bot.stats.BatchStats(ctx, links)
	ranked, err := leaderboard.Rank(entries, LEADERBOARD_SIZE)
	if err != nil {
		log.Error().Err(err).Msg("Could not rank the leaderboard")
		return NoLeaderboard()
	}

	var responses []Response
	if len(ranked) == 0 {
		responses = EmptyLeaderboard()
	} else {
		image, err := render.Leaderboard(ranked)
		if err != nil {
			log.Error().Err(err).Msg("Could not render the leaderboard")
			return NoLeaderboard()
		}
		responses = LeaderboardImage(image, "K/D Leaderboard")
	}

	leader, _ := leaderboard.Leader(ranked)
	if event := bot.tracker.Update(leader, time.Now()); event != nil {
		bot.persistCleaner(ctx)
		bot.moveCleanerRole(guildid, event)
		responses = append(responses, RotationMessage(event, bot.cfg.CleanerRole)...)
	}
	return responses
}

func (bot *Bot) linkEpic(ctx context.Context, userid, handle string) []Response {
	if err := bot.kv.Put(ctx, store.BucketEpicLinks, userid, handle); err != nil {
		log.Error().Err(err).Str("user", userid).Msg("Could not store epic link")
		return ErrorMessage()
	}
	return EpicLinked(userid, handle)
}

func (bot *Bot) setBirthday(ctx context.Context, userid, date string) []Response {
	if err := bot.birthdays.Set(ctx, userid, date); err != nil {
		if errors.Is(err, common.ErrInvalidArgument) {
			return InputNotValid("use the YYYY-MM-DD format")
		}
		log.Error().Err(err).Str("user", userid).Msg("Could not store birthday")
		return ErrorMessage()
	}
	return BirthdaySet(userid, date)
}

func (bot *Bot) giveXp(ctx context.Context, message *discordgo.MessageCreate, args GiveXp) []Response {

	if !bot.memberHasRole(message.GuildID, message.Author.ID, bot.cfg.AdminRole) {
		return NotAllowed()
	}

	result, err := bot.ledger.Adjust(ctx, args.UserID, args.Amount)
	if err != nil {
		log.Error().Err(err).Str("user", args.UserID).Msg("Adjustment failed")
		return ErrorMessage()
	}
	if result.TierChanged {
		bot.moveRankRole(message.GuildID, args.UserID, result.OldTier, result.NewTier)
	}
	return XpGiven(args.UserID, result)
}

func (bot *Bot) tournament(ctx context.Context, userid string, args TournamentArgs) []Response {
	switch args.Action {
	case "list":
		tournaments, err := bot.tournaments.List(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Could not list tournaments")
			return ErrorMessage()
		}
		return TournamentList(tournaments)
	case "create":
		created, err := bot.tournaments.Create(ctx, args.Name, time.Now())
		if err != nil {
			return InputNotValid(err.Error())
		}
		return TournamentMessage(args.Action, created)
	case "join":
		joined, err := bot.tournaments.Join(ctx, args.Name, userid)
		if err != nil {
			return InputNotValid(err.Error())
		}
		return TournamentMessage(args.Action, joined)
	case "close":
		closed, err := bot.tournaments.Close(ctx, args.Name)
		if err != nil {
			return InputNotValid(err.Error())
		}
		return TournamentMessage(args.Action, closed)
	default:
		panic(fmt.Sprintf("tournament action %q is not one of the possible ones", args.Action))
	}
}

func (bot *Bot) status(ctx context.Context) []Response {
	links, err := bot.epicLinks(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Could not list epic links")
		return ErrorMessage()
	}
	leader, held := bot.tracker.Leader()
	return StatusMessage(len(links), leader, held)
}

func (bot *Bot) epicLinks(ctx context.Context) (map[string]fortnite.EpicHandle, error) {
	raw, err := bot.kv.List(ctx, store.BucketEpicLinks)
	if err != nil {
		return nil, err
	}
	links := make(map[string]fortnite.EpicHandle, len(raw))
	for userid, handle := range raw {
		links[userid] = fortnite.EpicHandle(handle)
	}
	return links, nil
}

func (bot *Bot) sendResponses(channelid string, responses []Response) {
	if bot.discord == nil {
		return
	}
	for _, response := range responses {
		response.Send(channelid, bot.discord)
	}
}
