package bot

import (
	"fmt"
	"strings"

	"sweeperleader/internal/leaderboard"
	"sweeperleader/internal/ledger"
	"sweeperleader/internal/podcast"
	"sweeperleader/internal/tournament"
)

func mention(userid string) string {
	return fmt.Sprintf("<@%s>", userid)
}

func InputNotValid(errorMessage string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Input not valid: %s", errorMessage)}}
}

func HelpMessage() []Response {
	content := strings.Join([]string{
		"`!rank` show your experience and rank",
		"`!leaderboard` build the K/D leaderboard",
		"`!linkepic <handle>` link your Epic account for the leaderboard",
		"`!setbirthday <YYYY-MM-DD>` register your birthday",
		"`!givexp <@user> <amount>` grant or remove experience (mods only)",
		"`!tournament <create|join|close|list> [name]` manage tournaments",
		"`!status` what the bot is tracking",
		"`!help` this message",
	}, "\n")
	return []Response{ResponseString{content}}
}

func RankMessage(userid string, xp int, tier string) []Response {
	return []Response{ResponseString{fmt.Sprintf("%s, you have %d XP (%s)", mention(userid), xp, tier)}}
}

func RankUpMessage(userid string, tier string) []Response {
	return []Response{ResponseString{fmt.Sprintf("%s ranked up to **%s**!", mention(userid), tier)}}
}

func EpicLinked(userid string, handle string) []Response {
	return []Response{ResponseString{fmt.Sprintf("%s, linked to Epic account **%s**", mention(userid), handle)}}
}

func BirthdaySet(userid string, date string) []Response {
	return []Response{ResponseString{fmt.Sprintf("%s, birthday set to %s", mention(userid), date)}}
}

func BirthdayToday(userid string) []Response {
	return []Response{ResponseString{fmt.Sprintf("%s has leveled up IRL today! Happy birthday, double XP all day", mention(userid))}}
}

func XpGiven(userid string, result ledger.AwardResult) []Response {
	responses := []Response{ResponseString{fmt.Sprintf("%s now has %d XP", mention(userid), result.NewTotal)}}
	if result.TierChanged {
		responses = append(responses, ResponseString{fmt.Sprintf("%s is now **%s**", mention(userid), result.NewTier)})
	}
	return responses
}

func NotAllowed() []Response {
	return []Response{ResponseString{"Only the mods can do that"}}
}

func LeaderboardImage(image []byte, caption string) []Response {
	return []Response{ResponseFile{name: "kd_leaderboard.png", content: image, caption: caption}}
}

func NoLeaderboard() []Response {
	return []Response{ResponseString{"Could not build the leaderboard this time, try again later"}}
}

func EmptyLeaderboard() []Response {
	return []Response{ResponseString{"No measurable players this week, link an account with `!linkepic <handle>`"}}
}

func RotationMessage(event *leaderboard.RotationEvent, role string) []Response {
	switch event.Kind {
	case leaderboard.EventAssigned:
		return []Response{ResponseString{fmt.Sprintf("%s takes **%s**!", mention(event.To), role)}}
	case leaderboard.EventRotated:
		days := int(event.HeldFor.Hours() / 24)
		return []Response{ResponseString{fmt.Sprintf("%s sweeps **%s** away from %s after %d days!", mention(event.To), role, mention(event.From), days)}}
	case leaderboard.EventVacated:
		return []Response{ResponseString{fmt.Sprintf("**%s** is vacant, %s left the board", role, mention(event.From))}}
	default:
		return nil
	}
}

func TournamentMessage(action string, t tournament.Tournament) []Response {
	switch action {
	case "create":
		return []Response{ResponseString{fmt.Sprintf("Tournament **%s** is open, sign up with `!tournament join %s`", t.Name, t.Name)}}
	case "join":
		return []Response{ResponseString{fmt.Sprintf("Registered for **%s** (%d players in)", t.Name, len(t.Participants))}}
	case "close":
		return []Response{ResponseString{fmt.Sprintf("Signups for **%s** are closed with %d players", t.Name, len(t.Participants))}}
	default:
		return nil
	}
}

func TournamentList(tournaments []tournament.Tournament) []Response {
	if len(tournaments) == 0 {
		return []Response{ResponseString{"No tournaments yet, create one with `!tournament create <name>`"}}
	}
	var builder strings.Builder
	builder.WriteString("Tournaments:\n")
	for _, t := range tournaments {
		state := "closed"
		if t.Open {
			state = "open"
		}
		builder.WriteString(fmt.Sprintf("- **%s** (%s, %d players)\n", t.Name, state, len(t.Participants)))
	}
	return []Response{ResponseString{builder.String()}}
}

func PodcastMessage(episode *podcast.Episode) []Response {
	return []Response{ResponseString{fmt.Sprintf("New podcast episode: **%s**\n%s", episode.Title, episode.Link)}}
}

func StatusMessage(linked int, cleaner string, hasCleaner bool) []Response {
	content := fmt.Sprintf("Tracking %d linked Epic accounts", linked)
	if hasCleaner {
		content += fmt.Sprintf("; current Cleaner: %s", mention(cleaner))
	} else {
		content += "; the Cleaner role is vacant"
	}
	return []Response{ResponseString{content}}
}

func ErrorMessage() []Response {
	return []Response{ResponseString{"Something went wrong, try again later"}}
}
