package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		message string
		parseid int
		command int
		args    interface{}
	}{
		{name: "not for the bot", message: "hello there", parseid: PARSEID_NO_BOT_PREFIX},
		{name: "bare prefix", message: "!", parseid: PARSEID_NO_COMMAND},
		{name: "unknown command", message: "!dance", parseid: PARSEID_COMMAND_NOT_RECOGNISED},
		{name: "rank", message: "!rank", parseid: PARSEID_OK, command: COMMAND_RANK},
		{name: "leaderboard", message: "!leaderboard", parseid: PARSEID_OK, command: COMMAND_LEADERBOARD},
		{name: "old leaderboard name", message: "!kdleaderboard", parseid: PARSEID_OK, command: COMMAND_LEADERBOARD},
		{name: "linkepic", message: "!linkepic Sweeper Main", parseid: PARSEID_OK, command: COMMAND_LINKEPIC, args: "Sweeper Main"},
		{name: "linkepic without handle", message: "!linkepic", parseid: PARSEID_NO_INPUT, command: COMMAND_LINKEPIC},
		{name: "setbirthday", message: "!setbirthday 1999-04-01", parseid: PARSEID_OK, command: COMMAND_SETBIRTHDAY, args: "1999-04-01"},
		{name: "givexp", message: "!givexp <@123> 50", parseid: PARSEID_OK, command: COMMAND_GIVEXP, args: GiveXp{UserID: "123", Amount: 50}},
		{name: "givexp negative", message: "!givexp <@!123> -50", parseid: PARSEID_OK, command: COMMAND_GIVEXP, args: GiveXp{UserID: "123", Amount: -50}},
		{name: "givexp bad mention", message: "!givexp bob 50", parseid: PARSEID_NOT_A_MENTION, command: COMMAND_GIVEXP},
		{name: "givexp bad amount", message: "!givexp <@123> lots", parseid: PARSEID_NOT_A_NUMBER, command: COMMAND_GIVEXP},
		{name: "tournament list", message: "!tournament list", parseid: PARSEID_OK, command: COMMAND_TOURNAMENT, args: TournamentArgs{Action: "list"}},
		{name: "tournament create", message: "!tournament create Crew Up", parseid: PARSEID_OK, command: COMMAND_TOURNAMENT, args: TournamentArgs{Action: "create", Name: "Crew Up"}},
		{name: "tournament join without name", message: "!tournament join", parseid: PARSEID_NO_INPUT, command: COMMAND_TOURNAMENT},
		{name: "tournament bad action", message: "!tournament explode BritBowl", parseid: PARSEID_BAD_TOURNAMENT_ACTION, command: COMMAND_TOURNAMENT},
		{name: "status", message: "!status", parseid: PARSEID_OK, command: COMMAND_STATUS},
		{name: "help", message: "!help", parseid: PARSEID_OK, command: COMMAND_HELP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.message)
			require.Equal(t, tt.parseid, result.parseid)
			if tt.parseid != PARSEID_OK {
				if tt.parseid != PARSEID_NO_BOT_PREFIX && tt.parseid != PARSEID_NO_COMMAND {
					require.NotEmpty(t, result.errorMessage)
				}
				return
			}
			require.Equal(t, tt.command, result.command)
			if tt.args != nil {
				require.Equal(t, tt.args, result.arguments)
			}
		})
	}
}

func TestParseMention(t *testing.T) {
	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{word: "<@123456>", want: "123456", ok: true},
		{word: "<@!123456>", want: "123456", ok: true},
		{word: "123456", ok: false},
		{word: "<@>", ok: false},
		{word: "<@abc>", ok: false},
	}
	for _, tt := range tests {
		got, ok := parseMention(tt.word)
		require.Equal(t, tt.ok, ok, tt.word)
		if ok {
			require.Equal(t, tt.want, got)
		}
	}
}
