package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const prefix string = "!"

const (
	COMMAND_RANK        = iota
	COMMAND_LEADERBOARD = iota
	COMMAND_LINKEPIC    = iota
	COMMAND_SETBIRTHDAY = iota
	COMMAND_GIVEXP      = iota
	COMMAND_TOURNAMENT  = iota
	COMMAND_STATUS      = iota
	COMMAND_HELP        = iota
)

const (
	PARSEID_OK                     = iota
	PARSEID_NO_BOT_PREFIX          = iota
	PARSEID_NO_COMMAND             = iota
	PARSEID_COMMAND_NOT_RECOGNISED = iota
	PARSEID_NO_INPUT               = iota
	PARSEID_NOT_A_MENTION          = iota
	PARSEID_NOT_A_NUMBER           = iota
	PARSEID_BAD_TOURNAMENT_ACTION  = iota
)

var errorMessages map[int]string = map[int]string{
	PARSEID_NO_COMMAND:             "No command provided",
	PARSEID_COMMAND_NOT_RECOGNISED: "Command `%s` not recognised",
	PARSEID_NO_INPUT:               "Command `%s` requires an argument",
	PARSEID_NOT_A_MENTION:          "Input `%s` is not a user mention",
	PARSEID_NOT_A_NUMBER:           "Input `%s` is not a number",
	PARSEID_BAD_TOURNAMENT_ACTION:  "Tournament action `%s` must be create, join, close or list",
}

// GiveXp carries the arguments of the admin experience correction
type GiveXp struct {
	UserID string
	Amount int
}

// TournamentArgs carries the subcommand of the tournament command
type TournamentArgs struct {
	Action string
	Name   string
}

type ParseResult struct {
	command      int
	parseid      int
	errorMessage string
	arguments    interface{}
}

func Parse(message string) ParseResult {

	noInput := func(command int, commandString string) ParseResult {
		parseid := PARSEID_NO_INPUT
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}

	// The message has to start with the bot prefix
	if !strings.HasPrefix(message, prefix) {
		return ParseResult{parseid: PARSEID_NO_BOT_PREFIX}
	}

	// Get the command if valid
	words := strings.Fields(strings.TrimSpace(message[len(prefix):]))
	if len(words) == 0 {
		parseid := PARSEID_NO_COMMAND
		return ParseResult{parseid: parseid, errorMessage: errorMessages[parseid]}
	}
	commandString := strings.ToLower(words[0])
	words = words[1:]

	// Match the command

	switch commandString {
	case "rank":
		// !rank
		return ParseResult{command: COMMAND_RANK, parseid: PARSEID_OK}
	case "leaderboard", "kdleaderboard":
		// !leaderboard
		return ParseResult{command: COMMAND_LEADERBOARD, parseid: PARSEID_OK}
	case "linkepic":
		// !linkepic <epic_handle>
		command := COMMAND_LINKEPIC
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return ParseResult{command: command, parseid: PARSEID_OK, arguments: strings.Join(words, " ")}
	case "setbirthday":
		// !setbirthday <YYYY-MM-DD>
		command := COMMAND_SETBIRTHDAY
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return ParseResult{command: command, parseid: PARSEID_OK, arguments: words[0]}
	case "givexp":
		// !givexp <@user> <amount>
		command := COMMAND_GIVEXP
		if len(words) < 2 {
			return noInput(command, commandString)
		}
		return parseGiveXp(command, words)
	case "tournament":
		// !tournament <create|join|close|list> [name]
		command := COMMAND_TOURNAMENT
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return parseTournament(command, words)
	case "status":
		// !status
		return ParseResult{command: COMMAND_STATUS, parseid: PARSEID_OK}
	case "help":
		// !help
		return ParseResult{command: COMMAND_HELP, parseid: PARSEID_OK}
	default:
		parseid := PARSEID_COMMAND_NOT_RECOGNISED
		log.Debug().Str("command", commandString).Msg("Command not recognised")
		return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}
}

func parseGiveXp(command int, words []string) ParseResult {

	userid, ok := parseMention(words[0])
	if !ok {
		parseid := PARSEID_NOT_A_MENTION
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], words[0])}
	}
	amount, err := strconv.Atoi(words[1])
	if err != nil {
		parseid := PARSEID_NOT_A_NUMBER
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], words[1])}
	}
	return ParseResult{command: command, parseid: PARSEID_OK, arguments: GiveXp{UserID: userid, Amount: amount}}
}

func parseTournament(command int, words []string) ParseResult {

	action := strings.ToLower(words[0])
	name := strings.Join(words[1:], " ")
	switch action {
	case "list":
		return ParseResult{command: command, parseid: PARSEID_OK, arguments: TournamentArgs{Action: action}}
	case "create", "join", "close":
		if name == "" {
			parseid := PARSEID_NO_INPUT
			return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], "tournament "+action)}
		}
		return ParseResult{command: command, parseid: PARSEID_OK, arguments: TournamentArgs{Action: action, Name: name}}
	default:
		parseid := PARSEID_BAD_TOURNAMENT_ACTION
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], action)}
	}
}

// parseMention extracts the user id from a Discord mention like
// <@123456> or <@!123456>
func parseMention(word string) (string, bool) {
	if !strings.HasPrefix(word, "<@") || !strings.HasSuffix(word, ">") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(word, "<@"), ">")
	id = strings.TrimPrefix(id, "!")
	if id == "" {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id, true
}
