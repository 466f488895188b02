package bot

import (
	"bytes"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type ResponseString struct {
	content string
}

type ResponseEmbed struct {
	discordgo.MessageEmbed
}

// ResponseFile uploads an attachment, used for the leaderboard image
type ResponseFile struct {
	name    string
	content []byte
	caption string
}

type Response interface {
	Send(channelid string, discord *discordgo.Session)
}

func (response ResponseString) Send(channelid string, discord *discordgo.Session) {
	if _, err := discord.ChannelMessageSend(channelid, response.content); err != nil {
		log.Error().Err(err).Str("channel", channelid).Msg("Could not send message")
	}
}

func (response ResponseEmbed) Send(channelid string, discord *discordgo.Session) {
	if _, err := discord.ChannelMessageSendEmbed(channelid, &response.MessageEmbed); err != nil {
		log.Error().Err(err).Str("channel", channelid).Msg("Could not send embed")
	}
}

func (response ResponseFile) Send(channelid string, discord *discordgo.Session) {
	message := &discordgo.MessageSend{
		Content: response.caption,
		Files: []*discordgo.File{
			{Name: response.name, ContentType: "image/png", Reader: bytes.NewReader(response.content)},
		},
	}
	if _, err := discord.ChannelMessageSendComplex(channelid, message); err != nil {
		log.Error().Err(err).Str("channel", channelid).Msg("Could not send file")
	}
}
