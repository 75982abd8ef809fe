package discord

import "github.com/bwmarrin/discordgo"

const CommandReroll = "rerollchampion"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        CommandReroll,
		Description: "Elige otro deploy champion y lo anuncia",
	},
}
