package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Sakemo/matchmake-bot/internal/bot"
)

// Buttons per action row
const maxRowButtons = 5

// ToInteractionResponse converts an outbound payload into an interaction
// callback
func ToInteractionResponse(resp *bot.Response) *discordgo.InteractionResponse {
	if resp.Kind == bot.ResponseModal && resp.Modal != nil {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID:   resp.Modal.CustomID,
				Title:      resp.Modal.Title,
				Components: inputRows(resp.Modal.Inputs),
			},
		}
	}

	data := &discordgo.InteractionResponseData{
		Content:    resp.Content,
		Embeds:     ToEmbeds(resp.Embeds),
		Components: buttonRows(resp.Buttons),
	}
	if resp.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	typ := discordgo.InteractionResponseChannelMessageWithSource
	if resp.Kind == bot.ResponseUpdate {
		typ = discordgo.InteractionResponseUpdateMessage
	}
	return &discordgo.InteractionResponse{Type: typ, Data: data}
}

// ToEmbeds converts embeds, never returning nil so updates clear old ones
func ToEmbeds(embeds []*bot.Embed) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		if e != nil {
			out = append(out, ToEmbed(e))
		}
	}
	return out
}

// ToEmbed converts one embed
func ToEmbed(e *bot.Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return embed
}

func buttonRows(buttons []bot.Button) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, (len(buttons)+maxRowButtons-1)/maxRowButtons)
	for start := 0; start < len(buttons); start += maxRowButtons {
		end := min(start+maxRowButtons, len(buttons))
		row := discordgo.ActionsRow{}
		for _, b := range buttons[start:end] {
			row.Components = append(row.Components, discordgo.Button{
				CustomID: b.CustomID,
				Label:    b.Label,
				Style:    buttonStyle(b.Style),
				Disabled: b.Disabled,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func buttonStyle(s bot.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case bot.ButtonSecondary:
		return discordgo.SecondaryButton
	case bot.ButtonSuccess:
		return discordgo.SuccessButton
	case bot.ButtonDanger:
		return discordgo.DangerButton
	}
	return discordgo.PrimaryButton
}

// Modals take one text input per action row
func inputRows(inputs []bot.TextInput) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(inputs))
	for _, in := range inputs {
		style := discordgo.TextInputShort
		if in.Paragraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    in.CustomID,
				Label:       in.Label,
				Style:       style,
				Placeholder: in.Placeholder,
				Value:       in.Value,
				Required:    in.Required,
				MaxLength:   in.MaxLength,
			},
		}})
	}
	return rows
}
