package bot

import "github.com/bwmarrin/discordgo"

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Respond sends a response to an interaction.
	Respond(response *discordgo.InteractionResponse) error
	// Defer acknowledges the interaction so the reply can be sent later with Edit.
	Defer(ephemeral bool) error
	// Edit replaces the deferred (or original) response.
	Edit(edit *discordgo.WebhookEdit) error
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	deferred    bool
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends a response to the interaction via Discord API.
// Once deferred, the response replaces the deferred reply instead.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	if r.deferred && response.Data != nil {
		return r.Edit(&discordgo.WebhookEdit{
			Content: &response.Data.Content,
			Embeds:  &response.Data.Embeds,
		})
	}
	return r.session.InteractionRespond(r.interaction, response)
}

// Defer sends a deferred channel message response.
func (r *DiscordResponder) Defer(ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return err
	}
	r.deferred = true
	return nil
}

// Edit edits the interaction's original response.
func (r *DiscordResponder) Edit(edit *discordgo.WebhookEdit) error {
	_, err := r.session.InteractionResponseEdit(r.interaction, edit)
	return err
}

// MessageResponder implements Responder for prefix commands by replying
// in the channel the command was sent from.
type MessageResponder struct {
	session *discordgo.Session
	message *discordgo.Message
}

// NewMessageResponder creates a new MessageResponder.
func NewMessageResponder(s *discordgo.Session, m *discordgo.Message) *MessageResponder {
	return &MessageResponder{
		session: s,
		message: m,
	}
}

// Respond replies to the command message. Ephemeral flags have no effect.
func (r *MessageResponder) Respond(response *discordgo.InteractionResponse) error {
	if response.Data == nil {
		return nil
	}
	return r.send(response.Data.Content, response.Data.Embeds)
}

// Defer shows the typing indicator until the reply is sent.
func (r *MessageResponder) Defer(bool) error {
	return r.session.ChannelTyping(r.message.ChannelID)
}

// Edit sends the edited content as the reply.
func (r *MessageResponder) Edit(edit *discordgo.WebhookEdit) error {
	var content string
	if edit.Content != nil {
		content = *edit.Content
	}
	var embeds []*discordgo.MessageEmbed
	if edit.Embeds != nil {
		embeds = *edit.Embeds
	}
	return r.send(content, embeds)
}

func (r *MessageResponder) send(content string, embeds []*discordgo.MessageEmbed) error {
	if content == "" && len(embeds) == 0 {
		return nil
	}
	_, err := r.session.ChannelMessageSendComplex(r.message.ChannelID, &discordgo.MessageSend{
		Content:         content,
		Embeds:          embeds,
		Reference:       r.message.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	return err
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	LastEdit     *discordgo.WebhookEdit
	Deferred     bool
	Ephemeral    bool
	Err          error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}

// Defer records that the interaction was deferred.
func (m *MockResponder) Defer(ephemeral bool) error {
	m.Deferred = true
	m.Ephemeral = ephemeral
	return m.Err
}

// Edit records the edit for testing.
func (m *MockResponder) Edit(edit *discordgo.WebhookEdit) error {
	m.LastEdit = edit
	return m.Err
}
