package websocket

// Bus topics connecting the transport to the hub's command subscriber.
// Inbound frames are re-published here rather than handled inline so the
// socket read loop never blocks on hub work.
const (
	TopicSendCommand     = "hub.commands.send"
	TopicStatusCommand   = "hub.commands.status"
	TopicReactionCommand = "hub.commands.reaction"
	TopicPresenceCommand = "hub.commands.presence"
	TopicProfileCommand  = "hub.commands.profile"

	// TopicSessionClosed is published when a socket closes; the subscriber
	// unregisters the session in response.
	TopicSessionClosed = "hub.sessions.closed"
)

// commandTopics maps a client frame op to its bus topic. Remove-reaction
// shares the reaction topic; the op travels in the bus metadata.
var commandTopics = map[string]string{
	OpSendMessage:    TopicSendCommand,
	OpUpdateStatus:   TopicStatusCommand,
	OpAddReaction:    TopicReactionCommand,
	OpRemoveReaction: TopicReactionCommand,
	OpUpdatePresence: TopicPresenceCommand,
	OpUpdateProfile:  TopicProfileCommand,
}
