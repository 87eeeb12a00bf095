package game

// EventKind names an event the server sends to clients.
type EventKind string

const (
	EventRoomCreated       EventKind = "room_created"
	EventJoined            EventKind = "joined"
	EventRejected          EventKind = "rejected"
	EventCountdownTick     EventKind = "countdown_tick"
	EventSessionStarted    EventKind = "session_started"
	EventOpponentMoved     EventKind = "opponent_moved"
	EventPeerFinished      EventKind = "peer_finished"
	EventSelfFinished      EventKind = "self_finished"
	EventSessionComplete   EventKind = "session_complete"
	EventPeerContinuing    EventKind = "peer_continuing"
	EventChatMessage       EventKind = "chat_message"
	EventPeerTypingStarted EventKind = "peer_typing_started"
	EventPeerTypingStopped EventKind = "peer_typing_stopped"
	EventSessionPaused     EventKind = "session_paused"
	EventSessionResumed    EventKind = "session_resumed"
	EventPeerDisconnected  EventKind = "peer_disconnected"
)

// Reason explains a rejected join.
type Reason string

const (
	ReasonRoomNotFound  Reason = "RoomNotFound"
	ReasonRoomFull      Reason = "RoomFull"
	ReasonAlreadyInRoom Reason = "AlreadyInRoom"
)

// Outbound is an event addressed to connection ids.
type Outbound struct {
	Kind       EventKind
	Payload    any
	Recipients []string
}

type RoomCreatedPayload struct {
	Code       string `json:"code"`
	SecretWord string `json:"secretWord"`
}

type JoinedPayload struct {
	SecretWord string `json:"secretWord"`
}

type RejectedPayload struct {
	Reason Reason `json:"reason"`
}

type CountdownTickPayload struct {
	Count int `json:"count"`
}

type SessionStartedPayload struct {
	SecretWord string `json:"secretWord"`
}

type OpponentMovedPayload struct {
	Grid       Grid   `json:"grid"`
	Connection string `json:"connection"`
}

type PeerFinishedPayload struct {
	PlayerName   string  `json:"playerName"`
	Attempts     int     `json:"attempts"`
	ElapsedTime  string  `json:"elapsedTime"`
	Won          bool    `json:"won"`
	RevealedWord *string `json:"revealedWord"`
}

type SelfFinishedPayload struct {
	Won                 bool   `json:"won"`
	Attempts            int    `json:"attempts"`
	ElapsedTime         string `json:"elapsedTime"`
	SecretWord          string `json:"secretWord"`
	StillWaitingForPeer bool   `json:"stillWaitingForPeer"`
}

// SlotSummary is one participant's outcome inside SessionComplete.
type SlotSummary struct {
	Finished    bool   `json:"finished"`
	Won         bool   `json:"won"`
	Attempts    int    `json:"attempts"`
	ElapsedTime string `json:"elapsedTime"`
}

type SessionCompletePayload struct {
	// Winner is the connection id of the overall winner, nil when nobody won.
	Winner       *string     `json:"winner"`
	WinnerSlot   *SlotID     `json:"winnerSlot"`
	ParticipantA SlotSummary `json:"participantA"`
	ParticipantB SlotSummary `json:"participantB"`
	SecretWord   string      `json:"secretWord"`
}

type ChatMessagePayload struct {
	Message    string `json:"message"`
	SenderName string `json:"senderName"`
}
