package model

import (
	"github.com/sdcc-labs/pollnode/internal/model/entities"
	"github.com/sdcc-labs/pollnode/internal/model/messages"
)

// Alias per esporre tipi comuni ai servizi

type (
	Node               = entities.Node
	Zone               = entities.Zone
	NodeState          = entities.NodeState
	AlarmPolicy        = entities.AlarmPolicy
	NodeReading        = messages.NodeReading
	NodeEvent          = messages.NodeEvent
	NodeCommand        = messages.NodeCommand
	CommandResultEvent = messages.CommandResultEvent
)

const (
	NodeIdle   = entities.NodeIdle
	NodeActive = entities.NodeActive
	NodeError  = entities.NodeError
)
