package entities

import "errors"

// Domain rule violations shared by the API use cases and the console workflows.
var (
	ErrUnknownStatus     = errors.New("unknown service status")
	ErrTerminalState     = errors.New("service order already completed")
	ErrInvalidTransition = errors.New("status may only advance one step")

	ErrNoServices       = errors.New("at least one service is required")
	ErrUnknownService   = errors.New("unknown service")
	ErrDuplicateService = errors.New("service already added")
	ErrInvalidQuoteItem = errors.New("invalid quote item")

	ErrUnknownArea       = errors.New("unknown inspection area")
	ErrDuplicateArea     = errors.New("inspection area repeated")
	ErrMissingArea       = errors.New("inspection area missing")
	ErrInvalidCondition  = errors.New("invalid area condition")
	ErrMissingDamageNote = errors.New("damaged area requires a note")
)
