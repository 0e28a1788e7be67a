// Package protocol defines the application-level message types exchanged
// between a server session and a client worker: the PayloadCommand tags,
// the Payload variants, and the CommandContainer that wraps them for the
// wire.
package protocol

// PayloadCommand tags the purpose of a CommandContainer. Exactly one
// command accompanies every frame on the wire.
type PayloadCommand int

const (
	// None is the uninitialized sentinel. It is never sent on the wire.
	None PayloadCommand = iota
	// GetData is sent client→server: "give me work."
	GetData
	// NoData is sent server→client: "no work available right now."
	NoData
	// Compute is sent server→client: "process the attached payload."
	Compute
	// Result is sent client→server: "here is the processed payload."
	Result
	// Error is sent in either direction: "something went wrong on my side,
	// please resume."
	Error
)

func (c PayloadCommand) String() string {
	switch c {
	case None:
		return "NONE"
	case GetData:
		return "GETDATA"
	case NoData:
		return "NODATA"
	case Compute:
		return "COMPUTE"
	case Result:
		return "RESULT"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// HasPayload reports whether a CommandContainer carrying this command is
// required to hold a payload.
func (c PayloadCommand) HasPayload() bool {
	return c == Compute || c == Result
}

// CommandContainer is the atomic message unit: a command tag plus an
// optional payload. It exclusively owns its payload.
//
// Reset replaces the command and payload together, so the container is
// never observed holding a payload that doesn't belong to its current
// command.
type CommandContainer struct {
	Command PayloadCommand
	Payload Payload
}

// NewCommandContainer builds a container already carrying a command and an
// optional payload.
func NewCommandContainer(command PayloadCommand, payload Payload) *CommandContainer {
	return &CommandContainer{Command: command, Payload: payload}
}

// Reset replaces the container's command and payload in one step,
// discarding whatever was held before.
func (c *CommandContainer) Reset(command PayloadCommand, payload Payload) {
	c.Payload = nil
	c.Command = command
	c.Payload = payload
}

// Validate checks the invariant from the data model: COMPUTE and RESULT
// must carry a payload, everything else must not.
func (c *CommandContainer) Validate() error {
	hasPayload := c.Payload != nil
	if c.Command.HasPayload() != hasPayload {
		return &ProtocolError{Reason: "command " + c.Command.String() + " payload presence mismatch"}
	}
	return nil
}

// ProtocolError marks a violation of the request/response protocol: an
// unexpected command for the current state, or a RESULT whose payload was
// not actually processed. It is always fatal to the session that raised
// it.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Reason
}
