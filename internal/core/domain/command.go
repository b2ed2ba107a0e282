package domain

// CommandKind identifies which top-level behavior to run
type CommandKind int

const (
	CommandHelp CommandKind = iota
	CommandInstalled
	CommandAvailable
	CommandFetch
)

// String implements fmt.Stringer
func (k CommandKind) String() string {
	switch k {
	case CommandInstalled:
		return "installed"
	case CommandAvailable:
		return "available"
	case CommandFetch:
		return "fetch"
	default:
		return "help"
	}
}

// Command is a parsed invocation. Image is only set for CommandFetch.
type Command struct {
	Kind  CommandKind
	Image string
}

// ParseCommand maps positional arguments (without the program name) to a Command.
//
// Unknown commands and an empty argument list yield CommandHelp. fetch needs
// exactly one image name; any other count returns ErrInvalidArguments.
func ParseCommand(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Kind: CommandHelp}, nil
	}

	switch args[0] {
	case "installed":
		return Command{Kind: CommandInstalled}, nil
	case "available":
		return Command{Kind: CommandAvailable}, nil
	case "fetch":
		if len(args) != 2 {
			return Command{Kind: CommandFetch}, ErrInvalidArguments
		}
		return Command{Kind: CommandFetch, Image: args[1]}, nil
	default:
		return Command{Kind: CommandHelp}, nil
	}
}
