package plugins

const greeting = "Hello, welcome to the interactive calculator!"

type GreetCommand struct{}

func (GreetCommand) Execute() (string, error) {
	return greeting, nil
}
