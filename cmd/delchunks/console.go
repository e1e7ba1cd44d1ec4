package main

import (
	"fmt"
	"os"
	"os/user"
)

type consoleActor struct{ name string }

func newConsoleActor() *consoleActor {
	name := "console"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	return &consoleActor{name: name}
}

func (a *consoleActor) Name() string          { return a.name }
func (a *consoleActor) Print(msg string)      { fmt.Println(msg) }
func (a *consoleActor) PrintError(msg string) { fmt.Fprintln(os.Stderr, msg) }

type consolePlayer struct {
	*consoleActor
	pos [3]int
}

func (p *consolePlayer) BlockPosition() (int, int, int) { return p.pos[0], p.pos[1], p.pos[2] }
