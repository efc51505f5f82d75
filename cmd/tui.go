package cmd

import (
	"github.com/lepinkainen/otaku/internal/config"
	"github.com/lepinkainen/otaku/internal/jikan"
	"github.com/lepinkainen/otaku/internal/session"
	"github.com/lepinkainen/otaku/internal/tui"
)

var runTUI = func(ctrl tui.Controller) error {
	return tui.Run(ctrl, jikan.Genres())
}

// TUICmd represents the interactive browser command
type TUICmd struct{}

func (t *TUICmd) Run() error {
	sess := session.New(newCoordinator(), session.WithDebounce(config.SearchDebounce))
	return runTUI(sess)
}
