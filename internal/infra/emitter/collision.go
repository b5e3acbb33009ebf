// Where: internal/infra/emitter/collision.go
// What: Decide what to do with an existing file that differs from the rendered one.
// Why: Force and skip modes answer up front; otherwise only a terminal user may decide.
package emitter

import "github.com/poruru/prefab/internal/infra/interaction"

const (
	choiceOverwrite    = "overwrite"
	choiceSkip         = "skip"
	choiceOverwriteAll = "all"
	choiceQuit         = "quit"
)

var collisionChoices = []interaction.SelectOption{
	{Label: "Overwrite", Value: choiceOverwrite},
	{Label: "Skip", Value: choiceSkip},
	{Label: "Overwrite this and all others", Value: choiceOverwriteAll},
	{Label: "Quit", Value: choiceQuit},
}

// resolveCollision reports whether rel should be overwritten.
func (e *Emitter) resolveCollision(rel string) (bool, error) {
	switch {
	case e.Force || e.overwriteAll:
		return true, nil
	case e.Skip:
		return false, nil
	case !e.Interactive || e.Prompter == nil:
		if e.UI != nil {
			e.UI.Warn("skipping " + rel + ": file exists and differs (use --force to overwrite)")
		}
		return false, nil
	}

	choice, err := e.Prompter.SelectValue("Overwrite "+rel+"?", collisionChoices)
	if err != nil {
		return false, err
	}
	switch choice {
	case choiceOverwrite:
		return true, nil
	case choiceOverwriteAll:
		e.overwriteAll = true
		return true, nil
	case choiceQuit:
		return false, ErrAborted
	default:
		return false, nil
	}
}
