package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/idilsaglam/listlist/internal/model"
)

// errAborted means the user closed the picker without choosing.
var errAborted = errors.New("aborted")

func fuzzyPick(labels []string, prompt string) (int, error) {
	idx, err := fuzzyfinder.Find(
		labels,
		func(i int) string { return labels[i] },
		fuzzyfinder.WithPromptString(prompt),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, errAborted
		}
		return -1, fmt.Errorf("select: %w", err)
	}
	return idx, nil
}

// resolveItem finds ref as a 1-based index or an item id.
func resolveItem(list model.List, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(list) {
		return n - 1, nil
	}
	if i := list.Index(ref); i >= 0 {
		return i, nil
	}
	return -1, notFoundError{ref: ref, n: len(list)}
}

// chooseItem resolves args[0] when given, else asks the picker.
func (app *App) chooseItem(list model.List, args []string, prompt string) (int, error) {
	if len(args) > 0 {
		return resolveItem(list, args[0])
	}
	if len(list) == 0 {
		return -1, usagef("the list is empty")
	}
	labels := make([]string, len(list))
	for i, it := range list {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		labels[i] = fmt.Sprintf("%2d. %s %s", i+1, box, it.Text)
	}
	return app.pick(labels, prompt)
}
