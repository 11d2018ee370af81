package toggle

import "fmt"

// selectEligible returns the windows a minimize pass should act on, in the
// order the host listed them. An empty result is not an error.
func selectEligible(host Host, opts Options) ([]Window, error) {
	inventory, err := host.Inventory(opts.Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	eligible := make([]Window, 0, len(inventory))
	for _, w := range inventory {
		if !isEligible(w, opts) {
			continue
		}
		if !host.Alive(w.ID) {
			continue
		}
		eligible = append(eligible, w)
	}
	return eligible, nil
}

func isEligible(w Window, opts Options) bool {
	switch {
	case !w.CanMinimize:
		return false
	case w.Minimized:
		return false
	case w.SkipTaskbar:
		return false
	case w.Type != TypeNormal:
		return false
	case opts.ExcludeAbove && w.Above:
		return false
	}
	return true
}
