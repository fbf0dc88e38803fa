package reconciler

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

// uniqueName returns base when no existing name is base or "base (n)",
// otherwise "base (k)" where k is past both the exact match and the largest
// suffix already used for base. The result depends only on the set of names.
func uniqueName(base string, existing []string) string {
	suffixed := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + ` \((\d+)\)$`)
	counter := 0
	for _, name := range existing {
		if name == base {
			counter = max(counter, 1)
			continue
		}
		if m := suffixed.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				counter = max(counter, n+1)
			}
		}
	}
	if counter == 0 {
		return base
	}
	return fmt.Sprintf("%s (%d)", base, counter)
}

// keepsName reports whether an existing Atlas name still starts with the
// Egeria name, e.g. "Risk (2)" or "Risk Management" for "Risk".
func keepsName(current, base string) bool {
	return base != "" && strings.HasPrefix(current, base)
}

// stableName keeps the current Atlas name while it still fits, otherwise it
// derives a fresh unique name.
func stableName(current, base string, others []string) string {
	if keepsName(current, base) {
		return current
	}
	return uniqueName(base, others)
}

// recheckFunc runs after a name conflict. It returns the GUID of an Atlas
// element that already carries this Egeria element's marker, if a concurrent
// writer created one, and the current set of sibling names.
type recheckFunc func(ctx context.Context) (existing string, names []string, err error)

// createWithRetry creates an Atlas element under a unique name. On a name
// conflict it re-resolves the correlation and either adopts the existing
// element or bumps the suffix. It reports whether the returned GUID was
// adopted rather than created.
func createWithRetry(ctx context.Context, base string, names []string, create func(name string) (string, error), recheck recheckFunc) (guid string, adopted bool, err error) {
	logger := logging.FromContext(ctx)
	name := uniqueName(base, names)
	for attempt := 0; ; attempt++ {
		guid, err = create(name)
		if err == nil {
			return guid, false, nil
		}
		if !errors.IsNameConflict(err) || attempt >= constants.MaxNameConflictRetries {
			return "", false, err
		}
		logger.Debug().
			Str("name", name).
			Int("attempt", attempt+1).
			Msg("Name conflict on create, retrying")

		existing, fresh, rerr := recheck(ctx)
		if rerr != nil {
			return "", false, rerr
		}
		if existing != "" {
			return existing, true, nil
		}
		names = append(fresh, name)
		name = uniqueName(base, names)
	}
}
