package errors_test

import (
	"fmt"

	"github.com/agentstation/glossync/pkg/errors"
)

// Example demonstrates branching on the kind of a collaborator failure.
func Example() {
	err := errors.NewServiceError("atlas", "create term", errors.KindNameConflict, "term name already exists", nil)

	switch errors.KindOf(err) {
	case errors.KindNameConflict:
		fmt.Println("retry with a disambiguated name")
	case errors.KindNotFound:
		fmt.Println("element is gone")
	default:
		fmt.Println("unexpected failure")
	}

	// Output: retry with a disambiguated name
}
