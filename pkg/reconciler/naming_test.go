package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
)

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		existing []string
		want     string
	}{
		{"free", "Risk", nil, "Risk"},
		{"exact match", "Risk", []string{"Risk"}, "Risk (1)"},
		{"exact and suffixed", "Risk", []string{"Risk", "Risk (1)"}, "Risk (2)"},
		{"order independent", "Risk", []string{"Risk (1)", "Risk"}, "Risk (2)"},
		{"gap keeps highest", "Risk", []string{"Risk", "Risk (3)"}, "Risk (4)"},
		{"only suffixed", "Risk", []string{"Risk (1)"}, "Risk (2)"},
		{"suffix zero", "Risk", []string{"Risk (0)"}, "Risk (1)"},
		{"suffixed order independent", "Risk", []string{"Risk (4)", "Risk", "Risk (2)"}, "Risk (5)"},
		{"unrelated", "Risk", []string{"Risky", "Risk (a)", "Credit Risk"}, "Risk"},
		{"regexp characters", "P&L (net)", []string{"P&L (net)", "P&L (net) (1)"}, "P&L (net) (2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueName(tt.base, tt.existing))
		})
	}
}

func TestStableName(t *testing.T) {
	others := []string{"Risk", "Risk (1)"}

	assert.Equal(t, "Risk (1)", stableName("Risk (1)", "Risk", others))
	assert.Equal(t, "Risk", stableName("Risk", "Risk", others))
	assert.Equal(t, "Exposure", stableName("Risk (1)", "Exposure", others))
	assert.Equal(t, "Risk (2)", stableName("Hazard", "Risk", others))
	assert.Equal(t, "Risk Management", stableName("Risk Management", "Risk", others))
	assert.Equal(t, "Risk", stableName("Ris", "Risk", nil))
}

func TestCreateWithRetryBumpsSuffix(t *testing.T) {
	var tried []string
	create := func(name string) (string, error) {
		tried = append(tried, name)
		if len(tried) < 3 {
			return "", errors.NewServiceError("atlas", "create term", errors.KindNameConflict, "taken", nil)
		}
		return "guid-1", nil
	}
	recheck := func(context.Context) (string, []string, error) { return "", []string{"Risk"}, nil }

	guid, adopted, err := createWithRetry(context.Background(), "Risk", nil, create, recheck)
	require.NoError(t, err)
	assert.Equal(t, "guid-1", guid)
	assert.False(t, adopted)
	assert.Equal(t, []string{"Risk", "Risk (1)", "Risk (2)"}, tried)
}

func TestCreateWithRetryAdoptsConcurrentCopy(t *testing.T) {
	create := func(string) (string, error) {
		return "", errors.NewServiceError("atlas", "create term", errors.KindNameConflict, "taken", nil)
	}
	recheck := func(context.Context) (string, []string, error) { return "existing", nil, nil }

	guid, adopted, err := createWithRetry(context.Background(), "Risk", nil, create, recheck)
	require.NoError(t, err)
	assert.Equal(t, "existing", guid)
	assert.True(t, adopted)
}

func TestCreateWithRetryIsBounded(t *testing.T) {
	calls := 0
	create := func(string) (string, error) {
		calls++
		return "", errors.NewServiceError("atlas", "create term", errors.KindNameConflict, "taken", nil)
	}
	recheck := func(context.Context) (string, []string, error) { return "", nil, nil }

	_, _, err := createWithRetry(context.Background(), "Risk", nil, create, recheck)
	require.Error(t, err)
	assert.True(t, errors.IsNameConflict(err))
	assert.Equal(t, constants.MaxNameConflictRetries+1, calls)
}

func TestCreateWithRetryStopsOnOtherErrors(t *testing.T) {
	create := func(string) (string, error) {
		return "", errors.NewServiceError("atlas", "create term", errors.KindTransport, "boom", nil)
	}
	recheck := func(context.Context) (string, []string, error) {
		t.Fatal("recheck must not run for non-conflict errors")
		return "", nil, nil
	}

	_, _, err := createWithRetry(context.Background(), "Risk", nil, create, recheck)
	assert.True(t, errors.IsTransport(err))
}
