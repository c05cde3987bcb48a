package sortlog

import (
	"testing"

	"github.com/xsort-go/xsort/internal/testing/require"
)

func TestScopesAreDistinctBits(t *testing.T) {
	scopes := []LogScopes{ScopeCompare, ScopeRun, ScopeMerge, ScopeGallop, ScopeScratch}
	for i, a := range scopes {
		for j, b := range scopes {
			if i == j {
				continue
			}
			require.True(t, a&b == 0, "scopes %d and %d overlap", i, j)
		}
	}
}

func TestIsEnabled(t *testing.T) {
	f := ScopeRun | ScopeMerge
	require.True(t, f.IsEnabled(ScopeRun))
	require.True(t, f.IsEnabled(ScopeMerge))
	require.True(t, f.IsEnabled(ScopeRun|ScopeMerge))
	require.False(t, f.IsEnabled(ScopeGallop))
	require.True(t, ScopeAll.IsEnabled(ScopeGallop))
}

func TestNopListenerImplementsListener(t *testing.T) {
	var l Listener = NopListener{}
	l.OnCompare([]byte{1}, []byte{2})
	l.OnRunDetected(10)
	l.OnMerge(3, 4)
	l.OnGallopEnter()
	l.OnGallopExit()
	l.OnScratchGrow(5)
}
