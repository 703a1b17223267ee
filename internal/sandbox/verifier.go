package sandbox

import (
	"context"
	"reflect"
)

// Verify runs the user's query and the reference solution against the same
// sandbox and compares the result sets. Row order matters, as does the
// column set of every row; a different projection or ordering is wrong.
func (m *Manager) Verify(ctx context.Context, folderID, userQuery, solution string) (bool, error) {
	userResult, err := m.Execute(ctx, folderID, userQuery)
	if err != nil {
		return false, err
	}

	expected, err := m.Execute(ctx, folderID, solution)
	if err != nil {
		return false, err
	}

	return resultsEqual(userResult.Rows, expected.Rows), nil
}

func resultsEqual(got, want []map[string]any) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !reflect.DeepEqual(got[i], want[i]) {
			return false
		}
	}
	return true
}
